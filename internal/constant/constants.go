package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

// Processing lifecycle of a case file.
const (
	ProcessingStatusPending    = "pending"
	ProcessingStatusProcessing = "processing"
	ProcessingStatusCompleted  = "completed"
	ProcessingStatusFailed     = "failed"
)

const (
	ChunkTypeParent = "parent"
	ChunkTypeChild  = "child"
)

// Effort levels a caller can request for chat answers.
const (
	EffortQuick    = "quick"
	EffortStandard = "standard"
	EffortThorough = "thorough"
	EffortDeep     = "deep"
)

// ExtractedTextCap bounds how much extracted text is stored on the file row.
const ExtractedTextCap = 50000

// EmptyTextSummary is the fixed summary for files with no extractable text.
// Reaching it is a completed outcome, not a failure.
const EmptyTextSummary = "No extractable text content found."
