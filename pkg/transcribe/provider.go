package transcribe

import "context"

// Segment is a stretch of transcribed speech with its position in the
// recording, in seconds.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// Transcript is the result of transcribing a recording. Segments may be
// empty when the provider could not produce timestamps; Text is always the
// full transcript.
type Transcript struct {
	Text     string
	Segments []Segment
}

// Provider transcribes speech from audio or video material.
type Provider interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (Transcript, error)
}
