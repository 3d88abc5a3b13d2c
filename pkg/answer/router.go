package answer

import (
	"context"
	"strings"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/pkg/llm"
)

// Source is one retrieved chunk handed to the model as numbered context.
// Index matches the [n] marker the model is told to cite.
type Source struct {
	Index          int
	FileName       string
	PageNumber     *int
	SectionHeading *string
	Content        string
}

// Request carries everything needed to generate one assistant turn.
// FileContext is caller-supplied extra context (e.g. the file the user is
// currently viewing) and is injected after the sources.
type Request struct {
	Question    string
	Effort      string
	Sources     []Source
	History     []llm.Message
	FileContext string
}

// Router picks a model by requested effort and generates grounded answers.
// Quick and standard effort go to the fast model; thorough and deep go to
// the reasoning model.
type Router struct {
	provider       llm.LLMProvider
	fastModel      string
	reasoningModel string
}

func NewRouter(provider llm.LLMProvider, fastModel, reasoningModel string) *Router {
	return &Router{
		provider:       provider,
		fastModel:      fastModel,
		reasoningModel: reasoningModel,
	}
}

// ModelFor maps an effort level onto a concrete model name. Unknown efforts
// get the fast model.
func (r *Router) ModelFor(effort string) string {
	switch effort {
	case constant.EffortThorough, constant.EffortDeep:
		return r.reasoningModel
	default:
		return r.fastModel
	}
}

// Generate produces the assistant answer for req. Provider failures come
// back as *GenerationError with a classified kind.
func (r *Router) Generate(ctx context.Context, req Request) (string, string, error) {
	model := r.ModelFor(req.Effort)

	history := make([]llm.Message, 0, len(req.History)+2)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: buildSystemPrompt(req.Sources, req.FileContext),
	})
	history = append(history, req.History...)
	history = append(history, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: req.Question,
	})

	opts := []llm.Option{llm.WithModel(model)}
	if req.Effort == constant.EffortDeep {
		// Deep effort trades latency for a longer, more exploratory answer.
		opts = append(opts, llm.WithTemperature(0.7), llm.WithMaxTokens(8192))
	}

	text, err := r.provider.Chat(ctx, history, opts...)
	if err != nil {
		return "", model, &GenerationError{Kind: Classify(err), Model: model, Err: err}
	}
	return strings.TrimSpace(text), model, nil
}
