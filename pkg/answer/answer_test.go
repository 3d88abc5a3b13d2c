package answer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"case-knowledge-be/internal/constant"
	"case-knowledge-be/pkg/llm"
)

type fakeLLM struct {
	err         error
	reply       string
	lastHistory []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: constant.ChatMessageRoleUser, Content: prompt}}, options...)
}

func TestModelForEffort(t *testing.T) {
	r := NewRouter(&fakeLLM{}, "flash", "pro")

	tests := []struct {
		effort string
		want   string
	}{
		{constant.EffortQuick, "flash"},
		{constant.EffortStandard, "flash"},
		{constant.EffortThorough, "pro"},
		{constant.EffortDeep, "pro"},
		{"", "flash"},
		{"bogus", "flash"},
	}
	for _, tt := range tests {
		if got := r.ModelFor(tt.effort); got != tt.want {
			t.Errorf("ModelFor(%q) = %q, want %q", tt.effort, got, tt.want)
		}
	}
}

func TestGenerateAssemblesContext(t *testing.T) {
	provider := &fakeLLM{reply: "The answer cites [1]."}
	r := NewRouter(provider, "flash", "pro")

	heading := "Findings"
	text, model, err := r.Generate(context.Background(), Request{
		Question: "What did the report conclude?",
		Effort:   constant.EffortStandard,
		Sources: []Source{
			{Index: 1, FileName: "report.pdf", SectionHeading: &heading, Content: "The report concluded X."},
		},
		History: []llm.Message{
			{Role: constant.ChatMessageRoleUser, Content: "earlier question"},
			{Role: constant.ChatMessageRoleAssistant, Content: "earlier answer"},
		},
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if model != "flash" {
		t.Errorf("model = %q, want flash", model)
	}
	if text != "The answer cites [1]." {
		t.Errorf("unexpected answer text %q", text)
	}

	h := provider.lastHistory
	if len(h) != 4 {
		t.Fatalf("history length = %d, want 4 (system + 2 prior + question)", len(h))
	}
	if h[0].Role != constant.ChatMessageRoleSystem {
		t.Errorf("first message role = %q, want system", h[0].Role)
	}
	if !strings.Contains(h[0].Content, "[1] report.pdf") {
		t.Errorf("system prompt missing numbered source: %q", h[0].Content)
	}
	if !strings.Contains(h[0].Content, `section "Findings"`) {
		t.Errorf("system prompt missing section heading: %q", h[0].Content)
	}
	if h[3].Content != "What did the report conclude?" {
		t.Errorf("last message should be the question, got %q", h[3].Content)
	}
}

func TestGenerateNoSources(t *testing.T) {
	provider := &fakeLLM{reply: "Nothing relevant found."}
	r := NewRouter(provider, "flash", "pro")

	_, _, err := r.Generate(context.Background(), Request{Question: "anything?"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(provider.lastHistory[0].Content, "No relevant excerpts") {
		t.Errorf("no-sources preamble missing: %q", provider.lastHistory[0].Content)
	}
}

func TestGenerateFileContext(t *testing.T) {
	provider := &fakeLLM{reply: "ok"}
	r := NewRouter(provider, "flash", "pro")

	_, _, err := r.Generate(context.Background(), Request{
		Question:    "what is this?",
		FileContext: "deposition_2024.pdf, currently open at page 3",
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !strings.Contains(provider.lastHistory[0].Content, "deposition_2024.pdf") {
		t.Errorf("file context missing from system prompt")
	}
}

func TestGenerateClassifiesErrors(t *testing.T) {
	provider := &fakeLLM{err: errors.New("got 429 Too Many Requests from upstream: rate limit hit")}
	r := NewRouter(provider, "flash", "pro")

	_, model, err := r.Generate(context.Background(), Request{Question: "q", Effort: constant.EffortDeep})
	if model != "pro" {
		t.Errorf("model = %q, want pro", model)
	}

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if genErr.Kind != KindRateLimit {
		t.Errorf("Kind = %s, want %s", genErr.Kind, KindRateLimit)
	}
	if strings.Contains(genErr.UserMessage(), "upstream") {
		t.Errorf("user message leaks provider internals: %q", genErr.UserMessage())
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	var _ net.Error = timeoutErr{}

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindGeneric},
		{"api key", errors.New("API key not valid"), KindAuth},
		{"unauthorized", errors.New("401 Unauthorized"), KindAuth},
		{"quota", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), KindRateLimit},
		{"too many requests", errors.New("too many requests"), KindRateLimit},
		{"model missing", errors.New("models/gemini-x is not found"), KindModelUnavailable},
		{"overloaded", errors.New("the model is overloaded"), KindModelUnavailable},
		{"safety", errors.New("candidate blocked due to SAFETY"), KindContentBlocked},
		{"net error", timeoutErr{}, KindNetwork},
		{"wrapped net error", fmt.Errorf("calling provider: %w", timeoutErr{}), KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"conn refused", errors.New("dial tcp: connection refused"), KindNetwork},
		{"unknown", errors.New("something odd happened"), KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUserMessagesCoverAllKinds(t *testing.T) {
	kinds := []ErrorKind{
		KindAuth, KindRateLimit, KindNetwork,
		KindModelUnavailable, KindContentBlocked, KindGeneric,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		e := &GenerationError{Kind: k, Model: "m", Err: errors.New("x")}
		msg := e.UserMessage()
		if msg == "" {
			t.Errorf("kind %s has empty user message", k)
		}
		if seen[msg] {
			t.Errorf("kind %s reuses another kind's message", k)
		}
		seen[msg] = true
	}
}
