package answer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

type ErrorKind string

const (
	KindAuth             ErrorKind = "auth"
	KindRateLimit        ErrorKind = "rate_limit"
	KindNetwork          ErrorKind = "network"
	KindModelUnavailable ErrorKind = "model_unavailable"
	KindContentBlocked   ErrorKind = "content_blocked"
	KindGeneric          ErrorKind = "generic"
)

// GenerationError wraps a provider failure with a classified kind so the
// chat surface can show a stable, user-safe message instead of raw
// provider output.
type GenerationError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed (%s, model %s): %v", e.Kind, e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage is safe to persist as the assistant turn and return to the
// client. It never includes provider error bodies.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case KindAuth:
		return "The AI service rejected the configured credentials. Please contact an administrator."
	case KindRateLimit:
		return "The AI service is receiving too many requests right now. Please try again in a moment."
	case KindNetwork:
		return "Could not reach the AI service. Please check your connection and try again."
	case KindModelUnavailable:
		return "The selected AI model is currently unavailable. Please try again later."
	case KindContentBlocked:
		return "The response was blocked by the AI service's content policy. Try rephrasing your question."
	default:
		return "Something went wrong while generating the answer. Please try again."
	}
}

// Classify maps a raw provider error onto an ErrorKind by inspecting error
// types and well-known substrings of provider responses.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindGeneric
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case contains(msg, "api key", "unauthorized", "unauthenticated", "permission denied", "code 401", "code 403"):
		return KindAuth
	case contains(msg, "rate limit", "quota", "resource_exhausted", "too many requests", "code 429"):
		return KindRateLimit
	case contains(msg, "not found", "model_unavailable", "code 404", "code 503", "overloaded", "unavailable"):
		return KindModelUnavailable
	case contains(msg, "safety", "blocked", "prohibited_content"):
		return KindContentBlocked
	case contains(msg, "connection refused", "no such host", "timeout", "eof", "broken pipe"):
		return KindNetwork
	default:
		return KindGeneric
	}
}

func contains(msg string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
