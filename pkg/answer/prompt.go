package answer

import (
	"fmt"
	"strings"
)

const systemPreamble = `You are a research assistant answering questions about a user's case files. Ground every claim in the numbered sources below and cite them inline as [1], [2] and so on. If the sources do not contain the answer, say so plainly instead of guessing.`

const noSourcesPreamble = `You are a research assistant answering questions about a user's case files. No relevant excerpts were found for this question. Say that you could not find anything relevant in the uploaded files, and suggest what the user could upload or ask instead.`

func buildSystemPrompt(sources []Source, fileContext string) string {
	var sb strings.Builder
	if len(sources) == 0 {
		sb.WriteString(noSourcesPreamble)
		appendFileContext(&sb, fileContext)
		return sb.String()
	}

	sb.WriteString(systemPreamble)
	sb.WriteString("\n\nSources:\n")
	for _, s := range sources {
		sb.WriteString(fmt.Sprintf("\n[%d] %s", s.Index, s.FileName))
		if s.PageNumber != nil {
			sb.WriteString(fmt.Sprintf(", page %d", *s.PageNumber))
		}
		if s.SectionHeading != nil && *s.SectionHeading != "" {
			sb.WriteString(fmt.Sprintf(", section %q", *s.SectionHeading))
		}
		sb.WriteString("\n")
		sb.WriteString(s.Content)
		sb.WriteString("\n")
	}
	appendFileContext(&sb, fileContext)
	return sb.String()
}

func appendFileContext(sb *strings.Builder, fileContext string) {
	if strings.TrimSpace(fileContext) == "" {
		return
	}
	sb.WriteString("\n\nThe user is currently looking at this file:\n")
	sb.WriteString(fileContext)
}
