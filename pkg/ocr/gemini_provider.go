package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const ocrInstruction = `Extract all visible text from this document. Preserve the structure: keep paragraphs separated, render tables row by row, and keep headings on their own lines. Output only the extracted text. If the document contains no legible text, output nothing.`

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

func NewGeminiProvider(apiKey string) Provider {
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: "gemini-1.5-flash",
		Client:    &http.Client{Timeout: 120 * time.Second},
	}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type requestPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type visionRequest struct {
	Contents []requestContent `json:"contents"`
}

type responsePart struct {
	Text string `json:"text"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
}

type responseCandidate struct {
	Content *responseContent `json:"content"`
}

type visionResponse struct {
	Candidates []responseCandidate `json:"candidates"`
}

func (p *GeminiProvider) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	payload := visionRequest{
		Contents: []requestContent{
			{
				Parts: []requestPart{
					{Text: ocrInstruction},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(data),
					}},
				},
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		p.ModelName,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini ocr error, code %d, body %s", res.StatusCode, string(resBody))
	}

	var visionRes visionResponse
	if err := json.Unmarshal(resBody, &visionRes); err != nil {
		return "", err
	}

	// No candidates means the model found nothing to read, not an error.
	if len(visionRes.Candidates) == 0 || visionRes.Candidates[0].Content == nil {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range visionRes.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
