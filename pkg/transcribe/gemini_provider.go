package transcribe

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

const transcribeInstruction = `Transcribe the speech in this recording. Start each paragraph with the timestamp where it begins, in the form [mm:ss] or [hh:mm:ss]. Output only the transcript, without speaker labels or commentary. If there is no speech, output nothing.`

type GeminiProvider struct {
	ApiKey    string
	ModelName string
	Client    *http.Client
}

func NewGeminiProvider(apiKey string) Provider {
	return &GeminiProvider{
		ApiKey:    apiKey,
		ModelName: "gemini-1.5-flash",
		Client:    &http.Client{Timeout: 300 * time.Second},
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

type transcribeRequest struct {
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

type transcribeResponse struct {
	Candidates []responseCandidate `json:"candidates"`
}

func (p *GeminiProvider) Transcribe(ctx context.Context, data []byte, mimeType string) (Transcript, error) {
	payload := transcribeRequest{
		Contents: []requestContent{
			{
				Parts: []requestPart{
					{Text: transcribeInstruction},
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
		return Transcript{}, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		p.ModelName,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return Transcript{}, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return Transcript{}, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return Transcript{}, err
	}

	if res.StatusCode != http.StatusOK {
		return Transcript{}, fmt.Errorf("gemini transcription error, code %d, body %s", res.StatusCode, string(resBody))
	}

	var transcribeRes transcribeResponse
	if err := json.Unmarshal(resBody, &transcribeRes); err != nil {
		return Transcript{}, err
	}

	if len(transcribeRes.Candidates) == 0 || transcribeRes.Candidates[0].Content == nil {
		return Transcript{}, nil
	}

	var sb strings.Builder
	for _, part := range transcribeRes.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return ParseStamped(strings.TrimSpace(sb.String())), nil
}
