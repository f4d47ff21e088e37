package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GeminiProvider implements Provider on the Gemini generateContent API with
// inline image data.
type GeminiProvider struct {
	ApiKey string
	Model  string
	client *http.Client
}

func NewGeminiProvider(apiKey, model string) Provider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GeminiProvider{
		ApiKey: apiKey,
		Model:  model,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		ResponseMimeType string `json:"response_mime_type"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (p *GeminiProvider) Extract(ctx context.Context, req Request) (*Result, error) {
	body := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: extractionPrompt},
				{InlineData: &geminiInlineData{
					MimeType: req.MimeType,
					Data:     base64.StdEncoding.EncodeToString(req.Content),
				}},
			},
		}},
	}
	body.GenerationConfig.ResponseMimeType = "application/json"

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		p.Model, p.ApiKey,
	)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini extraction error: %s", string(bodyBytes))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(bodyBytes, &geminiResp); err != nil {
		return nil, err
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini extraction returned no candidates")
	}

	return ParseResult([]byte(geminiResp.Candidates[0].Content.Parts[0].Text))
}
