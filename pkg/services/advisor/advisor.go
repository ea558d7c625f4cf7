// Package advisor wraps a single prompt/response call to a hosted language
// model. It has no audit logic of its own: it embeds the already computed
// financial context into a fixed prompt and returns the model's answer.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultModel = "gemini-2.5-flash"

const promptTemplate = `You are an Expert AI Financial Advisor (CFO) for a company.
Your tone is professional, concise, and helpful.

HERE IS THE REAL-TIME FINANCIAL DATA (CONTEXT):
%s

INSTRUCTIONS:
1. Use ONLY the context provided above to answer.
2. If the answer is not in the context, state that you do not know.
3. If anomalies are detected (Audit), mention them as a priority.
4. Answer the user's question below.

USER QUESTION:
%q`

// Advisor calls the Gemini generateContent REST endpoint.
type Advisor struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(a *Advisor) { a.model = model }
}

// WithBaseURL overrides the API host, used by tests.
func WithBaseURL(url string) Option {
	return func(a *Advisor) { a.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *Advisor) { a.client = client }
}

func New(apiKey string, opts ...Option) *Advisor {
	a := &Advisor{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: "https://generativelanguage.googleapis.com",
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildContext renders the financial context block embedded into the prompt.
func BuildContext(database string, monthlyRevenue float64, issueCount int, auditReport string) string {
	return fmt.Sprintf(`- Current Database: %s
- Monthly Revenue (Untaxed): %.2f
- Number of Anomalies Detected: %d

DETAILED AUDIT REPORT:
%s`, database, monthlyRevenue, issueCount, auditReport)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask sends the question plus financial context to the model and returns the
// first candidate's text.
func (a *Advisor) Ask(ctx context.Context, question, financialContext string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("advisor api key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(promptTemplate, financialContext, question)}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read advisor response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", fmt.Errorf("failed to decode advisor response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("advisor returned an error: %s", decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("advisor returned no answer")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
