package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"docquiz/models"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	apiTimeout     = 90 * time.Second
)

// GeminiClient manages interactions with the Gemini generateContent API.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates a client for the given API key and model name.
func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: apiTimeout},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

const conversionPrompt = `Convert the following document into a quiz/trivia format. Extract key information and create 10-20 multiple choice questions. Each question should have:
- A clear, concise question
- Exactly 4 answer options
- The correct answer index (0-3)

Format your response as a valid JSON array of objects with this exact structure:
[
  {
    "question": "Question text here",
    "options": ["Option 1", "Option 2", "Option 3", "Option 4"],
    "correct_answer": 0
  }
]

Document content:
%s

Return only the JSON array, no additional text or markdown formatting.`

// ConvertDocumentToTrivia sends extracted document text to the model and
// returns the coerced question set. Any unparseable reply fails the whole
// conversion; partial question sets are never returned.
func (c *GeminiClient) ConvertDocumentToTrivia(ctx context.Context, documentText string) ([]models.Question, error) {
	start := time.Now()

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: fmt.Sprintf(conversionPrompt, documentText)}}},
		},
	}
	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConversionFailed, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConversionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Gemini request failed after %v: %v", time.Since(start), err)
		return nil, fmt.Errorf("%w: %v", models.ErrConversionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConversionFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini request returned status %d: %s", resp.StatusCode, truncate(string(body), 300))
		return nil, fmt.Errorf("%w: model API returned status %d", models.ErrConversionFailed, resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrConversionFailed, err)
	}
	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates in model response", models.ErrConversionFailed)
	}

	questions, err := ParseTriviaResponse(geminiResp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		return nil, err
	}

	log.Printf("converted document to %d questions in %v", len(questions), time.Since(start))
	return questions, nil
}

// rawQuestion tolerates the loose shapes models actually emit; fields are
// coerced into the strict Question shape by ParseTriviaResponse.
type rawQuestion struct {
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

// ParseTriviaResponse parses the model reply into questions, applying the
// defaulting policy: missing question text becomes "Question N", non-array
// options become empty and are padded/truncated to four slots, and a
// non-numeric correct answer parses as an integer, defaulting to 0.
func ParseTriviaResponse(text string) ([]models.Question, error) {
	cleaned := stripCodeFences(text)

	var raw []rawQuestion
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON array: %v", models.ErrConversionFailed, err)
	}

	questions := make([]models.Question, 0, len(raw))
	for i, item := range raw {
		q := models.Question{
			Question:      item.Question,
			Options:       coerceOptions(item.Options),
			CorrectAnswer: coerceCorrectAnswer(item.CorrectAnswer),
		}
		if q.Question == "" {
			q.Question = fmt.Sprintf("Question %d", i+1)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func stripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

func coerceOptions(raw json.RawMessage) []string {
	var options []string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &options); err != nil {
			options = nil
		}
	}
	// Pad or truncate to exactly four slots.
	for len(options) < models.OptionCount {
		options = append(options, "")
	}
	return options[:models.OptionCount]
}

func coerceCorrectAnswer(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return clampAnswer(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return clampAnswer(parsed)
		}
	}
	return 0
}

func clampAnswer(n int) int {
	if n < 0 || n >= models.OptionCount {
		return 0
	}
	return n
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
