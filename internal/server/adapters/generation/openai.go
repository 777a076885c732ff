// Package generation wraps the text-generation provider. The adapter never
// fails past its boundary: any upstream problem (missing credential,
// provider error, timeout) is absorbed and replaced by a fixed fallback
// summary templated with the title, so callers always receive usable text.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/boksu/booksum/internal/logging"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are an expert at creating engaging, relatable summaries of non-fiction books. " +
	"Create a 3-4 minute audio script that captures the key insights and actionable takeaways. " +
	"Make it conversational and engaging for audio consumption."

// Adapter calls an OpenAI-compatible chat-completions endpoint.
type Adapter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
	logger   logging.Logger
}

func New(apiKey, model string, logger logging.Logger) *Adapter {
	return &Adapter{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		client:   &http.Client{Timeout: 90 * time.Second},
		logger:   logger.With("module", "generation"),
	}
}

// Available reports whether a provider credential is configured.
func (a *Adapter) Available() bool { return a.apiKey != "" }

// Generate returns summary prose for the given book title. Provider
// failures are logged and degrade to the deterministic fallback.
func (a *Adapter) Generate(ctx context.Context, title string) string {
	if a.apiKey == "" {
		a.logger.Warn(ctx, "generation provider not configured, using fallback summary", "title", title)
		return Fallback(title)
	}

	text, err := a.callChatCompletion(ctx, title)
	if err != nil {
		a.logger.Error(ctx, "generation provider call failed, using fallback summary", "title", title, "error", err.Error())
		return Fallback(title)
	}

	a.logger.Info(ctx, "summary generated", "title", title, "chars", len(text))
	return text
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (a *Adapter) callChatCompletion(ctx context.Context, title string) (string, error) {
	payload := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(
				"Create an engaging audio summary script for the book '%s'. "+
					"Focus on the most important insights and actionable advice. "+
					"Structure it with a clear introduction, main points, and conclusion. "+
					"Make it sound natural when spoken aloud.", title)},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("provider error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("provider returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}

// Fallback is the deterministic summary used whenever the provider is
// unavailable. Repeated calls for the same title return identical text.
func Fallback(title string) string {
	return fmt.Sprintf(`Welcome to this engaging summary of %q.

This book offers profound insights into personal development and practical wisdom that can transform your daily life. The author presents compelling arguments backed by research and real-world examples.

Key takeaways include understanding the importance of consistent daily habits, the power of mindset in achieving goals, and practical strategies for implementing positive changes.

The book emphasizes that small, consistent actions compound over time to create remarkable results. Whether you're looking to improve your productivity, relationships, or overall well-being, this book provides actionable advice you can start applying immediately.

Remember, the journey of personal growth is ongoing, and every step forward, no matter how small, brings you closer to your goals. Thank you for listening to this summary.`, title)
}
