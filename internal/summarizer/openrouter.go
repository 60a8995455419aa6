package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// MinTargetWords and MaxTargetWords bound the requested summary length.
	MinTargetWords int64 = 30
	MaxTargetWords int64 = 150

	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "stepfun/step-3.5-flash:free"

	defaultTimeout = 30 * time.Second

	refererHeader = "http://localhost:8501"
	titleHeader   = "sumpad"

	systemPromptFmt = "You are a helpful assistant that creates concise and accurate " +
		"summaries of text. Provide clear, well-structured summaries that capture " +
		"the main points. Keep your summary to approximately %d words."
	userPromptFmt = "Please summarize the following text in approximately %d words:\n\n%s"
)

// OpenRouterConfig holds construction-time settings. The credential is
// injected here rather than read from the environment so tests can
// substitute it.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenRouterSummarizer issues a single chat-completions call per request
// against an OpenAI-compatible endpoint. It is stateless and safe for
// concurrent use.
type OpenRouterSummarizer struct {
	client openai.Client
	apiKey string
	model  string
}

func NewOpenRouterSummarizer(cfg OpenRouterConfig) *OpenRouterSummarizer {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithRequestTimeout(timeout),
		// One attempt per request. Failures surface to the caller
		// instead of being retried.
		option.WithMaxRetries(0),
		option.WithHeader("HTTP-Referer", refererHeader),
		option.WithHeader("X-Title", titleHeader),
	)

	return &OpenRouterSummarizer{
		client: client,
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  model,
	}
}

// ClampTargetWords pulls a requested summary length into the supported
// range.
func ClampTargetWords(words int64) int64 {
	if words < MinTargetWords {
		return MinTargetWords
	}
	if words > MaxTargetWords {
		return MaxTargetWords
	}

	return words
}

// Summarize validates the request, performs exactly one chat-completions
// call, and returns the first completion's text. Every failure is a
// *summarizer.Error; validation failures short-circuit before any network
// I/O.
func (s *OpenRouterSummarizer) Summarize(
	ctx context.Context,
	req Request,
) (string, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return "", newError(FailureInvalidInput, "input text is empty", nil)
	}

	if s.apiKey == "" {
		return "", newError(FailureMissingCredential, "API key is missing", nil)
	}

	targetWords := ClampTargetWords(req.TargetWords)

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPromptFmt, targetWords)),
			openai.UserMessage(fmt.Sprintf(userPromptFmt, targetWords, text)),
		},
	})
	if err != nil {
		return "", classifyRequestError(err)
	}

	if len(resp.Choices) == 0 {
		return "", newError(FailureProvider, "response has no choices", nil)
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", newError(FailureProvider, "completion text is empty", nil)
	}

	return summary, nil
}

func classifyRequestError(err error) *Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return newError(FailureAuth, "provider rejected the credential", err)
		case http.StatusTooManyRequests:
			return newError(FailureRateLimited, "provider rate limit exceeded", err)
		default:
			return newError(FailureProvider,
				fmt.Sprintf("provider returned status %d", apiErr.StatusCode), err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return newError(FailureNetwork, "request did not complete", err)
	}

	// Undecodable success bodies and other SDK-level failures.
	return newError(FailureProvider, "unexpected provider response", err)
}
