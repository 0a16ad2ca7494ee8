package geminiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// --- Gemini API Configuration ---
const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultModel      = "gemini-2.5-flash-preview-09-2025"
	defaultMaxRetries = 3
	defaultBackoff    = 1 * time.Second
	defaultTimeout    = 30 * time.Second
	maxErrorBody      = 2048
)

var (
	// ErrNotConfigured is returned when no API key was supplied.
	ErrNotConfigured = errors.New("gemini: API key is not configured")

	// ErrEmptyHistory is returned when the conversation has no user turn to answer.
	ErrEmptyHistory = errors.New("gemini: conversation has no user turn")

	// ErrNoCandidates marks a 200 response without candidates[0].content.parts[0].text.
	ErrNoCandidates = errors.New("gemini: no content found in response")
)

// --- Structs for Gemini API Request/Response ---

type GeminiPayload struct {
	Contents          []GeminiContent `json:"contents"`
	Tools             []GeminiTool    `json:"tools,omitempty"`
	SystemInstruction *GeminiContent  `json:"systemInstruction,omitempty"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

// GeminiTool enables a server-side tool. Only search grounding is used.
type GeminiTool struct {
	GoogleSearch *GoogleSearch `json:"google_search,omitempty"`
}

// GoogleSearch encodes as an empty object.
type GoogleSearch struct{}

type GeminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				// Text is nil when the part carries something else, such as a functionCall.
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
	CacheSize  int
	HTTPClient *http.Client
}

// Client relays conversations to the generateContent endpoint.
type Client struct {
	apiKey     string
	endpoint   string
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	http       *http.Client
	cache      *replyCache
}

// NewClient builds a Client. A missing API key is not an error here; every
// call will answer with FallbackUnavailable until one is configured.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Backoff <= 0 {
		opts.Backoff = defaultBackoff
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	cache, err := newReplyCache(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply cache: %w", err)
	}

	return &Client{
		apiKey:     opts.APIKey,
		endpoint:   fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(opts.BaseURL, "/"), opts.Model),
		timeout:    opts.Timeout,
		maxRetries: opts.MaxRetries,
		backoff:    opts.Backoff,
		http:       opts.HTTPClient,
		cache:      cache,
	}, nil
}

// CachedReplies returns the number of memoized replies.
func (c *Client) CachedReplies() int {
	return c.cache.size()
}

// MaxCallDuration is the longest SendChat can spend upstream: every attempt
// running into its timeout plus the backoff waits between them.
func (c *Client) MaxCallDuration() time.Duration {
	total := time.Duration(c.maxRetries) * c.timeout
	for i := 1; i < c.maxRetries; i++ {
		total += c.backoff * time.Duration(math.Pow(2, float64(i-1)))
	}
	return total
}

// FormatRequest converts the history into the generateContent body. The
// persona and the search tool are attached once per request.
func FormatRequest(turns []Turn) GeminiPayload {
	contents := make([]GeminiContent, 0, len(turns))
	for _, t := range turns {
		contents = append(contents, GeminiContent{
			Role:  string(t.Role),
			Parts: []GeminiPart{{Text: t.Text}},
		})
	}

	return GeminiPayload{
		Contents: contents,
		Tools:    []GeminiTool{{GoogleSearch: &GoogleSearch{}}},
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: CoachPersona}},
		},
	}
}

// SendChat returns the model's reply to the conversation. It never fails
// without a displayable reply: transport problems yield FallbackUnavailable
// together with the cause, and a response without text yields
// FallbackMalformed. Successful replies are memoized by history.
func (c *Client) SendChat(ctx context.Context, logger *zerolog.Logger, conv *Conversation) (string, error) {
	if logger == nil {
		logger = &log.Logger
	}

	turns := conv.Window()
	if len(turns) == 0 {
		return FallbackMalformed, ErrEmptyHistory
	}
	if c.apiKey == "" {
		logger.Error().Msg("GEMINI_API_KEY environment variable is not set")
		return FallbackUnavailable, ErrNotConfigured
	}

	key := historyKey(turns)
	if reply, ok := c.cache.get(key); ok {
		logger.Debug().Int("turns", len(turns)).Msg("Serving chat reply from cache")
		return reply, nil
	}

	reply, shared, err := c.cache.do(key, func() (string, error) {
		reply, err := c.callGemini(ctx, logger, FormatRequest(turns))
		if err == nil {
			c.cache.add(key, reply)
		}
		return reply, err
	})
	if shared {
		logger.Debug().Msg("Joined in-flight chat request")
	}

	switch {
	case errors.Is(err, ErrNoCandidates):
		logger.Warn().Err(err).Msg("Unexpected Gemini response shape")
		return FallbackMalformed, nil
	case err != nil:
		logger.Error().Err(err).Msg("Gemini chat request failed")
		return FallbackUnavailable, err
	}
	return reply, nil
}

// callGemini handles the actual HTTP request to the Gemini API
func (c *Client) callGemini(ctx context.Context, logger *zerolog.Logger, payload GeminiPayload) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	reqURL := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	var lastErr error

	// Exponential backoff retry loop
	for i := 0; i < c.maxRetries; i++ {
		if i > 0 {
			wait := c.backoff * time.Duration(math.Pow(2, float64(i-1)))
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("gemini request canceled: %w", ctx.Err())
			case <-time.After(wait):
			}
		}

		logger.Info().Msgf("Attempt %d: Calling Gemini API...", i+1)

		text, retry, err := c.attempt(ctx, reqURL, payloadBytes)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retry {
			return "", err
		}
		logger.Warn().Err(err).Msgf("Attempt %d failed", i+1)
	}

	return "", fmt.Errorf("failed to call Gemini API after %d attempts: %w", c.maxRetries, lastErr)
}

// attempt performs one request. retry is true for failures worth repeating:
// transport errors, 429 and 5xx.
func (c *Client) attempt(ctx context.Context, reqURL string, body []byte) (text string, retry bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", ctx.Err() == nil, fmt.Errorf("request failed: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		retry = resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return "", retry, fmt.Errorf("API returned non-2xx status: %s, Body: %s", resp.Status, string(errBody))
	}

	var geminiResp GeminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return "", false, fmt.Errorf("%w: failed to decode response: %v", ErrNoCandidates, err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", false, ErrNoCandidates
	}
	partText := geminiResp.Candidates[0].Content.Parts[0].Text
	if partText == nil || strings.TrimSpace(*partText) == "" {
		return "", false, fmt.Errorf("%w: first part has no text", ErrNoCandidates)
	}
	return *partText, false, nil
}

// redactKey strips the API key from url.Error messages before they are logged.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED")
	}
	return err
}
