package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/pharmavault/backend/internal/domain/entities"
	"github.com/pharmavault/backend/internal/domain/providers"
	"github.com/pharmavault/backend/pkg/config"
	"github.com/pharmavault/backend/pkg/retry"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	limiterBurst   = 5
)

// User-facing replies for failed generations.
const (
	NotConfiguredMessage  = "I apologize, but I am currently unable to connect to my AI services. Please verify the API configuration."
	InvalidKeyMessage     = "The AI service is unavailable due to an invalid API key. Please contact support."
	AtCapacityMessage     = "The AI service is currently at capacity. Please try again in a few minutes."
	GenericFailureMessage = "I'm sorry, I'm having trouble processing that right now. Could you please try rephrasing your question?"
)

var (
	errUnauthorized = errors.New("openai rejected the api key")
	errRateLimited  = errors.New("openai rate limit reached")
	errEmptyOutput  = errors.New("openai response missing output text")
)

// Client answers health questions through the OpenAI Responses API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
	retry      retry.Config
}

var _ providers.AssistantProvider = (*Client)(nil)

// NewClient creates a new OpenAI client. A client without an API key is
// valid; it reports Available() == false and answers with
// NotConfiguredMessage.
func NewClient(cfg *config.OpenAIConfig) *Client {
	c := &Client{
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      retry.RequestConfig(),
	}
	if cfg == nil {
		return c
	}

	c.apiKey = cfg.APIKey
	if cfg.Model != "" {
		c.model = cfg.Model
	}
	if cfg.BaseURL != "" {
		c.baseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		c.httpClient.Timeout = cfg.Timeout
	}
	if c.apiKey != "" {
		c.limiter = newTokenBucket(cfg.RateLimitPerMinute, limiterBurst)
	}
	return c
}

// Available implements providers.AssistantProvider
func (c *Client) Available() bool {
	return c.apiKey != ""
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// GenerateResponse implements providers.AssistantProvider. It never fails;
// errors are logged and mapped to one of the fixed apology messages.
func (c *Client) GenerateResponse(ctx context.Context, query string, contextMedicines []*entities.Medicine) string {
	if !c.Available() {
		return NotConfiguredMessage
	}

	text, err := c.generate(ctx, query, contextMedicines)
	if err != nil {
		log.Error().Err(err).Str("model", c.model).Int("context_medicines", len(contextMedicines)).Msg("AI response generation failed")
		return failureMessage(err)
	}
	return text
}

// IsFailureMessage reports whether reply is one of the fixed apologies
// rather than generated text.
func IsFailureMessage(reply string) bool {
	switch reply {
	case NotConfiguredMessage, InvalidKeyMessage, AtCapacityMessage, GenericFailureMessage:
		return true
	}
	return false
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, errUnauthorized):
		return InvalidKeyMessage
	case errors.Is(err, errRateLimited):
		return AtCapacityMessage
	default:
		return GenericFailureMessage
	}
}

func (c *Client) generate(ctx context.Context, query string, contextMedicines []*entities.Medicine) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordOpenAIMetric(ctx, c.model, 0, 0, err)
			return "", err
		}
		recordOpenAIRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	payload := map[string]interface{}{
		"model":        c.model,
		"instructions": assistantSystemPrompt,
		"input": []map[string]string{
			{"role": "user", "content": buildUserPrompt(query, contextMedicines)},
		},
		"temperature":       0.4,
		"max_output_tokens": 800,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	var text string
	err = retry.DoWithLog(ctx, c.retry, "openai", func() error {
		var callErr error
		text, callErr = c.call(ctx, body)
		return callErr
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", nextDelay).Msg("retrying OpenAI request")
	})
	return text, err
}

// call performs one POST /responses. Errors that retrying cannot fix are
// wrapped with retry.Permanent.
func (c *Client) call(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", retry.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordOpenAIMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := fmt.Errorf("openai request failed with status %d", resp.StatusCode)
		recordOpenAIMetric(ctx, c.model, resp.StatusCode, time.Since(start), statusErr)
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return "", retry.Permanent(fmt.Errorf("%w: %v", errUnauthorized, statusErr))
		case resp.StatusCode == http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: %v", errRateLimited, statusErr)
		case resp.StatusCode >= 500:
			return "", statusErr
		default:
			return "", retry.Permanent(statusErr)
		}
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordOpenAIMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", retry.Permanent(fmt.Errorf("failed to decode openai response: %w", err))
	}

	text := strings.TrimSpace(outputText(envelope))
	if text == "" {
		recordOpenAIMetric(ctx, c.model, resp.StatusCode, time.Since(start), errEmptyOutput)
		return "", retry.Permanent(errEmptyOutput)
	}

	recordOpenAIMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

func outputText(envelope responseEnvelope) string {
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				return content.Text
			}
		}
	}
	return ""
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type openAIMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var (
	openaiMetricsOnce sync.Once
	openaiMetrics     *openAIMetrics
)

func ensureOpenAIMetrics() *openAIMetrics {
	openaiMetricsOnce.Do(func() {
		meter := otel.Meter("github.com/pharmavault/backend/openai")

		requestCount, err := meter.Int64Counter(
			"ai.openai.request.count",
			metric.WithDescription("Number of OpenAI requests"),
		)
		if err != nil {
			return
		}
		requestDuration, err := meter.Float64Histogram(
			"ai.openai.request.duration",
			metric.WithDescription("OpenAI request duration in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}
		requestErrors, err := meter.Int64Counter(
			"ai.openai.request.errors",
			metric.WithDescription("Number of OpenAI request errors"),
		)
		if err != nil {
			return
		}
		rateLimitWait, err := meter.Float64Histogram(
			"ai.openai.rate_limit.wait",
			metric.WithDescription("Time spent waiting for OpenAI rate limiter in milliseconds"),
			metric.WithUnit("ms"),
		)
		if err != nil {
			return
		}

		openaiMetrics = &openAIMetrics{
			requestCount:    requestCount,
			requestDuration: requestDuration,
			requestErrors:   requestErrors,
			rateLimitWait:   rateLimitWait,
		}
	})
	return openaiMetrics
}

func recordOpenAIMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	m := ensureOpenAIMetrics()
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	m.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		m.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordOpenAIRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	m := ensureOpenAIMetrics()
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	m.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
