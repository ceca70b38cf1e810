package mistral

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"mistralbridge/pkg/llm"
	"mistralbridge/pkg/types"
)

// TypeID identifies this adapter kind to pipeline frameworks.
const TypeID = "custom_mistral"

// Fallback is returned when a 2xx response carries no generated text.
// Callers cannot distinguish "model produced nothing" from a success-shaped
// response that is missing the outputs field; both map to this literal.
const Fallback = "No text generated."

// defaultTemperature matches the endpoint's documented sampling default.
const defaultTemperature = 0.7

// maxResponseBytes caps how much of a response body is read. 1 MiB, same
// limit the serving side applies to request bodies.
const maxResponseBytes int64 = 1 << 20

// Config holds the immutable settings for a Client.
// Zero values mean "unspecified" and are replaced by defaults in New.
type Config struct {
	// Endpoint is the target URL for generation requests. Required.
	Endpoint string
	// AuthToken is sent as a Bearer credential. Required.
	AuthToken string
	// Temperature is kept as identifying metadata only. The outgoing payload
	// never carries it; the remote service applies its own default.
	Temperature float64
	// InsecureSkipVerify disables TLS certificate verification for requests
	// to self-signed internal endpoints. Verification stays on unless the
	// caller explicitly opts out.
	InsecureSkipVerify bool
	// Timeout bounds each Generate call. Zero leaves deadlines to the caller's
	// context.
	Timeout time.Duration
	// HTTPClient overrides the built transport, mainly for tests.
	HTTPClient *http.Client
}

// Client adapts a remote Mistral-style generation endpoint to llm.Generator.
// Every call is an independent, stateless request/response cycle; a Client is
// safe for concurrent use.
type Client struct {
	endpoint    string
	authToken   string
	temperature float64
	timeout     time.Duration
	httpClient  *http.Client
}

var _ llm.Generator = (*Client)(nil)

// New constructs a Client from cfg. Missing required fields are reported at
// Generate time so construction never fails.
func New(cfg Config) *Client {
	cli := cfg.HTTPClient
	if cli == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		if cfg.InsecureSkipVerify {
			tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		// Timeout stays 0 on the http.Client; Generate applies cfg.Timeout
		// through the request context so cancellation errors surface as
		// context errors.
		cli = &http.Client{Transport: tr, Timeout: 0}
	}
	temp := cfg.Temperature
	if temp == 0 {
		temp = defaultTemperature
	}
	return &Client{
		endpoint:    strings.TrimSpace(cfg.Endpoint),
		authToken:   cfg.AuthToken,
		temperature: temp,
		timeout:     cfg.Timeout,
		httpClient:  cli,
	}
}

// TypeID implements llm.Generator.
func (c *Client) TypeID() string { return TypeID }

// IdentifyingParams implements llm.Generator. The mapping is rebuilt on each
// call and independent of any Generate history.
func (c *Client) IdentifyingParams() map[string]any {
	return map[string]any{
		"endpoint":    c.endpoint,
		"temperature": c.temperature,
	}
}

// Generate sends one synchronous POST to the endpoint and returns the first
// generated text, whitespace-trimmed, or Fallback when the response carries
// none. opts.Stop and opts.Extra are accepted for interface compatibility but
// never serialized: the outgoing body is exactly {"prompt": <prompt>}.
//
// Non-2xx statuses surface as *HTTPError. Transport failures and invalid
// JSON propagate as errors; there are no retries.
func (c *Client) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	if c.endpoint == "" {
		return "", ErrMissingEndpoint
	}
	if c.authToken == "" {
		return "", ErrMissingAuthToken
	}
	_ = opts

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(types.GenerateRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observeGenerate(outcomeTransport, time.Since(start))
		// Translate context timeouts/cancels
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		observeGenerate(outcomeTransport, time.Since(start))
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observeGenerate(outcomeHTTPError, time.Since(start))
		if zlog != nil {
			zlog.Error().Str("endpoint", c.endpoint).Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("generate failed")
		}
		return "", &HTTPError{Status: resp.StatusCode, Body: string(raw)}
	}

	var parsed types.GenerateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		observeGenerate(outcomeParseError, time.Since(start))
		return "", fmt.Errorf("%w: %v", ErrParseResponse, err)
	}

	if len(parsed.Outputs) == 0 {
		observeGenerate(outcomeFallback, time.Since(start))
		if zlog != nil {
			zlog.Warn().Str("endpoint", c.endpoint).Dur("dur", time.Since(start)).Msg("response carried no outputs")
		}
		return Fallback, nil
	}

	observeGenerate(outcomeOK, time.Since(start))
	if zlog != nil {
		zlog.Debug().Str("endpoint", c.endpoint).Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("generate ok")
	}
	return strings.TrimSpace(parsed.Outputs[0].Text), nil
}
