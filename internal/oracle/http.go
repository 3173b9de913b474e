package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/abhisek/mathtutor/internal/llm"
)

const maxResponseBytes = 1 << 20

// HTTPConfig configures an HTTPOracle.
type HTTPConfig struct {
	URL     string
	Timeout time.Duration

	// Client overrides the HTTP client. Optional.
	Client *http.Client
}

// HTTPOracle posts the request as JSON to a grading proxy.
type HTTPOracle struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPOracle creates an oracle for the proxy at cfg.URL.
func NewHTTPOracle(cfg HTTPConfig) (*HTTPOracle, error) {
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse oracle url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("oracle url must be http or https, got %q", cfg.URL)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPOracle{url: u.String(), timeout: cfg.Timeout, client: client}, nil
}

func (o *HTTPOracle) Name() string { return "http" }

// httpResponse is the proxy's reply.
type httpResponse struct {
	Success     bool    `json:"success"`
	IsCorrect   bool    `json:"isCorrect"`
	IsPartial   bool    `json:"isPartial"`
	Confidence  float64 `json:"confidence"`
	Feedback    string  `json:"feedback"`
	Explanation string  `json:"explanation"`
	WhatCorrect *string `json:"whatCorrect"`
	WhatMissing *string `json:"whatMissing"`
	Error       string  `json:"error"`
}

func (o *HTTPOracle) Verify(ctx context.Context, req Request) (*Verdict, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, unavailable(fmt.Errorf("marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url, bytes.NewReader(body))
	if err != nil {
		return nil, unavailable(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, unavailable(fmt.Errorf("post: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, unavailable(fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, unavailable(fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := llm.ValidateResponse(ResponseSchema, raw); err != nil {
		return nil, unavailable(err)
	}

	var r httpResponse
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, unavailable(fmt.Errorf("decode response: %w", err))
	}
	if !r.Success {
		msg := r.Error
		if msg == "" {
			msg = "no error message"
		}
		return nil, unavailable(fmt.Errorf("proxy reported failure: %s", msg))
	}

	v := &Verdict{
		IsCorrect:   r.IsCorrect,
		IsPartial:   r.IsPartial && !r.IsCorrect,
		Confidence:  clampConfidence(r.Confidence),
		Feedback:    r.Feedback,
		Explanation: r.Explanation,
	}
	if r.WhatCorrect != nil {
		v.WhatCorrect = *r.WhatCorrect
	}
	if r.WhatMissing != nil {
		v.WhatMissing = *r.WhatMissing
	}
	return v, nil
}
