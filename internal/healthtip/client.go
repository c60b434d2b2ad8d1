// Package healthtip holds the outbound generative-text client and the tip
// caches used by services.HealthTipService.
package healthtip

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultClientTimeout = 15 * time.Second

var (
	ErrAPIKeyMissing   = errors.New("health tip api key is not configured")
	ErrEmptyCandidate  = errors.New("health tip response has no candidate text")
	ErrUpstreamFailure = errors.New("health tip upstream request failed")
)

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
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client calls a generateContent style endpoint and returns the first
// candidate's first text part.
type Client struct {
	httpClient *resty.Client
	endpoint   string
	apiKey     string
	logger     *zap.Logger
}

func NewClient(endpoint string, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: httpClient,
		endpoint:   strings.TrimSpace(endpoint),
		apiKey:     strings.TrimSpace(apiKey),
		logger:     logger,
	}
}

func (client *Client) GenerateTip(ctx context.Context, prompt string) (string, error) {
	if client.apiKey == "" || client.endpoint == "" {
		return "", ErrAPIKeyMissing
	}

	var response generateResponse
	resp, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", client.apiKey).
		SetBody(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}}).
		SetResult(&response).
		SetError(&response).
		Post(client.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamFailure, err)
	}
	if resp.IsError() {
		message := resp.Status()
		if response.Error != nil && response.Error.Message != "" {
			message = response.Error.Message
		}
		client.logger.Warn("health tip api returned error",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", message),
		)
		return "", fmt.Errorf("%w: status %d: %s", ErrUpstreamFailure, resp.StatusCode(), message)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCandidate
	}
	text := strings.TrimSpace(response.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyCandidate
	}
	return text, nil
}
