package genapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"brandkit/internal/infra"
)

// DefaultBaseURL is the public gen-api endpoint.
const DefaultBaseURL = "https://api.gen-api.ru/api/v1"

var (
	// ErrEmptyModel indicates that a submission was attempted without a model slug.
	ErrEmptyModel = errors.New("genapi: model is required")
	// ErrUnexpectedStatus wraps every non-2xx answer from the provider.
	ErrUnexpectedStatus = errors.New("genapi: unexpected status")
)

// Options configures the provider client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client talks to the asynchronous generation API. It is safe for concurrent use.
type Client struct {
	apiKey   string
	baseURL  string
	api      *resty.Client
	download *resty.Client
	logger   *infra.Logger
}

// Submission is the provider's answer to a job submission.
type Submission struct {
	RequestID string
	Status    string
	Raw       map[string]any
}

// NewClient constructs a client with defaults for everything left empty.
func NewClient(opts Options) (*Client, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("genapi: invalid base url: %w", err)
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	apiKey := strings.TrimSpace(opts.APIKey)
	api := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: logger})
	if apiKey != "" {
		api.SetAuthToken(apiKey)
	}
	// Image hosts never see the bearer token.
	dl := resty.NewWithClient(httpClient).SetLogger(restyLogger{logger: logger})

	return &Client{
		apiKey:   apiKey,
		baseURL:  baseURL,
		api:      api,
		download: dl,
		logger:   logger,
	}, nil
}

// HasCredentials reports whether an API key was configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts a model-specific payload to /networks/{model}. A missing
// request_id is not an error here; callers decide how to treat it.
func (c *Client) Submit(ctx context.Context, model string, payload any) (*Submission, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, ErrEmptyModel
	}
	resp, err := c.api.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("model", model).
		SetBody(payload).
		Post("/networks/{model}")
	if err != nil {
		return nil, fmt.Errorf("genapi: submit %s: %w", model, err)
	}
	if resp.StatusCode() >= 300 {
		return nil, statusError("submit", resp)
	}
	raw, err := decodeObject(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("genapi: decode submission: %w", err)
	}
	sub := &Submission{
		RequestID: stringify(raw["request_id"]),
		Raw:       raw,
	}
	if s, ok := raw["status"].(string); ok {
		sub.Status = s
	}
	c.logger.Debug().
		Str("model", model).
		Str("request_id", sub.RequestID).
		Str("status", sub.Status).
		Msg("genapi: job submitted")
	return sub, nil
}

// Status fetches the current state of a job from /request/get/{id}.
func (c *Client) Status(ctx context.Context, requestID string) (map[string]any, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return nil, errors.New("genapi: request id is required")
	}
	resp, err := c.api.R().
		SetContext(ctx).
		SetPathParam("id", requestID).
		Get("/request/get/{id}")
	if err != nil {
		return nil, fmt.Errorf("genapi: status %s: %w", requestID, err)
	}
	if resp.StatusCode() >= 300 {
		return nil, statusError("status", resp)
	}
	raw, err := decodeObject(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("genapi: decode status: %w", err)
	}
	return raw, nil
}

// Download fetches binary content from an absolute URL, typically a generated image.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, "", fmt.Errorf("genapi: invalid download url: %s", rawURL)
	}
	resp, err := c.download.R().
		SetContext(ctx).
		Get(parsed.String())
	if err != nil {
		return nil, "", fmt.Errorf("genapi: download: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return nil, "", fmt.Errorf("genapi: download status %d", resp.StatusCode())
	}
	data := resp.Body()
	if len(data) == 0 {
		return nil, "", errors.New("genapi: download returned empty body")
	}
	return data, resp.Header().Get("Content-Type"), nil
}

func statusError(op string, resp *resty.Response) error {
	body := resp.Body()
	detail := strings.TrimSpace(string(body))
	if raw, err := decodeObject(body); err == nil {
		for _, key := range []string{"detail", "message", "error"} {
			if msg := stringify(raw[key]); msg != "" {
				detail = msg
				break
			}
		}
	}
	if detail == "" {
		return fmt.Errorf("%w: %s status %d", ErrUnexpectedStatus, op, resp.StatusCode())
	}
	return fmt.Errorf("%w: %s status %d: %s", ErrUnexpectedStatus, op, resp.StatusCode(), detail)
}

func decodeObject(body []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.New("response is not a json object")
	}
	return out, nil
}

// stringify renders ids that the provider sometimes sends as numbers.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case map[string]any:
		if msg, ok := val["message"].(string); ok {
			return strings.TrimSpace(msg)
		}
		return ""
	default:
		return ""
	}
}

type restyLogger struct {
	logger *infra.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Error().Msgf("genapi: "+format, v...)
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Warn().Msgf("genapi: "+format, v...)
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msgf("genapi: "+format, v...)
}
