package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Alijeyrad/clinic_console/config"
	"github.com/Alijeyrad/clinic_console/pkg/constants"
	"github.com/Alijeyrad/clinic_console/pkg/reqctx"
)

// TokenSource supplies the bearer token attached to each call. It is
// consulted per request so a login or logout takes effect immediately.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func FromCentralConfig(c config.APIConfig) Config {
	return Config{
		BaseURL:   c.BaseURL,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
	}
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	tokens    TokenSource
}

// New returns a client without credentials. Use WithTokenSource for the
// authenticated endpoints.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Timeout > 0 && httpClient.Timeout == 0 {
		hc := *httpClient
		hc.Timeout = cfg.Timeout
		httpClient = &hc
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      httpClient,
	}
}

// WithTokenSource returns a copy of the client that attaches ts's token.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do performs one JSON request. body is encoded when non-nil and the
// response is decoded into out when out is non-nil. Any non-2xx status is
// returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("apiclient: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if rid := reqctx.RequestIDFromContext(ctx); rid != "" {
		req.Header.Set(constants.HeaderRequestID, rid)
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &Error{Method: method, Path: path, Message: err.Error(), cause: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(method, path, res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("apiclient: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(method, path string, res *http.Response) error {
	e := &Error{StatusCode: res.StatusCode, Method: method, Path: path}

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		e.Message = body.Error
		if e.Message == "" {
			e.Message = body.Message
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(raw))
	}
	if e.Message == "" {
		e.Message = http.StatusText(res.StatusCode)
	}
	return e
}
