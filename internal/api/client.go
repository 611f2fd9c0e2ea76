package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/afianhyira/Campus-Event-Frontend/internal/config"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const maxErrorBody = 1 << 16

// TokenSource yields the credential of the browser session bound to ctx, or
// "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client issues requests against the campus REST backend. Every request gets
// the base URL, the bearer credential and a request id attached.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
	Tokens TokenSource `optional:"true"`
}

func New(p Params) (*Client, error) {
	baseURL, err := url.Parse(p.Config.Backend.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: p.Config.Backend.Timeout},
		tokens:  p.Tokens,
		log:     p.Log,
	}, nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) url(query url.Values, elem ...string) string {
	escaped := make([]string, len(elem))
	for i, e := range elem {
		escaped[i] = url.PathEscape(e)
	}

	u := c.baseURL.JoinPath(escaped...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", requestID(ctx))
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}

		var eb errorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Message = eb.Message
		}

		c.log.Debug("backend request failed",
			zap.String("method", method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
