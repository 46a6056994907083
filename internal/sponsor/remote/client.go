// Package remote talks to the spreadsheet script that stores principal
// sponsors. The script is an opaque JSON-over-HTTP record store: GET lists
// rows, POST appends a row or applies an "update"/"delete" action.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	OperationList   = "list"
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"

	defaultTimeout          = 10 * time.Second
	defaultMaxResponseBytes = 4 << 20
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a Client.
type Config struct {
	URL              string
	Timeout          time.Duration
	HTTPClient       HTTPDoer
	MaxResponseBytes int64
}

// Client calls the remote store. It is safe for concurrent use.
type Client struct {
	url      string
	timeout  time.Duration
	maxBytes int64
	client   HTTPDoer
	group    singleflight.Group
}

// New creates a Client. A zero Timeout means 10s.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxResponseBytes <= 0 {
		cfg.MaxResponseBytes = defaultMaxResponseBytes
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		url:      cfg.URL,
		timeout:  cfg.Timeout,
		maxBytes: cfg.MaxResponseBytes,
		client:   client,
	}
}

// List fetches the current rows. The returned body is the remote JSON array,
// byte for byte, after a schema check.
//
// Concurrent callers share one outbound GET. The shared call does not inherit
// any single caller's cancellation; it is bounded by the client timeout, and
// each caller still stops waiting when its own context is done.
func (c *Client) List(ctx context.Context) ([]byte, error) {
	ch := c.group.DoChan(OperationList, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.list(callCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.([]byte)
		out := make([]byte, len(shared))
		copy(out, shared)
		return out, nil
	case <-ctx.Done():
		return nil, newRemoteError(categoryForContext(ctx.Err()), OperationList, "caller gave up waiting", ctx.Err())
	}
}

func (c *Client) list(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, newRemoteError(CategoryBadRequest, OperationList, "failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, OperationList, req)
	if err != nil {
		return nil, err
	}
	if err := validateListBody(body); err != nil {
		return nil, newRemoteError(CategoryMalformed, OperationList, "unexpected list body", err)
	}
	return body, nil
}

// Create appends a row.
func (c *Client) Create(ctx context.Context, payload any) ([]byte, error) {
	return c.post(ctx, OperationCreate, payload)
}

// Update rewrites the row matched by the payload's originalName.
func (c *Client) Update(ctx context.Context, payload any) ([]byte, error) {
	return c.post(ctx, OperationUpdate, payload)
}

// Delete removes the row matched by the payload's MalePrincipalSponsor.
func (c *Client) Delete(ctx context.Context, payload any) ([]byte, error) {
	return c.post(ctx, OperationDelete, payload)
}

// post sends payload as a JSON POST and returns the body of a 2xx JSON answer.
// Writes are never retried.
func (c *Client) post(ctx context.Context, op string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, newRemoteError(CategoryBadRequest, op, "failed to marshal payload", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(data))
	if err != nil {
		return nil, newRemoteError(CategoryBadRequest, op, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, op, req)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, newRemoteError(CategoryMalformed, op, "response is not JSON", nil)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, op string, req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newRemoteError(categoryForContext(ctxErr), op, "request did not complete", err)
		}
		if isTimeout(err) {
			return nil, newRemoteError(CategoryTimeout, op, "request timeout", err)
		}
		return nil, newRemoteError(CategoryUnavailable, op, "failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newRemoteError(categoryForContext(ctxErr), op, "response body did not complete", err)
		}
		return nil, newRemoteError(CategoryUnavailable, op, "failed to read response", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, newRemoteError(CategoryMalformed, op, fmt.Sprintf("response exceeds %d bytes", c.maxBytes), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := newRemoteError(CategoryBadStatus, op, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		re.StatusCode = resp.StatusCode
		return nil, re
	}
	return body, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func categoryForContext(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	return CategoryUnavailable
}
