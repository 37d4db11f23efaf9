package httpclient

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

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/infra/httpapi"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// do sends in (if non-nil) as JSON and decodes a 2xx body into out.
// Error responses come back as *domain.OpError carrying the server's kind.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := "httpclient." + strings.ToLower(method)
	endpoint := c.base.JoinPath(path).String()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &domain.OpError{Op: op, Kind: domain.KindInvalidOrder, Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.log.Warn("httpclient.request_failed", "method", method, "url", endpoint, "latency_ms", latency.Milliseconds(), "err", err)
		return &domain.OpError{Op: op, Kind: domain.KindIO, Err: fmt.Errorf("%w: %w", domain.ErrIO, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindIO, Err: fmt.Errorf("%w: %w", domain.ErrIO, err)}
	}

	c.log.Debug("httpclient.response", "method", method, "url", endpoint, "status", resp.StatusCode, "latency_ms", latency.Milliseconds())

	if resp.StatusCode >= 400 {
		return remoteError(op, resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindIO, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func remoteError(op string, status int, raw []byte) error {
	var er httpapi.ErrorResponse
	_ = json.Unmarshal(raw, &er)

	kind := domain.ErrorKind(er.Error)
	if kind == "" || kind == "internal" {
		kind = domain.KindIO
	}

	msg := strings.TrimSpace(er.Message)
	if msg == "" {
		msg = http.StatusText(status)
	}

	err := fmt.Errorf("server returned %d: %s", status, msg)
	if s := sentinelFor(kind); s != nil {
		err = fmt.Errorf("%w: %w", s, err)
	}
	return &domain.OpError{Op: op, Kind: kind, Err: err}
}

func sentinelFor(kind domain.ErrorKind) error {
	switch kind {
	case domain.KindEmptyOrder:
		return domain.ErrEmptyOrder
	case domain.KindInvalidDistance:
		return domain.ErrInvalidDistance
	case domain.KindUnknownShipping:
		return domain.ErrUnknownShipping
	case domain.KindCorruptStore:
		return domain.ErrCorruptStore
	case domain.KindIO:
		return domain.ErrIO
	}
	return nil
}

var errNoRecord = errors.New("server returned no record")
