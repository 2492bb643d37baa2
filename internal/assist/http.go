package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 90 * time.Second

type HTTPChecker struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Review posts the submission to the assist service. The call carries its
// own deadline (default 90s); hitting it surfaces as ErrTimeout rather than
// a generic failure so callers can tell the user what happened.
func (h HTTPChecker) Review(ctx context.Context, req ReviewRequest) (Verdict, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	b, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.BaseURL+"/review", bytes.NewReader(b))
	if err != nil {
		return Verdict{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Verdict{}, ErrTimeout
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return Verdict{}, ErrTimeout
		}
		return Verdict{}, fmt.Errorf("assist request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Verdict{}, fmt.Errorf("assist http error: %s", resp.Status)
	}

	var v Verdict
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		return Verdict{}, err
	}
	return v, nil
}
