// Package webhook posts JSON notifications to the summary automation endpoint.
// Deliveries are attempted once and never retried.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const DefaultTimeout = 10 * time.Second

type Notifier struct {
	url        string
	httpClient *http.Client
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewNotifier returns a notifier for url. An empty url disables delivery.
func NewNotifier(url string, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

func (n *Notifier) Enabled() bool {
	return n != nil && n.url != ""
}

// Send delivers payload in the background. Failures are logged only.
func (n *Notifier) Send(payload interface{}) {
	if !n.Enabled() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("webhook: failed to marshal payload", "error", err)
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		start := time.Now()
		status, err := n.post(ctx, body)
		if err != nil {
			slog.Error("webhook delivery failed", "error", err, "status", status, "latency_ms", time.Since(start).Milliseconds())
			return
		}
		slog.Info("webhook delivered", "status", status, "latency_ms", time.Since(start).Milliseconds())
	}()
}

// Deliver posts payload and waits for the response.
func (n *Notifier) Deliver(ctx context.Context, payload interface{}) error {
	if !n.Enabled() {
		return fmt.Errorf("webhook URL is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	_, err = n.post(ctx, body)
	return err
}

// Wait blocks until background deliveries finish.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.wg.Wait()
}

func (n *Notifier) post(ctx context.Context, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "AuraNote-Webhook/1.0")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
