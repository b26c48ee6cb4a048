package transports

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vk/plugrid/internal/ctxlog"
)

// HTTPProbe checks a target with a plain GET request. Registered under the
// service name "httpprobe".
type HTTPProbe struct {
	// Client is shared across probes to reuse TCP connections.
	Client *http.Client
}

// NewHTTPProbe creates an HTTP probe with a sane default timeout.
func NewHTTPProbe() *HTTPProbe {
	return &HTTPProbe{Client: &http.Client{Timeout: 10 * time.Second}}
}

// Probe implements Transport.
func (p *HTTPProbe) Probe(ctx context.Context, target string) error {
	logger := ctxlog.FromContext(ctx).With("transport", "httpprobe", "target", target)
	logger.Debug("Probe started")
	defer logger.Debug("Probe finished")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request for %q: %w", target, err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return fmt.Errorf("probe of %q failed: %w", target, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return fmt.Errorf("failed to drain probe response from %q: %w", target, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("probe of %q returned status %s", target, resp.Status)
	}
	logger.Info("Probe succeeded.", "status", resp.Status)
	return nil
}
