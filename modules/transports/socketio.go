package transports

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/vk/plugrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// SocketIOProbe checks a target by performing a Socket.IO connect
// handshake over WebSocket. Registered under the service name
// "socketioprobe".
type SocketIOProbe struct {
	// Namespace to connect to. Defaults to the root namespace.
	Namespace string

	// Timeout bounds the whole handshake.
	Timeout time.Duration

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool
}

// NewSocketIOProbe creates a Socket.IO probe with a default 10s timeout.
func NewSocketIOProbe() *SocketIOProbe {
	return &SocketIOProbe{Timeout: 10 * time.Second}
}

// Probe implements Transport.
func (p *SocketIOProbe) Probe(ctx context.Context, target string) error {
	logger := ctxlog.FromContext(ctx).With("transport", "socketioprobe", "target", target, "namespace", p.Namespace)
	logger.Debug("Probe started")
	defer logger.Debug("Probe finished")

	var isConnected atomic.Bool

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsedURL, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("failed to parse target URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if p.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	done := make(chan error, 1)

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Successfully connected.", "sid", io.Id())
		done <- nil
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				done <- e
				return
			}
		}
		done <- fmt.Errorf("connect_error from %q", target)
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return fmt.Errorf("timed out after connecting to %q", target)
		}
		return fmt.Errorf("timed out while waiting for initial connection to %q", target)
	case err := <-done:
		return err
	}
}
