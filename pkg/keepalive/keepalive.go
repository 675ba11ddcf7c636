// Package keepalive periodically pings the service's own public URL so
// free-tier hosting does not idle the process out between requests.
package keepalive

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bookden/bookden/pkg/observability"
)

// DefaultInterval is how often the pinger fires when no interval is
// configured.
const DefaultInterval = 14 * time.Minute

// Pinger issues a GET request to a fixed URL on a fixed interval. Ping
// failures are logged and counted but never stop the loop.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a pinger for the given URL. A non-positive interval falls
// back to DefaultInterval.
func New(url string, interval time.Duration, logger *slog.Logger) *Pinger {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Start launches the ping loop in a goroutine. The first ping fires
// after one full interval, not immediately.
func (p *Pinger) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	p.logger.Info("keep-alive pinger started",
		"url", p.url,
		"interval", p.interval,
	)

	go p.run(ctx)
}

// Stop terminates the ping loop and waits for it to exit.
func (p *Pinger) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
	p.logger.Info("keep-alive pinger stopped")
}

func (p *Pinger) run(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.ping(ctx)
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		p.logger.Error("building keep-alive request", "error", err)
		observability.RecordKeepAlivePing("error")
		return
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("keep-alive ping failed", "url", p.url, "error", err)
		observability.RecordKeepAlivePing("error")
		return
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("keep-alive ping returned non-200", "url", p.url, "status", resp.StatusCode)
		observability.RecordKeepAlivePing("error")
		return
	}

	p.logger.Debug("keep-alive ping sent", "url", p.url)
	observability.RecordKeepAlivePing("ok")
}
