package session

import (
	"context"
	"log/slog"
	"time"
)

// statusPoller keeps a session's refresh and market status current without
// user action. It polls immediately on start and then on a fixed interval,
// and stops when the session closes. Poll failures are logged and otherwise
// silent: stale-but-present status is acceptable telemetry.
type statusPoller struct {
	session  *Session
	client   Client
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

func newStatusPoller(s *Session, client Client, interval time.Duration) *statusPoller {
	return &statusPoller{
		session:  s,
		client:   client,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (p *statusPoller) start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	go func() {
		defer close(p.done)

		p.poll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// stop cancels the pending timer and waits for the loop to exit. Results of a
// fetch that was already in flight are dropped by the session's closed guard.
func (p *statusPoller) stop() {
	p.cancel()
	<-p.done
}

// poll fetches the two status feeds independently; one failing never blocks
// the other.
func (p *statusPoller) poll(ctx context.Context) {
	if refresh, err := p.client.RefreshStatus(ctx); err != nil {
		slog.Debug("status poll: refresh status failed", "session", p.session.ID, "error", err)
	} else {
		p.session.setRefreshStatus(refresh)
	}

	if market, err := p.client.MarketStatus(ctx); err != nil {
		slog.Debug("status poll: market status failed", "session", p.session.ID, "error", err)
	} else {
		p.session.setMarketStatus(market)
	}
}
