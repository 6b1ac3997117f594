package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// sleepFunc pauses for d or until ctx is done.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Navigator loads pages with a bounded number of attempts and linear backoff.
type Navigator struct {
	profile    domain.SiteProfile
	limiter    *rate.Limiter
	maxRetries int
	timeout    time.Duration
	backoff    time.Duration
	settle     time.Duration
	sleep      sleepFunc
	log        logrus.FieldLogger
}

// NewNavigator creates a new Navigator.
func NewNavigator(settings Settings, profile domain.SiteProfile, log logrus.FieldLogger) *Navigator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if settings.NavRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(settings.NavRatePerSec), 1)
	}
	maxRetries := settings.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Navigator{
		profile:    profile,
		limiter:    limiter,
		maxRetries: maxRetries,
		timeout:    settings.NavTimeout,
		backoff:    settings.RetryBackoff,
		settle:     settings.SettleDelay,
		sleep:      sleepCtx,
		log:        log,
	}
}

// Load opens target on session. It never returns an error: a false result means
// the page is unavailable for now, either because target is a known ad or
// tracking url or because every attempt failed.
func (n *Navigator) Load(ctx context.Context, session ports.PageSession, target string) bool {
	log := n.log.WithField("url", target)

	if n.profile.IsNonContent(target) {
		log.Debug("skipping non-content url")
		return false
	}

	for attempt := 1; attempt <= n.maxRetries; attempt++ {
		if err := n.limiter.Wait(ctx); err != nil {
			return false
		}

		err := session.Open(ctx, target, n.timeout)
		if err == nil {
			if err := n.sleep(ctx, n.settle); err != nil {
				return false
			}
			return true
		}

		log.WithError(err).WithFields(logrus.Fields{
			"attempt": attempt,
			"of":      n.maxRetries,
		}).Warn("navigation failed")

		if ctx.Err() != nil {
			return false
		}
		if attempt < n.maxRetries {
			if err := n.sleep(ctx, time.Duration(attempt)*n.backoff); err != nil {
				return false
			}
		}
	}

	log.WithField("attempts", n.maxRetries).Warn("giving up on url")
	return false
}
