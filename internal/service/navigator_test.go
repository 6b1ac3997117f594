package service

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator(settings Settings) (*Navigator, *[]time.Duration) {
	logger, _ := test.NewNullLogger()
	nav := NewNavigator(settings, testProfile(), logger)
	var slept []time.Duration
	nav.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return nav, &slept
}

func TestNavigator_Load(t *testing.T) {
	ctx := context.Background()
	settings := testSettings()

	t.Run("ad urls are never opened", func(t *testing.T) {
		site := newFakeSite()
		session := site.session()
		nav, slept := newTestNavigator(settings)

		assert.False(t, nav.Load(ctx, session, "https://ad.doubleclick.net/ddm/clk/123"))
		assert.Empty(t, session.OpenCalls())
		assert.Empty(t, *slept)
	})

	t.Run("two failures then success", func(t *testing.T) {
		site := newFakeSite()
		site.detail("a", "12", "555").failures = 2
		session := site.session()
		nav, slept := newTestNavigator(settings)

		require.True(t, nav.Load(ctx, session, detailURL("a")))
		assert.Len(t, session.OpenCalls(), 3)
		assert.Equal(t, []time.Duration{
			100 * time.Millisecond,
			200 * time.Millisecond,
			settings.SettleDelay,
		}, *slept)
		assert.Equal(t, settings.NavTimeout, session.OpenCalls()[0].Timeout)
	})

	t.Run("every attempt fails", func(t *testing.T) {
		site := newFakeSite()
		site.detail("a", "12", "555").failures = -1
		session := site.session()
		nav, slept := newTestNavigator(settings)

		assert.False(t, nav.Load(ctx, session, detailURL("a")))
		assert.Len(t, session.OpenCalls(), 3)
		// No wait after the final attempt and no settle delay.
		assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *slept)
	})

	t.Run("at least one attempt", func(t *testing.T) {
		site := newFakeSite()
		site.detail("a", "12", "555")
		session := site.session()
		s := settings
		s.MaxRetries = 0
		nav, _ := newTestNavigator(s)

		assert.True(t, nav.Load(ctx, session, detailURL("a")))
		assert.Len(t, session.OpenCalls(), 1)
	})

	t.Run("cancelled context stops before loading", func(t *testing.T) {
		site := newFakeSite()
		site.detail("a", "12", "555")
		session := site.session()
		nav, _ := newTestNavigator(settings)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.False(t, nav.Load(cctx, session, detailURL("a")))
		assert.Empty(t, session.OpenCalls())
	})
}

func TestSleepCtx(t *testing.T) {
	assert.NoError(t, sleepCtx(context.Background(), 0))
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
}
