package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports/mocks"
)

func newTestExtractor(settings Settings) *DetailExtractor {
	logger, _ := test.NewNullLogger()
	nav, _ := newTestNavigator(settings)
	return NewDetailExtractor(nav, testProfile(), settings.MinYears, settings.RequiredFields, logger)
}

func TestDetailExtractor_Extract(t *testing.T) {
	ctx := context.Background()
	task := domain.SearchTask{Term: "roofing", Location: "Boise, ID"}

	tests := []struct {
		name        string
		years       string
		phone       string
		failures    int
		wantOutcome Outcome
		wantVisited bool
	}{
		{name: "below threshold", years: "9", phone: "(208) 555-0100", wantOutcome: OutcomeRejected, wantVisited: true},
		{name: "threshold is inclusive", years: "10", phone: "(208) 555-0100", wantOutcome: OutcomeAccepted, wantVisited: true},
		{name: "empty phone", years: "40", wantOutcome: OutcomeRejected, wantVisited: true},
		{name: "no years field", phone: "(208) 555-0100", wantOutcome: OutcomeRejected, wantVisited: true},
		{name: "unparsable years", years: "many", phone: "(208) 555-0100", wantOutcome: OutcomeRejected, wantVisited: true},
		{name: "retried then loaded", years: "15", phone: "(208) 555-0100", failures: 2, wantOutcome: OutcomeAccepted, wantVisited: true},
		{name: "never loads", years: "15", phone: "(208) 555-0100", failures: -1, wantOutcome: OutcomeLoadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newFakeSite()
			site.detail("a", tt.years, tt.phone).failures = tt.failures
			visited := domain.NewVisitedSet()

			rec, outcome := newTestExtractor(testSettings()).Extract(ctx, site.session(), detailURL("a"), task, visited)

			assert.Equal(t, tt.wantOutcome, outcome, outcome.String())
			assert.Equal(t, tt.wantVisited, visited.Has(detailURL("a")))
			if tt.wantOutcome == OutcomeAccepted {
				require.NotNil(t, rec)
				assert.Equal(t, "A Tree Co", rec.Name)
				assert.Equal(t, tt.phone, rec.Phone)
				assert.Equal(t, "roofing", rec.SearchTerm)
				assert.Equal(t, "Boise, ID", rec.Location)
			} else {
				assert.Nil(t, rec)
			}
		})
	}
}

func TestDetailExtractor_QuickFilterSkipsFullExtraction(t *testing.T) {
	site := newFakeSite()
	site.detail("a", "3", "555")
	session := site.session()

	_, outcome := newTestExtractor(testSettings()).Extract(context.Background(), session, detailURL("a"), domain.SearchTask{}, domain.NewVisitedSet())

	assert.Equal(t, OutcomeRejected, outcome)
	require.Len(t, session.ExtractAllCalls(), 1)
	assert.Equal(t, []domain.FieldRule{testProfile().Years}, session.ExtractAllCalls()[0].Rules)
}

func TestDetailExtractor_AlreadyVisited(t *testing.T) {
	site := newFakeSite()
	site.detail("a", "30", "555")
	session := site.session()
	visited := domain.NewVisitedSet(detailURL("a"))

	rec, outcome := newTestExtractor(testSettings()).Extract(context.Background(), session, detailURL("a"), domain.SearchTask{}, visited)

	assert.Nil(t, rec)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Empty(t, session.OpenCalls())
}

func TestDetailExtractor_UnexpectedFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("extraction error", func(t *testing.T) {
		session := &mocks.PageSessionMock{
			OpenFunc: func(ctx context.Context, url string, timeout time.Duration) error { return nil },
			ExtractAllFunc: func(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error) {
				return nil, errors.New("execution context was destroyed")
			},
		}
		visited := domain.NewVisitedSet()

		rec, outcome := newTestExtractor(testSettings()).Extract(ctx, session, detailURL("a"), domain.SearchTask{}, visited)

		assert.Nil(t, rec)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.False(t, visited.Has(detailURL("a")))
	})

	t.Run("panic", func(t *testing.T) {
		site := newFakeSite()
		site.detail("a", "30", "555").panics = true
		visited := domain.NewVisitedSet()

		rec, outcome := newTestExtractor(testSettings()).Extract(ctx, site.session(), detailURL("a"), domain.SearchTask{}, visited)

		assert.Nil(t, rec)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.False(t, visited.Has(detailURL("a")))
	})
}

func TestDetailExtractor_RequiredFields(t *testing.T) {
	site := newFakeSite()
	site.detail("a", "30", "555")
	s := testSettings()
	s.RequiredFields = []string{domain.FieldPhone, domain.FieldWebsite}

	rec, outcome := newTestExtractor(s).Extract(context.Background(), site.session(), detailURL("a"), domain.SearchTask{}, domain.NewVisitedSet())

	assert.Nil(t, rec)
	assert.Equal(t, OutcomeRejected, outcome)
}
