package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
	"bizharvest/internal/core/ports/mocks"
	"bizharvest/internal/profiles"
)

const testBase = "https://dir.test"

var errUnreachable = errors.New("net::ERR_CONNECTION_RESET")

func testProfile() domain.SiteProfile {
	return profiles.BBB(testBase)
}

func testSettings() Settings {
	return Settings{
		MinYears:       10,
		MaxPages:       25,
		MaxRetries:     3,
		RequiredFields: []string{domain.FieldPhone},
		NavTimeout:     time.Second,
		WaitTimeout:    time.Second,
		SettleDelay:    time.Millisecond,
		RetryBackoff:   100 * time.Millisecond,
		TaskDelay:      5 * time.Second,
		LocationDelay:  10 * time.Second,
	}
}

func detailURL(slug string) string {
	return testBase + "/profile/" + slug
}

// fakePage is one page of the fake directory, already reduced to rule values.
type fakePage struct {
	values   domain.Extracted
	notReady bool
	// failures is how many opens fail before one succeeds. Negative fails forever.
	failures int
	// panics makes every extraction on the page panic.
	panics bool
}

// fakeSite serves a tiny directory through mocked sessions. Everything runs on
// one goroutine, like the pipeline itself.
type fakeSite struct {
	profile  domain.SiteProfile
	pages    map[string]*fakePage
	current  *fakePage
	opens    []string
	sessions []*mocks.PageSessionMock
}

func newFakeSite() *fakeSite {
	return &fakeSite{profile: testProfile(), pages: make(map[string]*fakePage)}
}

// listing registers page of task. reported is the highest page number its
// pagination controls show; links are written relative to the site root.
func (s *fakeSite) listing(task domain.SearchTask, page, reported int, slugs ...string) *fakePage {
	var links []string
	for _, slug := range slugs {
		links = append(links, "/profile/"+slug)
	}
	var numerals []string
	for n := 1; n <= reported && n <= 3; n++ {
		numerals = append(numerals, strconv.Itoa(n))
	}
	if reported > 3 {
		numerals = append(numerals, strconv.Itoa(reported))
	}
	numerals = append(numerals, "Next")

	p := &fakePage{values: domain.Extracted{
		s.profile.ListingLinks.Field: links,
		s.profile.PageNumbers.Field:  numerals,
	}}
	s.pages[s.profile.ListingURL(task, page)] = p
	return p
}

// detail registers a detail page. Empty values are left off the page.
func (s *fakeSite) detail(slug, years, phone string) *fakePage {
	values := domain.Extracted{domain.FieldName: {strings.ToUpper(slug) + " Tree Co"}}
	if years != "" {
		values[domain.FieldYears] = []string{years}
	}
	if phone != "" {
		values[domain.FieldPhone] = []string{phone}
	}
	p := &fakePage{values: values}
	s.pages[detailURL(slug)] = p
	return p
}

func (s *fakeSite) session() *mocks.PageSessionMock {
	m := &mocks.PageSessionMock{
		OpenFunc: func(ctx context.Context, url string, timeout time.Duration) error {
			s.opens = append(s.opens, url)
			s.current = nil
			p, ok := s.pages[url]
			if !ok {
				return errUnreachable
			}
			if p.failures != 0 {
				if p.failures > 0 {
					p.failures--
				}
				return errUnreachable
			}
			s.current = p
			return nil
		},
		WaitForFunc: func(ctx context.Context, selector string, timeout time.Duration) error {
			if s.current == nil || s.current.notReady {
				return errors.New("waiting for selector timed out")
			}
			return nil
		},
		ExtractAllFunc: func(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error) {
			if s.current == nil {
				return nil, errors.New("no page")
			}
			if s.current.panics {
				panic("target closed")
			}
			out := domain.Extracted{}
			for _, r := range rules {
				if v, ok := s.current.values[r.Field]; ok {
					out[r.Field] = v
				}
			}
			return out, nil
		},
		CloseFunc: func() error { return nil },
	}
	s.sessions = append(s.sessions, m)
	return m
}

func (s *fakeSite) factory() *mocks.SessionFactoryMock {
	return &mocks.SessionFactoryMock{
		OpenFunc: func(ctx context.Context) (ports.PageSession, error) {
			return s.session(), nil
		},
	}
}

// detailOpens lists the detail urls that were navigated to, in order.
func (s *fakeSite) detailOpens() []string {
	var out []string
	for _, u := range s.opens {
		if strings.HasPrefix(u, testBase+"/profile/") {
			out = append(out, u)
		}
	}
	return out
}

// recordSleeps replaces every sleep of o with a recorder.
func recordSleeps(o *Orchestrator) *[]time.Duration {
	var slept []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	o.sleep = sleep
	o.nav.sleep = sleep
	return &slept
}

func newTestOrchestrator(t *testing.T, settings Settings, sessions ports.SessionFactory, store ports.CheckpointStore, sink ports.ResultSink) (*Orchestrator, *[]time.Duration) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	o := NewOrchestrator(settings, testProfile(), sessions, store, sink, logger)
	return o, recordSleeps(o)
}

func count(durations []time.Duration, d time.Duration) int {
	n := 0
	for _, v := range durations {
		if v == d {
			n++
		}
	}
	return n
}
