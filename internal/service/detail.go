package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// Outcome is the terminal state of one detail url.
type Outcome int

const (
	// OutcomeSkipped: already visited, nothing was loaded.
	OutcomeSkipped Outcome = iota
	// OutcomeLoadFailed: the page never loaded. Not marked visited.
	OutcomeLoadFailed
	// OutcomeRejected: loaded but failed the years or required-field checks. Marked visited.
	OutcomeRejected
	// OutcomeFailed: extraction broke unexpectedly. Not marked visited.
	OutcomeFailed
	// OutcomeAccepted: a record was produced. Marked visited.
	OutcomeAccepted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeLoadFailed:
		return "load_failed"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	case OutcomeAccepted:
		return "accepted"
	}
	return "unknown"
}

// DetailExtractor turns one detail url into a BusinessRecord.
//
// Each url moves through load, quick years check, full extraction and the
// required-field check. A rejection marks the url visited, so a rejected page
// is never re-checked in a later run even if it only rendered badly.
type DetailExtractor struct {
	nav      *Navigator
	profile  domain.SiteProfile
	minYears int
	required []string
	log      logrus.FieldLogger
}

// NewDetailExtractor creates a new DetailExtractor.
func NewDetailExtractor(nav *Navigator, profile domain.SiteProfile, minYears int, required []string, log logrus.FieldLogger) *DetailExtractor {
	return &DetailExtractor{
		nav:      nav,
		profile:  profile,
		minYears: minYears,
		required: required,
		log:      log,
	}
}

// Extract processes target for task and updates visited according to the outcome.
// The record is non-nil only for OutcomeAccepted.
func (x *DetailExtractor) Extract(
	ctx context.Context,
	session ports.PageSession,
	target string,
	task domain.SearchTask,
	visited *domain.VisitedSet,
) (rec *domain.BusinessRecord, outcome Outcome) {
	log := x.log.WithField("url", target)

	if visited.Has(target) {
		log.Debug("already visited")
		return nil, OutcomeSkipped
	}

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("extraction crashed")
			rec, outcome = nil, OutcomeFailed
		}
	}()

	if !x.nav.Load(ctx, session, target) {
		return nil, OutcomeLoadFailed
	}

	quick, err := session.ExtractAll(ctx, []domain.FieldRule{x.profile.Years})
	if err != nil {
		log.WithError(err).Warn("failed to read years")
		return nil, OutcomeFailed
	}
	years, ok := domain.ParseYears(quick.First(x.profile.Years.Field))
	if !ok || years < x.minYears {
		visited.Add(target)
		log.WithField("years", quick.First(x.profile.Years.Field)).Debug("rejected on years")
		return nil, OutcomeRejected
	}

	full, err := session.ExtractAll(ctx, x.profile.Detail)
	if err != nil {
		log.WithError(err).Warn("failed to extract details")
		return nil, OutcomeFailed
	}

	record := domain.BusinessRecord{
		Name:            full.First(domain.FieldName),
		Phone:           full.First(domain.FieldPhone),
		Address:         full.First(domain.FieldAddress),
		YearsInBusiness: years,
		Owner:           full.First(domain.FieldOwner),
		Website:         full.First(domain.FieldWebsite),
		SearchTerm:      task.Term,
		Location:        task.Location,
	}
	if n, ok := domain.ParseYears(full.First(domain.FieldYears)); ok {
		record.YearsInBusiness = n
	}

	visited.Add(target)

	if missing := record.MissingFields(x.required); len(missing) > 0 {
		log.WithField("missing", strings.Join(missing, ",")).Debug("rejected on required fields")
		return nil, OutcomeRejected
	}

	log.WithFields(logrus.Fields{"name": record.Name, "years": record.YearsInBusiness}).Info("record accepted")
	return &record, OutcomeAccepted
}
