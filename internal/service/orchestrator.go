package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// Orchestrator coordinates the crawl across locations and search terms.
//
// It owns the run state: the visited set and the accumulated records. Work is
// strictly sequential. One session serves every term of a location.
type Orchestrator struct {
	settings Settings
	profile  domain.SiteProfile
	sessions ports.SessionFactory
	store    ports.CheckpointStore
	sink     ports.ResultSink
	logger   logrus.FieldLogger

	nav     *Navigator
	listing *ListingFetcher
	details *DetailExtractor
	sleep   sleepFunc
	now     func() time.Time

	visited *domain.VisitedSet
	records []domain.BusinessRecord
	started time.Time
}

// NewOrchestrator creates a new Orchestrator. A nil sink disables run tracking.
func NewOrchestrator(
	settings Settings,
	profile domain.SiteProfile,
	sessions ports.SessionFactory,
	store ports.CheckpointStore,
	sink ports.ResultSink,
	logger logrus.FieldLogger,
) *Orchestrator {
	if settings.MaxPages < 1 {
		settings.MaxPages = DefaultMaxPages
	}
	if sink == nil {
		sink = NoopSink{}
	}

	nav := NewNavigator(settings, profile, logger)
	return &Orchestrator{
		settings: settings,
		profile:  profile,
		sessions: sessions,
		store:    store,
		sink:     sink,
		logger:   logger,
		nav:      nav,
		listing:  NewListingFetcher(nav, profile, settings.WaitTimeout, logger),
		details:  NewDetailExtractor(nav, profile, settings.MinYears, settings.RequiredFields, logger),
		sleep:    sleepCtx,
		now:      time.Now,
		visited:  domain.NewVisitedSet(),
	}
}

// Restore seeds records and the visited set from the latest checkpoint.
// Having no checkpoint yet is not an error.
func (o *Orchestrator) Restore(ctx context.Context) error {
	cp, err := o.store.Load(ctx)
	if err != nil {
		if eris.Is(err, ports.ErrNoCheckpoint) {
			o.logger.Info("no checkpoint found, starting fresh")
			return nil
		}
		return eris.Wrap(err, "failed to restore checkpoint")
	}

	o.records = slices.Clone(cp.Records)
	o.visited = domain.NewVisitedSet(cp.Visited...)
	o.logger.WithFields(logrus.Fields{
		"records":  len(o.records),
		"visited":  o.visited.Len(),
		"saved_at": cp.SavedAt.Format(time.RFC3339),
	}).Info("resumed from checkpoint")
	return nil
}

// Records returns a copy of the accumulated records.
func (o *Orchestrator) Records() []domain.BusinessRecord {
	return slices.Clone(o.records)
}

// Visited returns the visited set. It is owned by the orchestrator.
func (o *Orchestrator) Visited() *domain.VisitedSet {
	return o.visited
}

type locationGroup struct {
	location string
	tasks    []domain.SearchTask
}

// groupByLocation keeps locations in first-appearance order.
func groupByLocation(tasks []domain.SearchTask) []locationGroup {
	var groups []locationGroup
	index := make(map[string]int)
	for _, t := range tasks {
		i, ok := index[t.Location]
		if !ok {
			i = len(groups)
			index[t.Location] = i
			groups = append(groups, locationGroup{location: t.Location})
		}
		groups[i].tasks = append(groups[i].tasks, t)
	}
	return groups
}

// Run executes every task and returns the aggregate. A failing location is
// logged and skipped. The only error returned is a cancelled ctx, in which case
// the partial result is still returned and checkpointed.
func (o *Orchestrator) Run(ctx context.Context, tasks []domain.SearchTask) (*domain.RunResult, error) {
	run := domain.Run{
		ID:        uuid.New().String(),
		Tasks:     tasks,
		MinYears:  o.settings.MinYears,
		MaxPages:  o.settings.MaxPages,
		Required:  o.settings.RequiredFields,
		StartedAt: o.now().UTC(),
	}
	o.started = run.StartedAt
	log := o.logger.WithField("run", run.ID)
	result := &domain.RunResult{Run: run}
	seeded := len(o.records)

	log.WithFields(logrus.Fields{
		"tasks":  len(tasks),
		"seeded": seeded,
	}).Info("starting run")

	if err := o.sink.StartRun(ctx, run); err != nil {
		log.WithError(err).Warn("result sink failed to record run start")
	}

	progress := domain.Progress{TotalTasks: len(tasks)}
	groups := groupByLocation(tasks)

	for i, group := range groups {
		if ctx.Err() != nil {
			break
		}
		if i > 0 {
			if err := o.sleep(ctx, o.settings.LocationDelay); err != nil {
				break
			}
		}

		done := progress.ProcessedTasks
		if err := o.runLocation(ctx, log, run.ID, group, &progress); err != nil {
			log.WithError(err).WithField("location", group.location).Error("location failed, moving on")
			result.FailedLocations = append(result.FailedLocations, group.location)
		}
		if ctx.Err() == nil && progress.ProcessedTasks < done+len(group.tasks) {
			// Tasks of an abandoned location count as processed.
			progress.ProcessedTasks = done + len(group.tasks)
			o.reportProgress(ctx, log, run.ID, &progress)
		}

		o.checkpoint(ctx, log)
	}

	cp := o.snapshot()
	bg := context.WithoutCancel(ctx)
	var runErr error
	if err := ctx.Err(); err != nil {
		log.Warn("run interrupted, saving final checkpoint")
		if err := o.store.Save(bg, cp); err != nil {
			log.WithError(err).Error("failed to save checkpoint")
		}
		runErr = eris.Wrap(err, "run interrupted")
	} else {
		path, err := o.store.Finalize(bg, cp)
		if err != nil {
			log.WithError(err).Error("failed to write final export")
		}
		result.FinalPath = path
	}

	progress.TotalRecords = len(o.records)
	if err := o.sink.CompleteRun(bg, run.ID, progress); err != nil {
		log.WithError(err).Warn("result sink failed to record run completion")
	}

	result.Records = slices.Clone(o.records)
	result.NewRecords = len(o.records) - seeded
	result.Visited = o.visited.Len()
	result.Progress = progress
	result.CompletedAt = o.now().UTC()

	log.WithFields(logrus.Fields{
		"records":     len(result.Records),
		"new_records": result.NewRecords,
		"visited":     result.Visited,
		"failed":      len(result.FailedLocations),
	}).Info("run finished")

	return result, runErr
}

// runLocation processes every task of group on one session. The session is
// closed on every path, and a panic inside the group becomes its error.
func (o *Orchestrator) runLocation(
	ctx context.Context,
	log logrus.FieldLogger,
	runID string,
	group locationGroup,
	progress *domain.Progress,
) (err error) {
	log = log.WithField("location", group.location)
	log.WithField("terms", len(group.tasks)).Info("starting location")

	session, err := o.sessions.Open(ctx)
	if err != nil {
		return eris.Wrap(err, "failed to open session")
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.WithError(cerr).Warn("failed to close session")
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("panic while processing location: %v", r)
		}
	}()

	for i, task := range group.tasks {
		if ctx.Err() != nil {
			return nil
		}
		if i > 0 {
			if err := o.sleep(ctx, o.settings.TaskDelay); err != nil {
				return nil
			}
		}

		o.runTask(ctx, log.WithField("term", task.Term), session, runID, task)
		o.checkpoint(ctx, log)

		progress.ProcessedTasks++
		o.reportProgress(ctx, log, runID, progress)
	}

	log.Info("location complete")
	return nil
}

// runTask walks the listing pages of task in order and extracts every new record.
func (o *Orchestrator) runTask(ctx context.Context, log logrus.FieldLogger, session ports.PageSession, runID string, task domain.SearchTask) {
	if !o.nav.Load(ctx, session, o.profile.ListingURL(task, 1)) {
		log.Warn("first listing page unavailable, skipping task")
		return
	}
	if err := session.WaitFor(ctx, o.profile.ListingReady, o.settings.WaitTimeout); err != nil {
		log.WithError(err).Debug("listing container missing on first page")
	}
	pages := PageCount(ctx, session, o.profile.PageNumbers, o.settings.MaxPages, log)
	log.WithField("pages", pages).Info("starting task")

	accepted := 0
	for page := 1; page <= pages; page++ {
		if ctx.Err() != nil {
			return
		}

		for _, link := range o.listing.FetchPage(ctx, session, task, page, o.visited) {
			if ctx.Err() != nil {
				return
			}
			rec, _ := o.details.Extract(ctx, session, link, task, o.visited)
			if rec == nil {
				continue
			}
			o.records = append(o.records, *rec)
			accepted++
			if err := o.sink.RecordAccepted(ctx, runID, *rec); err != nil {
				log.WithError(err).Warn("result sink failed to store record")
			}
		}

		if page%2 == 0 {
			o.checkpoint(ctx, log)
		}
	}

	log.WithField("accepted", accepted).Info("task complete")
}

func (o *Orchestrator) snapshot() domain.Checkpoint {
	return domain.Checkpoint{
		Records: slices.Clone(o.records),
		Visited: o.visited.List(),
		SavedAt: o.now(),
	}
}

// checkpoint saves the current state. Failures are logged; the next
// checkpoint rewrites everything anyway.
func (o *Orchestrator) checkpoint(ctx context.Context, log logrus.FieldLogger) {
	cp := o.snapshot()
	if err := o.store.Save(context.WithoutCancel(ctx), cp); err != nil {
		log.WithError(err).Error("failed to save checkpoint")
		return
	}
	log.WithFields(logrus.Fields{
		"records": len(cp.Records),
		"visited": len(cp.Visited),
	}).Info("checkpoint saved")
}

func (o *Orchestrator) reportProgress(ctx context.Context, log logrus.FieldLogger, runID string, p *domain.Progress) {
	p.TotalRecords = len(o.records)
	p.Elapsed = o.now().Sub(o.started)
	p.EstimatedRemaining = 0
	if p.ProcessedTasks > 0 && p.ProcessedTasks < p.TotalTasks {
		perTask := p.Elapsed / time.Duration(p.ProcessedTasks)
		p.EstimatedRemaining = perTask * time.Duration(p.TotalTasks-p.ProcessedTasks)
	}

	log.WithFields(logrus.Fields{
		"done":      fmt.Sprintf("%d/%d", p.ProcessedTasks, p.TotalTasks),
		"percent":   p.Percent(),
		"records":   p.TotalRecords,
		"elapsed":   p.Elapsed.Round(time.Second).String(),
		"remaining": p.EstimatedRemaining.Round(time.Second).String(),
	}).Info("progress")

	if err := o.sink.UpdateProgress(ctx, runID, *p); err != nil {
		log.WithError(err).Warn("result sink failed to record progress")
	}
}
