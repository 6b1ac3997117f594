//go:generate moq -out mocks/page_session_moq.go -pkg mocks . PageSession
//go:generate moq -out mocks/session_factory_moq.go -pkg mocks . SessionFactory
//go:generate moq -out mocks/checkpoint_store_moq.go -pkg mocks . CheckpointStore
//go:generate moq -out mocks/result_sink_moq.go -pkg mocks . ResultSink

package ports

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
)

// ErrNoCheckpoint is returned by CheckpointStore.Load when no snapshot exists.
var ErrNoCheckpoint = eris.New("no checkpoint found")

// PageSession is a loaded-page capability backed by a browser or an HTTP client.
// A session holds at most one current page and is used sequentially.
type PageSession interface {
	// Open loads url as the current page, bounded by timeout.
	Open(ctx context.Context, url string, timeout time.Duration) error

	// WaitFor blocks until selector matches on the current page or timeout elapses.
	WaitFor(ctx context.Context, selector string, timeout time.Duration) error

	// ExtractAll evaluates rules against the current page.
	ExtractAll(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error)

	// Close releases the session. It is safe to call more than once.
	Close() error
}

// SessionFactory opens automation sessions.
type SessionFactory interface {
	Open(ctx context.Context) (PageSession, error)
}

// CheckpointStore persists complete snapshots of a run.
type CheckpointStore interface {
	// Load returns the most recent snapshot, or an error matching
	// ErrNoCheckpoint when nothing was saved yet.
	Load(ctx context.Context) (domain.Checkpoint, error)

	// Save writes cp as one complete unit.
	Save(ctx context.Context, cp domain.Checkpoint) error

	// Finalize writes the end-of-run export and returns its path.
	Finalize(ctx context.Context, cp domain.Checkpoint) (string, error)
}

// ResultSink mirrors run activity to an external store. Failures are not fatal.
type ResultSink interface {
	StartRun(ctx context.Context, run domain.Run) error
	RecordAccepted(ctx context.Context, runID string, rec domain.BusinessRecord) error
	UpdateProgress(ctx context.Context, runID string, p domain.Progress) error
	CompleteRun(ctx context.Context, runID string, p domain.Progress) error
}
