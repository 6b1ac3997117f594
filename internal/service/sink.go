package service

import (
	"context"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

// NoopSink discards run activity.
type NoopSink struct{}

var _ ports.ResultSink = NoopSink{}

func (NoopSink) StartRun(context.Context, domain.Run) error { return nil }

func (NoopSink) RecordAccepted(context.Context, string, domain.BusinessRecord) error { return nil }

func (NoopSink) UpdateProgress(context.Context, string, domain.Progress) error { return nil }

func (NoopSink) CompleteRun(context.Context, string, domain.Progress) error { return nil }
