// Package zaplog provides a use.Observer that logs hook events through a
// zap logger.
package zaplog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NetPo4ki/go-usewith/use"
)

// Observer logs executor lifecycle events. Clean runs log at debug level;
// errors, panics, and release failures log at warn level.
type Observer struct {
	log *zap.Logger
}

var _ use.Observer = (*Observer)(nil)

// New returns an observer writing to log. A nil log falls back to a no-op
// logger.
func New(log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{log: log}
}

func (o *Observer) UseStarted(_ context.Context) {
	o.log.Debug("use started")
}

func (o *Observer) UseFinished(_ context.Context, dur time.Duration, err error, panicked bool) {
	switch {
	case panicked:
		o.log.Warn("use panicked", zap.Duration("dur", dur))
	case err != nil:
		o.log.Warn("use failed", zap.Duration("dur", dur), zap.Error(err))
	default:
		o.log.Debug("use finished", zap.Duration("dur", dur))
	}
}

func (o *Observer) ResourceReleased(_ context.Context, err error) {
	if err != nil {
		o.log.Warn("release failed", zap.Error(err))
		return
	}
	o.log.Debug("resource released")
}
