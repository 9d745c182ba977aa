package otel

import (
	"context"
	"time"
)

// Nop is a no-op implementation of the use.Observer interface.
// It serves as a placeholder for an OpenTelemetry-backed observer without adding dependencies.
type Nop struct{}

// NewNop returns a no-op observer.
func NewNop() *Nop { return &Nop{} }

func (*Nop) UseStarted(context.Context)                              {}
func (*Nop) UseFinished(context.Context, time.Duration, error, bool) {}
func (*Nop) ResourceReleased(context.Context, error)                 {}
