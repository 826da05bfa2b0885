package domain

import "context"

// Recorder accepts executed searches; implementations never fail the caller
type Recorder interface {
	Record(ctx context.Context, e Event)
}

// ServicePort is what the http layer and other modules use
type ServicePort interface {
	Recorder
	Top(ctx context.Context, in TopInput) ([]TopTerm, error)
	Enabled() bool
}

// Nop drops every event
type Nop struct{}

// Record does nothing
func (Nop) Record(context.Context, Event) {}
