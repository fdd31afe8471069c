package service

import (
	"time"

	"github.com/google/uuid"
)

// Option configures a service.
type Option func(*options)

type options struct {
	observer UseCaseObserver
	now      func() time.Time
	newID    func() string
	newToken func() string
}

func newOptions(opts []Option) options {
	o := options{
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		newToken: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithObserver(obs UseCaseObserver) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithTokenSource replaces the generator of supervisor verification tokens.
func WithTokenSource(next func() string) Option {
	return func(o *options) {
		o.newToken = next
	}
}
