package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/okian/squadbook/pkg/logger"
)

type options struct {
	logger logger.Logger
	clock  clockwork.Clock
}

// Option configures a service.
type Option func(*options)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock used to stamp submitted matches.
func WithClock(c clockwork.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

func buildOptions(name string, opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.Named(name)
	}
	if o.clock == nil {
		o.clock = clockwork.NewRealClock()
	}
	return o
}
