package ecs

import "go.uber.org/zap"

// DefaultCapacity is the number of entities a World reserves room for when no
// capacity is configured.
const DefaultCapacity = 32

type config struct {
	capacity       int
	logger         *zap.Logger
	componentNames []string
	flagNames      []string
}

func defaultConfig() config {
	return config{
		capacity: DefaultCapacity,
		logger:   zap.NewNop(),
	}
}

// Option configures a World.
type Option func(*config)

// WithCapacity reserves room for n entities up front.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithLogger routes the World's diagnostic output to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithComponentNames labels component ids for stats and debug tooling. The
// i-th name belongs to component id i.
func WithComponentNames(names ...string) Option {
	return func(c *config) {
		c.componentNames = names
	}
}

// WithFlagNames labels user flags for stats and debug tooling. The i-th name
// belongs to flag i+1, since flag 0 is reserved.
func WithFlagNames(names ...string) Option {
	return func(c *config) {
		c.flagNames = names
	}
}
