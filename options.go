package structly

import "github.com/rs/zerolog"

// Option configures schema loading and validation behavior.
type Option interface{ apply(*options) }

type options struct {
	strict            bool
	allowTypeOverride bool
	maxDepth          int
	logger            zerolog.Logger
}

type optionFunc func(*options)

func (f optionFunc) apply(cfg *options) {
	if cfg == nil {
		return
	}
	f(cfg)
}

// WithStrict rejects schema documents containing unrecognized constraint
// keys instead of ignoring them.
func WithStrict(strict bool) Option {
	return optionFunc(func(cfg *options) {
		cfg.strict = strict
	})
}

// WithAllowTypeOverride permits schema entries to shadow built-in type names.
func WithAllowTypeOverride(allow bool) Option {
	return optionFunc(func(cfg *options) {
		cfg.allowTypeOverride = allow
	})
}

// WithMaxDepth sets the evaluation recursion depth limit (0 uses default).
func WithMaxDepth(depth int) Option {
	return optionFunc(func(cfg *options) {
		cfg.maxDepth = depth
	})
}

// WithLogger sets the logger used for load and validation diagnostics.
// Logging is disabled by default.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(cfg *options) {
		cfg.logger = logger
	})
}

func applyOptions(opts []Option) options {
	cfg := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&cfg)
		}
	}
	return cfg
}
