package golingo

import (
	"log/slog"
	"sync"
)

var (
	replexicaOnce sync.Once
	lingoOnce     sync.Once
)

// NewReplexicaEngine creates an Engine.
//
// Deprecated: use NewEngine.
func NewReplexicaEngine(cfg EngineConfig, opts ...Option) (*Engine, error) {
	warnDeprecated(&replexicaOnce, "NewReplexicaEngine", opts)
	return NewEngine(cfg, opts...)
}

// NewLingoEngine creates an Engine.
//
// Deprecated: use NewEngine.
func NewLingoEngine(cfg EngineConfig, opts ...Option) (*Engine, error) {
	warnDeprecated(&lingoOnce, "NewLingoEngine", opts)
	return NewEngine(cfg, opts...)
}

// warnDeprecated logs a deprecation notice once per process, through the
// logger given with WithLogger or slog.Default.
func warnDeprecated(once *sync.Once, name string, opts []Option) {
	once.Do(func() {
		optionLogger(opts).Warn(name+" is deprecated and will be removed in a future release, use NewEngine instead",
			slog.String("constructor", name),
		)
	})
}

// optionLogger resolves the logger that opts would install.
func optionLogger(opts []Option) *slog.Logger {
	var scratch Engine
	for _, opt := range opts {
		opt(&scratch)
	}
	if scratch.logger != nil {
		return scratch.logger
	}
	return slog.Default()
}
