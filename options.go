package md2html

import "log/slog"

// Option configures a Converter.
type Option func(*Converter)

// WithOptions replaces the conversion options (default: DefaultOptions()).
func WithOptions(opts Options) Option {
	return func(c *Converter) {
		c.opts = opts
	}
}

// WithAssetPath loads styles and templates from dir, falling back to the
// embedded assets for names it does not contain.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.assetPath = dir
	}
}

// WithAssetLoader sets a custom asset backend. It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.loader = loader
	}
}

// WithLogger sets the logger used for stage timings and warnings.
// A nil logger is ignored. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}
