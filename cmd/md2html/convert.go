package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
)

// resolveConfig loads the config named by --config, or copies env.Config,
// then applies changed flags and validates the result.
func resolveConfig(f *cliFlags, env *Environment) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case f.common.config != "":
		loaded, err := config.LoadConfig(f.common.config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	case env.Config != nil:
		cfg = cloneConfig(env.Config)
	default:
		cfg = config.DefaultConfig()
	}

	mergeFlags(f, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cloneConfig returns a copy of c that shares no slices with it.
func cloneConfig(c *config.Config) *config.Config {
	clone := *c
	clone.Dialect.Extensions = slices.Clone(c.Dialect.Extensions)
	return &clone
}

// mergeFlags merges CLI flags into config. Only flags given on the command
// line override config values, so an explicit --hard-wraps=false still wins.
func mergeFlags(f *cliFlags, cfg *config.Config) {
	// I/O flags
	if f.changed("input") {
		cfg.Input = f.io.input
	}
	if f.changed("output") {
		cfg.Output = f.io.output
	}

	// Document flags
	if f.changed("title") {
		cfg.Title = f.document.title
	}
	if f.changed("title-heading") {
		cfg.TitleHeading = f.document.titleHeading
	}
	if f.changed("lang") {
		cfg.Lang = f.document.lang
	}
	if f.changed("encoding") {
		cfg.Encoding = f.document.encoding
	}

	// Style flags
	if f.changed("stylesheet") {
		cfg.Stylesheet.Path = f.style.stylesheet
	}
	if f.changed("embed-stylesheet") {
		cfg.Stylesheet.Embed = f.style.embed
	}
	if f.changed("style") {
		cfg.Style = f.style.style
	}
	if f.style.noStyle {
		cfg.Style = ""
	}
	if f.changed("asset-path") {
		cfg.Assets.BasePath = f.style.assetPath
	}

	// Dialect flags
	if f.changed("extensions") {
		cfg.Dialect.Extensions = md2html.ParseExtensionList(f.dialect.extensions)
	}
	if f.changed("hard-wraps") {
		cfg.Dialect.HardWraps = f.dialect.hardWraps
	}
	if f.changed("raw-html") {
		cfg.Dialect.RawHTML = f.dialect.rawHTML
	}

	// Highlight flags
	if f.changed("no-highlight") {
		cfg.Highlight.Enabled = !f.highlight.disabled
	}
	if f.changed("highlight-style") {
		cfg.Highlight.Style = f.highlight.style
	}
	if f.changed("line-numbers") {
		cfg.Highlight.LineNumbers = f.highlight.lineNumbers
	}

	// TOC flags
	if f.changed("toc") {
		cfg.TOC.Placement = f.toc.placement
	}
	if f.changed("toc-title") {
		cfg.TOC.Title = f.toc.title
	}
	if f.changed("toc-min-depth") {
		cfg.TOC.MinDepth = f.toc.minDepth
	}
	if f.changed("toc-max-depth") {
		cfg.TOC.MaxDepth = f.toc.maxDepth
	}

	if f.changed("no-permalinks") {
		cfg.Permalinks = !f.noPermalinks
	}
}

// buildOptions maps the effective config to converter options.
// --title and --lang are forced; the config values only back up front matter.
func buildOptions(f *cliFlags, cfg *config.Config) md2html.Options {
	opts := md2html.Options{
		DefaultTitle:    cfg.Title,
		TitleHeading:    cfg.TitleHeading,
		DefaultLang:     cfg.Lang,
		Encoding:        cfg.Encoding,
		Style:           cfg.Style,
		Stylesheet:      cfg.Stylesheet.Path,
		EmbedStylesheet: cfg.Stylesheet.Embed,
		Dialect: md2html.Dialect{
			Extensions: slices.Clone(cfg.Dialect.Extensions),
			HardWraps:  cfg.Dialect.HardWraps,
			RawHTML:    md2html.RawHTMLMode(cfg.Dialect.RawHTML),
		},
		Highlight: md2html.Highlight{
			Enabled:     cfg.Highlight.Enabled,
			Style:       cfg.Highlight.Style,
			LineNumbers: cfg.Highlight.LineNumbers,
		},
		TOC: md2html.TOC{
			Placement: md2html.TOCPlacement(cfg.TOC.Placement),
			Title:     cfg.TOC.Title,
			MinDepth:  cfg.TOC.MinDepth,
			MaxDepth:  cfg.TOC.MaxDepth,
		},
		Permalinks:   cfg.Permalinks,
		MaxInputSize: cfg.MaxInputSize,
	}

	if f.changed("title") {
		opts.Title = f.document.title
	}
	if f.changed("lang") {
		opts.Lang = f.document.lang
	}
	if opts.Dialect.RawHTML == "" {
		opts.Dialect.RawHTML = md2html.RawHTMLOmit
	}
	if opts.TOC.Placement == "" {
		opts.TOC.Placement = md2html.TOCOff
	}

	return opts
}

// runConvert converts cfg.Input to cfg.OutputPath and reports the result.
func runConvert(ctx context.Context, f *cliFlags, cfg *config.Config, env *Environment, logger *slog.Logger) error {
	convOpts := []md2html.Option{
		md2html.WithOptions(buildOptions(f, cfg)),
		md2html.WithLogger(logger),
	}
	if env.AssetLoader != nil {
		convOpts = append(convOpts, md2html.WithAssetLoader(env.AssetLoader))
	} else {
		convOpts = append(convOpts, md2html.WithAssetPath(cfg.Assets.BasePath))
	}

	conv, err := md2html.NewConverter(convOpts...)
	if err != nil {
		return err
	}

	output := cfg.OutputPath()
	start := env.Now()
	result, err := conv.ConvertFile(ctx, cfg.Input, output)
	if err != nil {
		return err
	}

	printResult(env, f.common, cfg.Input, output, result, env.Now().Sub(start))
	return nil
}

// printResult writes warnings to Stderr and the created file to Stdout.
// Quiet mode prints nothing.
func printResult(env *Environment, common commonFlags, input, output string, result *md2html.Result, elapsed time.Duration) {
	if common.quiet {
		return
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(env.Stderr, "warning: %s\n", w)
	}

	if common.verbose {
		fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", input, output, elapsed.Round(time.Millisecond))
	} else {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
}
