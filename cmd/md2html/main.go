package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the command for args (program name first) and returns the
// process exit code. Errors are printed to env.Stderr with a hint.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		args = args[1:]
	}

	flags, err := parseFlags(args)
	if err != nil {
		printError(env.Stderr, err, nil, nil)
		return exitCodeFor(err)
	}

	if flags.common.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.common.version {
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
		return ExitSuccess
	}
	if flags.common.completion != "" {
		if err := GenerateCompletion(env.Stdout, Shell(flags.common.completion)); err != nil {
			printError(env.Stderr, err, flags, nil)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	logger := newLogger(env.Stderr, flags.common.verbose)

	// Configure GOMAXPROCS with logging routed through the debug level.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cfg, err := resolveConfig(flags, env)
	if err == nil {
		err = run(ctx, flags, cfg, env, logger)
	}
	if err != nil {
		printError(env.Stderr, err, flags, cfg)
		return exitCodeFor(err)
	}

	return ExitSuccess
}

// run executes the action selected by the flags with the effective config.
func run(ctx context.Context, f *cliFlags, cfg *config.Config, env *Environment, logger *slog.Logger) error {
	switch {
	case f.common.printConfig:
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		_, err = env.Stdout.Write(data)
		return err
	case f.common.preview:
		return runPreview(ctx, cfg, env)
	default:
		return runConvert(ctx, f, cfg, env, logger)
	}
}

// newLogger returns a text logger on w: debug with --verbose, errors only
// otherwise. Markdown warnings are printed separately by printResult.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
