// Package cli implements the claimviz command-line interface.
//
// # Commands
//
//   - render: Render every request of a scene file to JSON, text maps, SVG or PNG
//   - probe: Trace how one column snaps
//   - inspect: Browse a rendered overlay marker by marker
//   - generate: Write a Perlin terrain scene to start from
//   - cache: Manage the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is attached to the command context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/claimviz/pkg/buildinfo"
	"github.com/matzehuels/claimviz/pkg/cache"
	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/observability"
	"github.com/matzehuels/claimviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "claimviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends selectable with --cache.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendMongo = "mongo"
	backendNone  = "none"
)

// globalOpts are the persistent flags shared by every command.
type globalOpts struct {
	cacheBackend string
	cacheDir     string
	compress     bool
	redisAddr    string
	redisDB      int
	mongoURI     string
	metrics      bool
	otlp         bool
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	global  globalOpts
	metrics *observability.PrometheusHooks
	// shutdown flushes telemetry after the command ran.
	shutdown func(context.Context) error
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		global: globalOpts{cacheBackend: backendFile},
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "claimviz previews region boundaries as fake blocks",
		Long:              `claimviz plans and snaps the fake blocks that outline a land claim, subdivision or zone in a voxel world, and renders the result as instructions, maps and previews.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setupObservability,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.addGlobalFlags(root)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.probeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// newCache opens the backend selected by the global flags, instrumented
// and optionally compressed.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	var (
		inner cache.Cache
		err   error
	)
	backend := c.global.cacheBackend
	if noCache {
		backend = backendNone
	}

	switch backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendFile:
		dir, derr := c.fileCacheDir()
		if derr != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", derr)
			return cache.NewNullCache(), nil
		}
		inner, err = cache.NewFileCache(dir)
	case backendRedis:
		inner, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.global.redisAddr,
			DB:     c.global.redisDB,
			Prefix: appName + ":",
		})
	case backendMongo:
		inner, err = cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:      c.global.mongoURI,
			Database: appName,
		})
	default:
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "unknown cache backend %q (must be one of: file, redis, mongo, none)", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", backend, err)
	}

	if c.global.compress {
		if inner, err = cache.NewCompressed(inner); err != nil {
			return nil, err
		}
	}
	return cache.NewInstrumented(inner), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/claimviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// splitList parses a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if formats := splitList(s); len(formats) > 0 {
		return formats
	}
	return []string{pipeline.FormatJSON}
}
