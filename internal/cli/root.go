package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/claimviz/pkg/buildinfo"
	"github.com/matzehuels/claimviz/pkg/observability"
)

// addGlobalFlags registers the persistent flags on root.
func (c *CLI) addGlobalFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.StringVar(&c.global.cacheBackend, "cache", c.global.cacheBackend, "cache backend: file (default), redis, mongo, none")
	f.StringVar(&c.global.cacheDir, "cache-dir", "", "file cache directory (default ~/.cache/claimviz)")
	f.BoolVar(&c.global.compress, "cache-compress", false, "zstd-compress cache entries")
	f.StringVar(&c.global.redisAddr, "redis-addr", "localhost:6379", "redis address for --cache=redis")
	f.IntVar(&c.global.redisDB, "redis-db", 0, "redis database for --cache=redis")
	f.StringVar(&c.global.mongoURI, "mongo-uri", "mongodb://localhost:27017", "mongo URI for --cache=mongo")
	f.BoolVar(&c.global.metrics, "metrics", false, "print Prometheus metrics to stderr on exit")
	f.BoolVar(&c.global.otlp, "otlp", false, "export traces over OTLP/HTTP (configure with OTEL_EXPORTER_OTLP_*)")
}

// setupObservability installs the hooks selected by --metrics and --otlp
// and attaches the logger to the command context.
func (c *CLI) setupObservability(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))

	if c.global.metrics {
		c.metrics = observability.NewPrometheusHooks(prometheus.NewRegistry())
		observability.SetPipelineHooks(c.metrics)
		observability.SetCacheHooks(c.metrics)
		observability.SetOverlayHooks(c.metrics)
	}
	if c.global.otlp {
		shutdown, err := observability.InitTelemetry(ctx, appName, buildinfo.Version)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		c.shutdown = shutdown
		c.Logger.Debug("exporting traces", "protocol", "otlp/http")
	}
	return nil
}

// teardown flushes telemetry and prints metrics.
func (c *CLI) teardown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.shutdown != nil {
		if err := c.shutdown(ctx); err != nil {
			c.Logger.Warn("flush traces", "err", err)
		}
		c.shutdown = nil
	}
	if c.metrics != nil {
		defer observability.Reset()
		return c.metrics.WriteText(os.Stderr)
	}
	return nil
}
