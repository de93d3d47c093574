package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/claimviz/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output directory; default is the scene's directory
	formats     []string // json, txt, svg, png
	only        []string // request names
	refresh     bool
	noCache     bool
	concurrency int
	scale       int
	detailed    bool // coordinates and snap reasons on SVG/PNG nodes
	table       bool // print every instruction
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr, onlyStr string
	opts := renderOpts{concurrency: pipeline.DefaultConcurrency, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render every request of a scene file",
		Long: `Render loads a TOML or YAML scene, plans and snaps the outline of each
request, and writes one artifact per request and format next to the scene
(or into --output). Renders are cached by world content and request.`,
		Example: `  claimviz render harbour.toml
  claimviz render harbour.toml -f json,txt,svg --only dock
  claimviz render harbour.toml --cache redis --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			opts.only = splitList(onlyStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: the scene's directory)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), txt, svg, png (comma-separated)")
	cmd.Flags().StringVar(&onlyStr, "only", "", "render only these requests (comma-separated names)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached renders")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", opts.concurrency, "requests rendered in parallel")
	cmd.Flags().IntVar(&opts.scale, "scale", opts.scale, "preview distance between blocks in points (svg, png)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label preview nodes with position and snap reason")
	cmd.Flags().BoolVar(&opts.table, "table", false, "print every placement instruction")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	step := startStep(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.Options{
		ScenePath:   path,
		Only:        opts.only,
		Refresh:     opts.refresh,
		Concurrency: opts.concurrency,
		Formats:     opts.formats,
		Scale:       opts.scale,
		Detailed:    opts.detailed,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	dir := opts.output
	if dir == "" {
		dir = filepath.Dir(path)
	}
	paths, err := pipeline.WriteArtifacts(ctx, dir, result)
	if err != nil {
		return err
	}
	step.done("rendered", "scene", result.Scene, "requests", len(result.Renders))

	printSuccess("%s", StyleTitle.Render(result.Scene))
	for _, rr := range result.Renders {
		printInfo("%s", rr.Name)
		printStats(len(rr.Instructions), rr.Style, rr.CacheInfo.RenderHit)
		if len(rr.Instructions) == 0 {
			printWarning("no markers: the request's window does not reach its region")
		}
		if opts.table {
			fmt.Println(instructionTable(rr.Instructions, -1))
		}
	}
	for _, p := range paths {
		printFile(p)
	}
	if len(result.Renders) > 0 {
		printNextStep("Browse the markers", fmt.Sprintf("%s inspect %s --request %s", appName, path, result.Renders[0].Name))
	}
	return nil
}
