package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/scene"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
	"github.com/matzehuels/claimviz/pkg/voxel/terrain"
)

type generateOpts struct {
	name     string
	seed     int64
	size     int // half-width of the terrain square
	seaLevel int
	style    string
	force    bool
}

func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{seed: 1, size: 48, seaLevel: terrain.DefaultSeaLevel, style: style.Claim.String()}

	cmd := &cobra.Command{
		Use:   "generate [output]",
		Short: "Write a Perlin terrain scene",
		Long: `Generate writes a scene file with a Perlin terrain layer, a claim around
the origin and a 3D subdivision inside it. The format follows the output
extension (.toml, .yaml or .yml).`,
		Example: `  claimviz generate hills.toml --seed 7
  claimviz generate coast.yaml --sea-level 66 --style admin-claim`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "scene name (default: output file name)")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "terrain seed")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "terrain half-width in blocks")
	cmd.Flags().IntVar(&opts.seaLevel, "sea-level", opts.seaLevel, "water fills columns up to this layer")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "style of the outer request")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing file")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, path string, opts generateOpts) error {
	if opts.name == "" {
		opts.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f, err := generateScene(opts)
	if err != nil {
		return err
	}
	if !opts.force {
		if _, err := os.Stat(path); err == nil {
			return apperr.New(apperr.ErrCodeInvalidPath, "%s exists (use --force to overwrite)", path)
		}
	}
	if err := scene.WriteFile(path, f); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("generated scene", "seed", opts.seed, "size", opts.size)

	printSuccess("Generated %s", StyleTitle.Render(f.Name))
	printFile(path)
	printNextStep("Render it", fmt.Sprintf("%s render %s -f txt,svg", appName, path))
	return nil
}

// generateScene builds the scene file for opts. The requests sit one layer
// above the terrain surface (or sea) at the origin.
func generateScene(opts generateOpts) (*scene.File, error) {
	if opts.size < 8 {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "size %d too small (min 8)", opts.size)
	}
	s, err := style.Parse(opts.style)
	if err != nil {
		return nil, err
	}

	t := &scene.TerrainSpec{
		Min:      scene.Point{-opts.size, 0, -opts.size},
		Max:      scene.Point{opts.size, 0, opts.size},
		Seed:     opts.seed,
		SeaLevel: opts.seaLevel,
	}
	g := terrain.Generate(terrain.Options{
		Area:     voxel.RegionOf(voxel.C(-opts.size, 0, -opts.size), voxel.C(opts.size, 0, opts.size)),
		Seed:     opts.seed,
		SeaLevel: opts.seaLevel,
	})
	y := max(terrain.SurfaceY(g, 0, 0), opts.seaLevel) + 1
	y = min(y, voxel.TopY(g)-4)

	outer := opts.size * 2 / 3
	inner := max(outer/3, 2)
	return &scene.File{
		Name:    opts.name,
		World:   scene.WorldSpec{MinY: g.MinY(), MaxY: g.MaxY()},
		Terrain: t,
		Requests: []scene.RequestSpec{
			{
				Name:  "claim",
				Style: s.String(),
				Min:   scene.Point{-outer, y, -outer},
				Max:   scene.Point{outer, y, outer},
			},
			{
				Name:  "vault",
				Style: style.Subdivision3D.String(),
				Min:   scene.Point{-inner, y - 3, -inner},
				Max:   scene.Point{inner, y + 3, inner},
			},
		},
	}, nil
}
