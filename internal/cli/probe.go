package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/material"
	"github.com/matzehuels/claimviz/pkg/scene"
	"github.com/matzehuels/claimviz/pkg/snap"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Probe modes.
const (
	modeAuto        = "auto"
	modeOpaque      = "opaque"
	modeTransparent = "transparent"
)

type probeOpts struct {
	at     string // "x,y,z"
	mode   string
	bounds string // "minY,maxY", inclusive
	window int    // rows printed above and below the result
}

func (c *CLI) probeCommand() *cobra.Command {
	opts := probeOpts{mode: modeAuto, window: 3}

	cmd := &cobra.Command{
		Use:   "probe [scene] --at x,y,z",
		Short: "Trace how one column snaps",
		Long: `Probe runs the surface snapper on a single column of a scene's world and
prints the resulting position, the rule that decided it and the column
around it.`,
		Example: `  claimviz probe harbour.toml --at 3,6,3
  claimviz probe harbour.toml --at 3,6,3 --mode transparent --bounds 2,8`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProbe(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "start position x,y,z (required)")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "water mode: auto (from the start voxel), opaque, transparent")
	cmd.Flags().StringVar(&opts.bounds, "bounds", "", "restrict the scan to minY,maxY (inclusive)")
	cmd.Flags().IntVar(&opts.window, "window", opts.window, "column rows shown around the result")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func (c *CLI) runProbe(ctx context.Context, path string, opts probeOpts) error {
	logger := loggerFromContext(ctx)

	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	start, err := parseCoordinate(opts.at)
	if err != nil {
		return err
	}

	res, mode, err := probeColumn(sc.World, start, opts.mode, opts.bounds)
	if err != nil {
		return err
	}
	logger.Debug("probed column", "start", start, "mode", mode, "reason", res.Reason, "steps", res.Steps)

	printKeyValue("start", start.String())
	printKeyValue("mode", mode.String())
	printKeyValue("result", res.Pos.String())
	printKeyValue("reason", string(res.Reason))
	printKeyValue("steps", strconv.Itoa(res.Steps))
	fmt.Println()
	for _, line := range columnStrip(sc.World, res.Pos, opts.window) {
		fmt.Println("  " + line)
	}
	return nil
}

// probeColumn snaps start in w. bounds is "" or "minY,maxY".
func probeColumn(w voxel.World, start voxel.Coordinate, modeFlag, bounds string) (snap.Result, material.Mode, error) {
	s := snap.New(w, nil)

	var mode material.Mode
	switch modeFlag {
	case modeAuto, "":
		mode = material.ModeFor(s.Classifier.Submerged(voxel.At(w, start)))
	case modeOpaque:
		mode = material.WaterOpaque
	case modeTransparent:
		mode = material.WaterTransparent
	default:
		return snap.Result{}, 0, apperr.New(apperr.ErrCodeInvalidInput, "invalid mode %q (must be one of: auto, opaque, transparent)", modeFlag)
	}

	if bounds == "" {
		return s.Trace(start, mode), mode, nil
	}
	ys, err := parseInts(bounds, 2)
	if err != nil {
		return snap.Result{}, 0, err
	}
	if ys[0] > ys[1] {
		return snap.Result{}, 0, apperr.New(apperr.ErrCodeInvalidInput, "bounds %d,%d: min above max", ys[0], ys[1])
	}
	return s.TraceBounded(start, mode, ys[0], ys[1]), mode, nil
}

// columnStrip lists the materials of pos's column from window rows above
// to window rows below pos, marking pos itself.
func columnStrip(w voxel.World, pos voxel.Coordinate, window int) []string {
	top := min(pos.Y+window, voxel.TopY(w))
	bottom := max(pos.Y-window, w.MinY())

	var lines []string
	for y := top; y >= bottom; y-- {
		v := voxel.At(w, pos.WithY(y))
		marker := "  "
		if y == pos.Y {
			marker = iconArrow + " "
		}
		desc := string(v.Material)
		if v.Shape.Kind != voxel.ShapeFull && v.Shape.Kind != voxel.ShapeNone {
			desc += " (" + v.Shape.Kind.String() + ")"
		}
		if v.Shape.Waterlogged {
			desc += " [waterlogged]"
		}
		lines = append(lines, fmt.Sprintf("%s%4d  %s", marker, y, desc))
	}
	return lines
}

func parseCoordinate(s string) (voxel.Coordinate, error) {
	v, err := parseInts(s, 3)
	if err != nil {
		return voxel.Coordinate{}, err
	}
	return voxel.C(v[0], v[1], v[2]), nil
}

// parseInts parses exactly n comma-separated integers.
func parseInts(s string, n int) ([]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, apperr.New(apperr.ErrCodeInvalidInput, "%q: want %d comma-separated integers", s, n)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "%q: not an integer", p)
		}
		out[i] = v
	}
	return out, nil
}
