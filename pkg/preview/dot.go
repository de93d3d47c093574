package preview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/plan"
	"github.com/matzehuels/claimviz/pkg/style"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// Options configures the Graphviz preview.
type Options struct {
	// Scale is the distance in points between adjacent blocks. Zero means
	// DefaultScale.
	Scale float64
	// Detailed labels every node with its coordinate and snap reason.
	Detailed bool
}

// DefaultScale spaces blocks a quarter inch apart.
const DefaultScale = 18.0

// fill colors for well-known materials; anything else is drawn grey.
var fills = map[voxel.Material]string{
	"glowstone":     "#f2d35b",
	"gold_block":    "#f9e547",
	"iron_block":    "#d8d8d8",
	"white_wool":    "#ffffff",
	"pumpkin":       "#e38a1d",
	"diamond_block": "#6fe3df",
	"redstone_ore":  "#b02e26",
	"netherrack":    "#6f3534",
}

// ToDOT converts ins to a neato graph. Every instruction becomes a pinned
// node at (X, -Z) so north is up. Region corners are joined by a dashed
// outline.
func ToDOT(region voxel.Region, ins []overlay.PlacementInstruction, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	pos := func(x, z int) string {
		return fmt.Sprintf("%.1f,%.1f!", float64(x)*scale/72, float64(-z)*scale/72)
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=square, style=filled, fixedsize=true, width=0.2, fontsize=8, label=\"\"];\n")
	buf.WriteString("  edge [style=dashed, color=grey60];\n")
	buf.WriteString("\n")

	outline := []voxel.Coordinate{
		voxel.C(region.Min.X, 0, region.Min.Z),
		voxel.C(region.Max.X, 0, region.Min.Z),
		voxel.C(region.Max.X, 0, region.Max.Z),
		voxel.C(region.Min.X, 0, region.Max.Z),
	}
	for i, c := range outline {
		fmt.Fprintf(&buf, "  \"o%d\" [shape=point, width=0.01, pos=%q];\n", i, pos(c.X, c.Z))
	}
	for i := range outline {
		fmt.Fprintf(&buf, "  \"o%d\" -- \"o%d\";\n", i, (i+1)%len(outline))
	}
	buf.WriteString("\n")

	for i, in := range ins {
		attrs := []string{
			fmt.Sprintf("pos=%q", pos(in.Pos.X, in.Pos.Z)),
			fmt.Sprintf("fillcolor=%q", fillFor(in.Fake)),
		}
		if in.Role == style.Corner {
			attrs = append(attrs, "width=0.3", "penwidth=2")
		}
		if in.Placement == plan.Snapped {
			attrs = append(attrs, "shape=circle")
		}
		if opts.Detailed {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", detailLabel(in)))
		}
		fmt.Fprintf(&buf, "  \"m%d\" [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fillFor(t style.Template) string {
	if c, ok := fills[t.Material]; ok {
		return c
	}
	return "grey80"
}

func detailLabel(in overlay.PlacementInstruction) string {
	label := fmt.Sprintf("%d,%d,%d", in.Pos.X, in.Pos.Y, in.Pos.Z)
	if in.Reason != "" {
		label += "\n" + string(in.Reason)
	}
	return label
}

// RenderSVG lays out dot and returns it as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out dot and returns it as PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the preview scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
