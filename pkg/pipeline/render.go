package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/claimviz/pkg/overlay"
	"github.com/matzehuels/claimviz/pkg/preview"
	"github.com/matzehuels/claimviz/pkg/voxel"
)

// MarshalInstructions encodes instructions as indented JSON.
func MarshalInstructions(ins []overlay.PlacementInstruction) ([]byte, error) {
	if ins == nil {
		ins = []overlay.PlacementInstruction{}
	}
	return json.MarshalIndent(ins, "", "  ")
}

// UnmarshalInstructions decodes the output of MarshalInstructions.
func UnmarshalInstructions(data []byte) ([]overlay.PlacementInstruction, error) {
	var ins []overlay.PlacementInstruction
	if err := json.Unmarshal(data, &ins); err != nil {
		return nil, err
	}
	return ins, nil
}

// Encode produces the artifacts of one render in the formats of opts.
func Encode(ctx context.Context, region voxel.Region, ins []overlay.PlacementInstruction, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			data, err = MarshalInstructions(ins)
		case FormatTXT:
			data = []byte(preview.ToText(region, ins))
		case FormatSVG, FormatPNG:
			if dot == "" {
				dot = preview.ToDOT(region, ins, preview.Options{Scale: float64(opts.Scale), Detailed: opts.Detailed})
			}
			if format == FormatSVG {
				data, err = preview.RenderSVG(ctx, dot)
			} else {
				data, err = preview.RenderPNG(ctx, dot)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
