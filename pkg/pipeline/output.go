package pipeline

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	apperr "github.com/matzehuels/claimviz/pkg/errors"
	"github.com/matzehuels/claimviz/pkg/observability"
)

// ArtifactName returns the file name of one artifact: "<scene>.<request>.<format>".
func ArtifactName(sceneName, request, format string) string {
	return fmt.Sprintf("%s.%s.%s", sceneName, request, format)
}

// WriteArtifacts writes every artifact of res into dir, creating it if
// needed, and returns the written paths in a stable order.
func WriteArtifacts(ctx context.Context, dir string, res *Result) ([]string, error) {
	if err := apperr.ValidateOutputPath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	hooks := observability.Pipeline()
	var paths []string
	for _, rr := range res.Renders {
		for _, format := range slices.Sorted(maps.Keys(rr.Artifacts)) {
			data := rr.Artifacts[format]
			path := filepath.Join(dir, ArtifactName(res.Scene, rr.Name, format))
			err := os.WriteFile(path, data, 0o644)
			hooks.OnArtifactWrite(ctx, format, len(data), err)
			if err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}
