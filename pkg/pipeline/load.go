package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/claimviz/pkg/observability"
	"github.com/matzehuels/claimviz/pkg/scene"
)

// Load reads the scene named by opts and keeps only the selected
// requests. Naming a request the scene does not contain is an error.
func Load(ctx context.Context, opts Options) (*scene.Scene, error) {
	start := time.Now()
	sc, err := load(opts)
	name, n := opts.ScenePath, 0
	if sc != nil {
		name, n = sc.Name, len(sc.Requests)
	}
	observability.Pipeline().OnSceneLoad(ctx, name, n, time.Since(start), err)
	return sc, err
}

func load(opts Options) (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if opts.Scene != nil {
		sc, err = scene.Build(opts.Scene)
	} else {
		sc, err = scene.Load(opts.ScenePath)
	}
	if err != nil {
		return nil, err
	}
	if len(opts.Only) == 0 {
		return sc, nil
	}

	found := make(map[string]bool, len(opts.Only))
	kept := sc.Requests[:0]
	for _, r := range sc.Requests {
		if opts.Wants(r.Name) {
			kept = append(kept, r)
			found[r.Name] = true
		}
	}
	var missing []string
	for _, name := range opts.Only {
		if !found[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errUnknownRequests(missing)
	}
	sc.Requests = kept
	return sc, nil
}
