package vulnscan

import (
	"context"

	"github.com/kvesta/pomvuln/pkg/pom"

	"golang.org/x/sync/errgroup"
)

// Scan looks up every coordinate and hands each Finding to report in the
// order of coords, whatever order the lookups complete in. A failed lookup
// only affects its own Finding.
func (ps *Scanner) Scan(ctx context.Context, coords []pom.Coordinate, report func(*Finding)) {
	pending := make([]chan *Finding, len(coords))
	for i := range pending {
		pending[i] = make(chan *Finding, 1)
	}

	g := new(errgroup.Group)
	g.SetLimit(ps.workers())

	go func() {
		for i, c := range coords {
			g.Go(func() error {
				pending[i] <- ps.lookup(ctx, c)
				return nil
			})
		}
	}()

	for _, ch := range pending {
		report(<-ch)
	}

	_ = g.Wait()
}

func (ps *Scanner) lookup(ctx context.Context, c pom.Coordinate) *Finding {
	f := &Finding{Coordinate: c}

	ids, err := ps.VulnDB.Lookup(ctx, c.GAV())
	switch {
	case err != nil:
		f.Status = LookupFailed
		f.Err = err
	case len(ids) > 0:
		f.Status = Found
		f.CVEIDs = ids
	default:
		f.Status = NotFound
	}

	return f
}
