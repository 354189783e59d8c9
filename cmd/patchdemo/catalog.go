package main

import (
	"github.com/ojrac/opensimplex-go"

	"github.com/patchworld/mrf/internal/catalog"
)

// buildDemoCatalog returns a small item-type catalog whose intensities
// and energies are drawn from a simplex noise field sampled once at
// construction, the way a layered-noise world generator derives terrain
// parameters from octaves of the same field. The sampler itself still
// treats each resulting catalog.Simple as a constant-parameter type —
// the noise only gives the demo catalog a less arbitrary, less uniform
// feel than hand-picked constants would.
func buildDemoCatalog(seed int64, count int) []catalog.ItemType {
	noise := opensimplex.NewNormalized(seed)

	types := make([]catalog.ItemType, count)
	for i := 0; i < count; i++ {
		x := float64(i) * 1.7
		lambda := 0.2 + noise.Eval2(x, 0)*1.2
		radius := int64(1 + noise.Eval2(x, 10)*4)
		if radius < 0 {
			radius = 0
		}
		energy := (noise.Eval2(x, 20) - 0.5) * 3.0

		types[i] = catalog.Simple{
			Lambda: lambda,
			Radius: radius,
			Energy: energy,
		}
	}
	return types
}
