// Package material implements the per-material attenuation and angular-scattering
// tables spec.md calls GammaStats: piecewise attenuation lengths for photoelectric,
// Compton and Rayleigh processes, plus the precomputed (energy x cos-theta) angular
// CDFs the transport loop inverse-samples at each Compton/Rayleigh interaction.
//
// The physics-table JSON loader itself is out of scope (spec.md §1); Table is the seam
// an external loader would populate.
package material

import "sort"

// Table is a monotonically-increasing-in-x piecewise linear function, the shape
// every attenuation curve and form-factor/scattering-function table takes once loaded.
type Table struct {
	X, Y []float64
}

// Interpolate performs linear interpolation, clamping outside the table's domain —
// the same convention as the original Math::interpolate helper.
func (t Table) Interpolate(x float64) float64 {
	n := len(t.X)
	if n == 0 {
		return 0
	}
	if x <= t.X[0] {
		return t.Y[0]
	}
	if x >= t.X[n-1] {
		return t.Y[n-1]
	}
	i := sort.SearchFloat64s(t.X, x)
	if i == 0 {
		return t.Y[0]
	}
	x0, x1 := t.X[i-1], t.X[i]
	y0, y1 := t.Y[i-1], t.Y[i]
	frac := (x - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
