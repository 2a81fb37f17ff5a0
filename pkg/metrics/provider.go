// Package metrics computes structural metrics of bipartite interaction
// networks: weighted nestedness (NODF) and modularity via community
// detection. Degenerate networks (no links) score as Undefined rather than
// failing.
package metrics

import (
	"math"

	"github.com/gilchrisn/bipartite-stability-service/pkg/bipartite"
)

// Provider is the capability interface for structural metrics. The
// simulation core depends only on this interface, not on a specific
// algorithm or library.
type Provider interface {
	// Nestedness scores nested structure on a [0,100] scale, or Undefined
	// for a degenerate matrix.
	Nestedness(m *bipartite.Matrix) float64

	// Modularity scores community structure on a [0,1] scale, or Undefined
	// for a degenerate matrix. The quantitative variant uses interaction
	// strengths as edge weights and is markedly more expensive than the
	// default binary one.
	Modularity(m *bipartite.Matrix, quantitative bool) float64
}

// Undefined is the sentinel returned for metrics on degenerate networks.
func Undefined() float64 { return math.NaN() }

// IsUndefined reports whether a metric value is the degenerate sentinel.
func IsUndefined(v float64) bool { return math.IsNaN(v) }
