package stability

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrEigenFailed indicates the eigenvalue decomposition did not converge for
// a numerically pathological community matrix.
var ErrEigenFailed = errors.New("stability: eigenvalue decomposition did not converge")

// Resilience returns the negative real part of the dominant eigenvalue of a
// community matrix. Positive resilience means perturbations decay; larger
// values mean faster return to equilibrium. A community matrix with no
// interactions has zero self-regulation too, so every eigenvalue is zero and
// resilience is 0 by convention.
func Resilience(community *mat.Dense) (float64, error) {
	if isZero(community) {
		return 0, nil
	}

	var eigen mat.Eigen
	if ok := eigen.Factorize(community, mat.EigenNone); !ok {
		return math.NaN(), ErrEigenFailed
	}

	dominant := math.Inf(-1)
	for _, v := range eigen.Values(nil) {
		if re := real(v); re > dominant {
			dominant = re
		}
	}

	return -dominant, nil
}

func isZero(m *mat.Dense) bool {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}
