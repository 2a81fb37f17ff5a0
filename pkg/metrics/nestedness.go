package metrics

import "github.com/gilchrisn/bipartite-stability-service/pkg/bipartite"

// WeightedNODF computes the weighted NODF nestedness of a quantitative
// bipartite matrix on a [0,100] scale. For every pair of rows where one row
// has strictly more links than the other, the pair scores the percentage of
// the sparser row's links that are both shared with and weaker than the
// corresponding links of the fuller row. Columns are scored the same way and
// the result is the mean of the row and column components. An empty matrix
// scores Undefined.
func WeightedNODF(m *bipartite.Matrix) float64 {
	if m == nil || m.IsEmpty() {
		return Undefined()
	}

	rowScore, rowPairs := nodfComponent(m.Plants, m.Animals, m.At)
	colScore, colPairs := nodfComponent(m.Animals, m.Plants, func(i, j int) float64 {
		return m.At(j, i)
	})

	switch {
	case rowPairs == 0 && colPairs == 0:
		return Undefined()
	case rowPairs == 0:
		return colScore
	case colPairs == 0:
		return rowScore
	}
	return (rowScore + colScore) / 2
}

// nodfComponent scores all pairs among n vectors of length length, read
// through at. It returns the mean pair score and the number of pairs.
func nodfComponent(n, length int, at func(i, k int) float64) (float64, int) {
	fills := make([]int, n)
	for i := 0; i < n; i++ {
		for k := 0; k < length; k++ {
			if at(i, k) > 0 {
				fills[i]++
			}
		}
	}

	pairs := 0
	total := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs++

			// Orient the pair so that full is the vector with more links.
			full, sparse := i, j
			if fills[j] > fills[i] {
				full, sparse = j, i
			}
			// Equal fills and empty vectors never count as nested.
			if fills[full] == fills[sparse] || fills[sparse] == 0 {
				continue
			}

			overlapping := 0
			for k := 0; k < length; k++ {
				ws := at(sparse, k)
				if ws > 0 && ws < at(full, k) {
					overlapping++
				}
			}
			total += 100 * float64(overlapping) / float64(fills[sparse])
		}
	}

	if pairs == 0 {
		return 0, 0
	}
	return total / float64(pairs), pairs
}
