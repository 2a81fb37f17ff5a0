package louvain

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// Result represents the algorithm output.
type Result struct {
	Membership     []int   // original node -> community ID (compact, 0-based)
	Modularity     float64 // Newman modularity of the final partition
	NumCommunities int
	Levels         int
	Moves          int
}

// partition tracks community assignments on one level's graph.
type partition struct {
	g            *Graph
	nodeToComm   []int
	commTotal    []float64 // summed degree of each community
	commInternal []float64 // internal edge weight of each community, counted twice
	commSize     []int
}

// newPartition places each node in its own community.
func newPartition(g *Graph) *partition {
	n := g.NumNodes
	p := &partition{
		g:            g,
		nodeToComm:   make([]int, n),
		commTotal:    make([]float64, n),
		commInternal: make([]float64, n),
		commSize:     make([]int, n),
	}
	for i := 0; i < n; i++ {
		p.nodeToComm[i] = i
		p.commTotal[i] = g.Degrees[i]
		p.commInternal[i] = 2 * g.SelfLoopWeight(i)
		p.commSize[i] = 1
	}
	return p
}

// modularity computes Newman's modularity of the current assignment.
func (p *partition) modularity() float64 {
	if p.g.TotalWeight == 0 {
		return 0
	}
	m2 := 2 * p.g.TotalWeight
	q := 0.0
	for c := range p.commTotal {
		if p.commSize[c] == 0 {
			continue
		}
		q += p.commInternal[c]/m2 - (p.commTotal[c]/m2)*(p.commTotal[c]/m2)
	}
	return q
}

// weightToComms sums edge weights from a node into each neighboring community.
// Self-loops are excluded; they stay with the node wherever it moves.
func (p *partition) weightToComms(node int) map[int]float64 {
	weights := make(map[int]float64)
	p.g.Neighbors(node, func(neighbor int, w float64) {
		if neighbor == node {
			return
		}
		weights[p.nodeToComm[neighbor]] += w
	})
	return weights
}

// remove takes a node out of its community. w is the node's edge weight into
// that community.
func (p *partition) remove(node, comm int, w float64) {
	p.commTotal[comm] -= p.g.Degrees[node]
	p.commInternal[comm] -= 2 * (w + p.g.SelfLoopWeight(node))
	p.commSize[comm]--
}

// insert places a node into a community. w is the node's edge weight into
// that community.
func (p *partition) insert(node, comm int, w float64) {
	p.commTotal[comm] += p.g.Degrees[node]
	p.commInternal[comm] += 2 * (w + p.g.SelfLoopWeight(node))
	p.commSize[comm]++
	p.nodeToComm[node] = comm
}

// localMove repeatedly sweeps all nodes in random order, greedily moving each
// to the neighboring community with the largest modularity gain. Returns
// whether any move happened and the total move count.
func (p *partition) localMove(rng *rand.Rand, maxIterations int, minGain float64) (bool, int) {
	improved := false
	totalMoves := 0
	m2 := 2 * p.g.TotalWeight

	nodes := make([]int, p.g.NumNodes)
	for i := range nodes {
		nodes[i] = i
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		iterationMoves := 0
		rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

		for _, node := range nodes {
			oldComm := p.nodeToComm[node]
			neighWeights := p.weightToComms(node)

			p.remove(node, oldComm, neighWeights[oldComm])

			degree := p.g.Degrees[node]
			bestComm := oldComm
			bestGain := neighWeights[oldComm] - degree*p.commTotal[oldComm]/m2
			for comm, w := range neighWeights {
				if comm == oldComm {
					continue
				}
				gain := w - degree*p.commTotal[comm]/m2
				if gain > bestGain+minGain {
					bestComm = comm
					bestGain = gain
				}
			}

			p.insert(node, bestComm, neighWeights[bestComm])
			if bestComm != oldComm {
				iterationMoves++
				improved = true
			}
		}

		totalMoves += iterationMoves
		if iterationMoves == 0 {
			break
		}
	}

	return improved, totalMoves
}

// compactAssignment renumbers non-empty communities to 0..k-1 and returns the
// node -> compact community mapping along with k.
func (p *partition) compactAssignment() ([]int, int) {
	compact := make([]int, len(p.commSize))
	for i := range compact {
		compact[i] = -1
	}
	next := 0
	assignment := make([]int, p.g.NumNodes)
	for node, comm := range p.nodeToComm {
		if compact[comm] < 0 {
			compact[comm] = next
			next++
		}
		assignment[node] = compact[comm]
	}
	return assignment, next
}

// aggregate folds communities into super-nodes, summing parallel edge weights.
// Internal community weight becomes a self-loop on the super-node.
func (p *partition) aggregate(assignment []int, numComms int) *Graph {
	super := NewGraph(numComms)
	superEdges := make(map[[2]int]float64)

	for node := 0; node < p.g.NumNodes; node++ {
		u := assignment[node]
		p.g.Neighbors(node, func(neighbor int, w float64) {
			v := assignment[neighbor]
			var key [2]int
			if u <= v {
				key = [2]int{u, v}
			} else {
				key = [2]int{v, u}
			}
			// A plain edge is visited from both endpoints; a self-loop has a
			// single adjacency entry, so count it twice to match.
			if neighbor == node {
				superEdges[key] += 2 * w
			} else {
				superEdges[key] += w
			}
		})
	}

	for key, w := range superEdges {
		super.AddEdge(key[0], key[1], w/2)
	}

	return super
}

// Run executes the Louvain algorithm with the configured seed.
func Run(ctx context.Context, g *Graph, config *Config) (*Result, error) {
	return runSeeded(ctx, g, config, config.RandomSeed())
}

// RunRestarts executes several independently seeded runs and returns the
// partition with the highest modularity. The search is heuristic: distinct
// restarts may converge to different near-optimal partitions, so the best of
// several attempts is reported.
func RunRestarts(ctx context.Context, g *Graph, config *Config) (*Result, error) {
	restarts := config.Restarts()
	if restarts < 1 {
		restarts = 1
	}

	base := config.RandomSeed()
	var best *Result
	for r := 0; r < restarts; r++ {
		result, err := runSeeded(ctx, g, config, base+int64(r))
		if err != nil {
			return nil, err
		}
		if best == nil || result.Modularity > best.Modularity {
			best = result
		}
	}
	return best, nil
}

func runSeeded(ctx context.Context, g *Graph, config *Config, seed int64) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	logger := config.CreateLogger()
	rng := rand.New(rand.NewSource(seed))

	membership := make([]int, g.NumNodes)
	for i := range membership {
		membership[i] = i
	}

	result := &Result{Membership: membership, NumCommunities: g.NumNodes}
	if g.TotalWeight == 0 {
		return result, nil
	}

	current := g
	part := newPartition(current)

	for level := 0; level < config.MaxLevels(); level++ {
		improved, moves := part.localMove(rng, config.MaxIterations(), config.MinModularityGain())
		result.Moves += moves
		result.Levels = level + 1

		assignment, numComms := part.compactAssignment()
		for i := range membership {
			membership[i] = assignment[membership[i]]
		}
		result.NumCommunities = numComms
		result.Modularity = part.modularity()

		if config.EnableProgress() {
			logProgress(logger, level, numComms, moves, result.Modularity)
		}

		if !improved || numComms == current.NumNodes || level+1 >= config.MaxLevels() {
			break
		}

		current = part.aggregate(assignment, numComms)
		part = newPartition(current)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
	}

	return result, nil
}

func logProgress(logger zerolog.Logger, level, communities, moves int, modularity float64) {
	logger.Info().
		Int("level", level).
		Int("communities", communities).
		Int("moves", moves).
		Float64("modularity", modularity).
		Msg("Level completed")
}
