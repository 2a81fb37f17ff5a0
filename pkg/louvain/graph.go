package louvain

import "fmt"

// halfEdge is one endpoint's view of an undirected weighted edge.
type halfEdge struct {
	to     int
	weight float64
}

// Graph is a weighted undirected species-interaction graph stored as
// adjacency lists.
type Graph struct {
	NumNodes    int
	Degrees     []float64 // weighted degree of each node
	TotalWeight float64   // sum of all edge weights
	edges       [][]halfEdge
}

// NewGraph creates an empty graph with n nodes.
func NewGraph(numNodes int) *Graph {
	return &Graph{
		NumNodes: numNodes,
		Degrees:  make([]float64, numNodes),
		edges:    make([][]halfEdge, numNodes),
	}
}

// AddEdge adds an undirected weighted edge between two nodes. Self-loops
// contribute twice to the node's degree.
func (g *Graph) AddEdge(u, v int, weight float64) error {
	if u < 0 || u >= g.NumNodes || v < 0 || v >= g.NumNodes {
		return fmt.Errorf("louvain: node index out of range: u=%d, v=%d, nodes=%d", u, v, g.NumNodes)
	}
	if weight <= 0 {
		return fmt.Errorf("louvain: edge weight must be positive: %f", weight)
	}

	g.edges[u] = append(g.edges[u], halfEdge{to: v, weight: weight})
	g.Degrees[u] += weight
	if u != v {
		g.edges[v] = append(g.edges[v], halfEdge{to: u, weight: weight})
		g.Degrees[v] += weight
	} else {
		g.Degrees[u] += weight
	}
	g.TotalWeight += weight
	return nil
}

// SelfLoopWeight returns the total weight of self-loops at a node.
func (g *Graph) SelfLoopWeight(node int) float64 {
	w := 0.0
	for _, e := range g.edges[node] {
		if e.to == node {
			w += e.weight
		}
	}
	return w
}

// Neighbors visits every half-edge incident to a node.
func (g *Graph) Neighbors(node int, visit func(neighbor int, weight float64)) {
	for _, e := range g.edges[node] {
		visit(e.to, e.weight)
	}
}

// Validate checks graph consistency.
func (g *Graph) Validate() error {
	if g.NumNodes <= 0 {
		return fmt.Errorf("louvain: graph must have a positive number of nodes")
	}
	for u := range g.edges {
		for _, e := range g.edges[u] {
			if e.to < 0 || e.to >= g.NumNodes {
				return fmt.Errorf("louvain: invalid neighbor %d for node %d", e.to, u)
			}
			if e.weight <= 0 {
				return fmt.Errorf("louvain: non-positive weight %f on edge %d-%d", e.weight, u, e.to)
			}
		}
	}
	return nil
}
