// Package pagerank computes PageRank scores over a vertex/edge graph
// built up by the caller one AddVertex/AddEdge call at a time, the
// same incremental-build-then-compute shape as a bulk-synchronous
// graph-compute engine, but solved with a single-threaded transition
// matrix and power iteration instead of superstep message passing:
// the engine this package serves runs crawl, index build, page-rank,
// and query evaluation on one execution context with no shared
// mutable state across tasks, which a message-passing compute graph
// would fight rather than serve.
package pagerank

import (
	"context"
	"errors"
	"math"
)

// ErrUnknownEdgeSource is returned by AddEdge when the edge's source
// vertex has not been registered with AddVertex.
var ErrUnknownEdgeSource = errors.New("pagerank: unknown edge source vertex")

// ErrScoresNotComputed is returned by Scores when CalculatePageRanks
// has not yet run (or has been invalidated by Reset).
var ErrScoresNotComputed = errors.New("pagerank: scores have not been computed")

// Calculator builds a transition matrix over a set of vertices and
// iterates a rank vector to a fixed point.
type Calculator struct {
	cfg Config

	order []string
	index map[string]int
	adj   [][]bool

	scores   []float64
	computed bool
}

// NewCalculator returns a new Calculator instance.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Calculator{
		cfg:   cfg,
		index: make(map[string]int),
	}, nil
}

// Reset discards all vertices, edges, and computed scores so the
// Calculator can be reused for a fresh pass.
func (c *Calculator) Reset() {
	c.order = nil
	c.index = make(map[string]int)
	c.adj = nil
	c.scores = nil
	c.computed = false
}

// AddVertex registers a vertex. Calling it more than once with the
// same id is a no-op.
func (c *Calculator) AddVertex(id string) {
	if _, ok := c.index[id]; ok {
		return
	}

	c.index[id] = len(c.order)
	c.order = append(c.order, id)

	for i := range c.adj {
		c.adj[i] = append(c.adj[i], false)
	}

	c.adj = append(c.adj, make([]bool, len(c.order)))
}

// AddEdge records a directed edge from src to dest. src must already
// be a known vertex. dest is allowed to be unknown: that represents a
// link to a page outside the set being ranked, and it is silently
// excluded from the adjacency matrix rather than treated as an error,
// since the matrix is square over known vertices only.
func (c *Calculator) AddEdge(src, dest string) error {
	si, ok := c.index[src]
	if !ok {
		return ErrUnknownEdgeSource
	}

	di, ok := c.index[dest]
	if !ok {
		return nil
	}

	c.adj[si][di] = true

	return nil
}

// VertexCount returns the number of registered vertices.
func (c *Calculator) VertexCount() int { return len(c.order) }

// CalculatePageRanks builds the teleport-smoothed transition matrix
// over the registered vertices and iterates the rank vector until
// successive iterates are within Epsilon of each other (Euclidean
// distance), or ctx is cancelled.
func (c *Calculator) CalculatePageRanks(ctx context.Context) error {
	n := len(c.order)
	if n == 0 {
		c.scores = nil
		c.computed = true

		return nil
	}

	matrix := c.buildTransitionMatrix()

	r := make([]float64, n)
	for i := range r {
		r[i] = 1.0 / float64(n)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next := vectorMultiplySquareMatrix(r, matrix)
		dist := euclideanDistance(next, r)
		r = next

		if dist <= c.cfg.Epsilon {
			break
		}
	}

	c.scores = r
	c.computed = true

	c.cfg.Logger.WithField("vertices", n).Debug("page rank iteration converged")

	return nil
}

func (c *Calculator) buildTransitionMatrix() [][]float64 {
	n := len(c.order)
	alpha := c.cfg.Alpha
	teleport := alpha / float64(n)

	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		matrix[i] = make([]float64, n)

		rowSum := 0
		for j := 0; j < n; j++ {
			if c.adj[i][j] {
				rowSum++
			}
		}

		for j := 0; j < n; j++ {
			matrix[i][j] = teleport

			switch {
			case rowSum > 0 && c.adj[i][j]:
				matrix[i][j] += (1 - alpha) / float64(rowSum)
			case rowSum == 0:
				matrix[i][j] += (1 - alpha) / float64(n)
			}
		}
	}

	return matrix
}

// Scores invokes visit once per vertex, in the order vertices were
// added, with the vertex id and its computed page-rank score.
func (c *Calculator) Scores(visit func(id string, score float64) error) error {
	if !c.computed {
		return ErrScoresNotComputed
	}

	for i, id := range c.order {
		if err := visit(id, c.scores[i]); err != nil {
			return err
		}
	}

	return nil
}

// vectorMultiplySquareMatrix multiplies a row vector by a square
// matrix of the same dimension. This is a streamlined special case of
// general matrix multiplication, not a reusable linear-algebra
// primitive.
func vectorMultiplySquareMatrix(v []float64, m [][]float64) []float64 {
	n := len(v)
	out := make([]float64, n)

	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += v[i] * m[i][j]
		}
		out[j] = sum
	}

	return out
}

func euclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}
