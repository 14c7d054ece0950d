// Package store is an in-memory graph.Store whose vertex properties can be changed after the
// vertex is added, which graph.Graph does not allow.
package store

import (
	"sync"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

// Updatable is a graph.Store with mutable vertex properties.
type Updatable[K comparable, T any] interface {
	graph.Store[K, T]
	UpdateVertex(k K, options ...func(*graph.VertexProperties)) error
}

type vertex[T any] struct {
	value      T
	properties graph.VertexProperties
}

// Memory implements Updatable. It is safe for concurrent use.
type Memory[K comparable, T any] struct {
	mu       sync.RWMutex
	vertices map[K]*vertex[T]
	// Edges are indexed both ways: out[source][target] and in[target][source].
	out map[K]map[K]graph.Edge[K]
	in  map[K]map[K]graph.Edge[K]
}

// NewMemory creates an empty store.
func NewMemory[K comparable, T any]() *Memory[K, T] {
	return &Memory[K, T]{
		vertices: make(map[K]*vertex[T]),
		out:      make(map[K]map[K]graph.Edge[K]),
		in:       make(map[K]map[K]graph.Edge[K]),
	}
}

func (s *Memory[K, T]) AddVertex(k K, t T, p graph.VertexProperties) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; ok {
		return graph.ErrVertexAlreadyExists
	}

	if p.Attributes == nil {
		p.Attributes = make(map[string]string)
	}

	s.vertices[k] = &vertex[T]{value: t, properties: p}

	return nil
}

func (s *Memory[K, T]) Vertex(k K) (T, graph.VertexProperties, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vertices[k]
	if !ok {
		var zero T

		return zero, graph.VertexProperties{}, graph.ErrVertexNotFound
	}

	return v.value, v.properties, nil
}

// UpdateVertex applies options to the properties of k.
func (s *Memory[K, T]) UpdateVertex(k K, options ...func(*graph.VertexProperties)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vertices[k]
	if !ok {
		return errors.Wrapf(graph.ErrVertexNotFound, "vertex %v", k)
	}

	for _, opt := range options {
		opt(&v.properties)
	}

	return nil
}

func (s *Memory[K, T]) RemoveVertex(k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.vertices[k]; !ok {
		return graph.ErrVertexNotFound
	}

	if len(s.in[k]) > 0 || len(s.out[k]) > 0 {
		return graph.ErrVertexHasEdges
	}

	delete(s.in, k)
	delete(s.out, k)
	delete(s.vertices, k)

	return nil
}

func (s *Memory[K, T]) ListVertices() ([]K, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]K, 0, len(s.vertices))
	for k := range s.vertices {
		res = append(res, k)
	}

	return res, nil
}

func (s *Memory[K, T]) VertexCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.vertices), nil
}

func (s *Memory[K, T]) AddEdge(source, target K, edge graph.Edge[K]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setEdge(source, target, edge)

	return nil
}

func (s *Memory[K, T]) UpdateEdge(source, target K, edge graph.Edge[K]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.out[source][target]; !ok {
		return graph.ErrEdgeNotFound
	}

	s.setEdge(source, target, edge)

	return nil
}

func (s *Memory[K, T]) setEdge(source, target K, edge graph.Edge[K]) {
	if s.out[source] == nil {
		s.out[source] = make(map[K]graph.Edge[K])
	}
	if s.in[target] == nil {
		s.in[target] = make(map[K]graph.Edge[K])
	}

	s.out[source][target] = edge
	s.in[target][source] = edge
}

func (s *Memory[K, T]) RemoveEdge(source, target K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.out[source], target)
	delete(s.in[target], source)

	return nil
}

func (s *Memory[K, T]) Edge(source, target K) (graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edge, ok := s.out[source][target]
	if !ok {
		return graph.Edge[K]{}, graph.ErrEdgeNotFound
	}

	return edge, nil
}

func (s *Memory[K, T]) ListEdges() ([]graph.Edge[K], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []graph.Edge[K]
	for _, targets := range s.out {
		for _, edge := range targets {
			res = append(res, edge)
		}
	}

	return res, nil
}

// CreatesCycle reports whether an edge from source to target would close a cycle, walking the
// ancestors of source.
func (s *Memory[K, T]) CreatesCycle(source, target K) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.vertices[source]; !ok {
		return false, errors.Wrapf(graph.ErrVertexNotFound, "vertex %v", source)
	}
	if _, ok := s.vertices[target]; !ok {
		return false, errors.Wrapf(graph.ErrVertexNotFound, "vertex %v", target)
	}

	visited := make(map[K]struct{})
	stack := []K{source}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current == target {
			return true, nil
		}

		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}

		for parent := range s.in[current] {
			stack = append(stack, parent)
		}
	}

	return false, nil
}

var _ Updatable[string, string] = (*Memory[string, string])(nil)
