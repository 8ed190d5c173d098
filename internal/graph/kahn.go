package graph

import (
	"container/list"
	"fmt"
	"strings"
)

// processingQueue wraps a list-based queue for Kahn's algorithm.
// It holds nodes that are ready to be processed (in-degree zero).
type processingQueue struct {
	queue *list.List
}

func newProcessingQueue() *processingQueue {
	return &processingQueue{queue: list.New()}
}

func (pq *processingQueue) enqueue(node string) {
	pq.queue.PushBack(node)
}

func (pq *processingQueue) dequeue() (string, bool) {
	if pq.queue.Len() == 0 {
		return "", false
	}
	elem := pq.queue.Front()
	pq.queue.Remove(elem)
	return elem.Value.(string), true
}

// inDegrees computes the number of incoming edges for each node.
func (g *Graph) inDegrees() map[string]int {
	inDegree := make(map[string]int, len(g.nodes))
	for _, name := range g.nodes {
		inDegree[name] = 0
	}
	for _, children := range g.children {
		for _, child := range children {
			inDegree[child]++
		}
	}
	return inDegree
}

// ImportOrder returns the tables sorted parents-before-children using
// Kahn's algorithm. A cycle makes table selection impossible and is
// reported as an error.
func (g *Graph) ImportOrder() ([]string, error) {
	inDegree := g.inDegrees()

	pq := newProcessingQueue()
	// Seed in catalog order so independent tables keep a stable order.
	for _, name := range g.nodes {
		if inDegree[name] == 0 {
			pq.enqueue(name)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for {
		node, ok := pq.dequeue()
		if !ok {
			break
		}
		order = append(order, node)

		for _, child := range g.children[node] {
			inDegree[child]--
			if inDegree[child] == 0 {
				pq.enqueue(child)
			}
		}
	}

	if len(order) != len(g.nodes) {
		var stuck []string
		for _, name := range g.nodes {
			if inDegree[name] > 0 {
				stuck = append(stuck, name)
			}
		}
		return nil, fmt.Errorf("cycle detected in table dependencies: %s", strings.Join(stuck, ", "))
	}

	return order, nil
}
