// Package graph provides the table dependency graph that fixes the
// import order for GARMirror.
package graph

import (
	"fmt"

	"garmirror/internal/gar"
)

// Graph represents the dependency structure between GAR tables.
// Edges point from a referenced (parent) table to the table that
// references it, so a topological walk yields parents first.
type Graph struct {
	nodes    []string
	children map[string][]string // table -> dependent tables
	parents  map[string][]string // table -> referenced tables
}

// FromCatalog builds the graph from table descriptors. Descriptor order
// is preserved so the resulting import order is deterministic.
func FromCatalog(tables []gar.Table) (*Graph, error) {
	g := &Graph{
		children: make(map[string][]string),
		parents:  make(map[string][]string),
	}

	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		if known[t.Name] {
			return nil, fmt.Errorf("duplicate table %s", t.Name)
		}
		known[t.Name] = true
		g.nodes = append(g.nodes, t.Name)
	}

	for _, t := range tables {
		for _, dep := range t.DependsOn {
			if !known[dep] {
				return nil, fmt.Errorf("table %s depends on unknown table %s", t.Name, dep)
			}
			g.children[dep] = append(g.children[dep], t.Name)
			g.parents[t.Name] = append(g.parents[t.Name], dep)
		}
	}

	return g, nil
}

// Parents returns the tables the given table references.
func (g *Graph) Parents(table string) []string {
	return g.parents[table]
}

// Len returns the number of tables in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}
