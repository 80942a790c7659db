package procdesc

import (
	"sort"

	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procerrors"
)

// node is the mutable, in-progress representation of a unit while the
// graph is being built, validated, and optimized. Once Load finishes,
// nodes are frozen into the immutable UnitModel/FuncUnit/ProcessorDesc
// types the rest of the simulator sees.
type node struct {
	name      icase.String
	width     int
	caps      []icase.String
	readLock  bool
	writeLock bool
	memACL    []icase.String
	preds     []string // canonical names, edge-discovery order
	succs     []string
}

func (n *node) hasCap(c icase.String) bool {
	for _, own := range n.caps {
		if own.Equal(c) {
			return true
		}
	}

	return false
}

func (n *node) sharesCapWith(other *node) bool {
	for _, c := range n.caps {
		if other.hasCap(c) {
			return true
		}
	}

	return false
}

// graph holds every unit under construction, keyed by canonical name, along
// with the order units were first declared. Deterministic passes over the
// graph iterate by sortedKeys, not by that declaration order.
type graph struct {
	order []string
	nodes map[string]*node
}

func newGraph() *graph {
	return &graph{nodes: make(map[string]*node)}
}

func (g *graph) add(n *node) {
	key := n.name.Canonical()
	if _, exists := g.nodes[key]; !exists {
		g.order = append(g.order, key)
	}

	g.nodes[key] = n
}

func (g *graph) get(key string) (*node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// sortedKeys returns every unit's canonical name in canonical-lexicographic
// order, the stable iteration basis every deterministic pass over the
// graph relies on.
func (g *graph) sortedKeys() []string {
	keys := make([]string, 0, len(g.nodes))
	for k := range g.nodes {
		keys = append(keys, k)
	}

	sort.Strings(keys)
	return keys
}

func (g *graph) addEdge(a, b string) {
	an, bn := g.nodes[a], g.nodes[b]
	an.succs = append(an.succs, b)
	bn.preds = append(bn.preds, a)
}

// removeEdge deletes the a->b edge, if present, from both endpoints'
// adjacency lists.
func (g *graph) removeEdge(a, b string) {
	if an, ok := g.nodes[a]; ok {
		an.succs = removeStr(an.succs, b)
	}

	if bn, ok := g.nodes[b]; ok {
		bn.preds = removeStr(bn.preds, a)
	}
}

// removeUnit deletes a unit and every edge touching it.
func (g *graph) removeUnit(key string) {
	n, ok := g.nodes[key]
	if !ok {
		return
	}

	for _, s := range append([]string{}, n.succs...) {
		g.removeEdge(key, s)
	}

	for _, p := range append([]string{}, n.preds...) {
		g.removeEdge(p, key)
	}

	delete(g.nodes, key)
	g.order = removeStr(g.order, key)
}

func removeStr(lst []string, v string) []string {
	out := lst[:0]

	for _, s := range lst {
		if s != v {
			out = append(out, s)
		}
	}

	return out
}

// topoSort returns every unit in topological order (each unit after all of
// its predecessors), breaking ties by canonical name for determinism. It
// fails with a CycleError if the predecessor relation isn't a DAG.
func (g *graph) topoSort() ([]string, error) {
	indeg := make(map[string]int, len(g.nodes))
	for k, n := range g.nodes {
		indeg[k] = len(n.preds)
	}

	var ready []string

	for _, k := range g.sortedKeys() {
		if indeg[k] == 0 {
			ready = append(ready, k)
		}
	}

	var order []string

	for len(ready) > 0 {
		sort.Strings(ready)
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)

		succs := append([]string{}, g.nodes[cur].succs...)
		sort.Strings(succs)

		for _, s := range succs {
			indeg[s]--
			if indeg[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, &procerrors.CycleError{Segment: cycleResidue(g, order)}
	}

	return order, nil
}

// cycleResidue names the units left over after topological sort drains
// everything acyclic, i.e. the units participating in some cycle.
func cycleResidue(g *graph, resolved []string) []string {
	done := make(map[string]bool, len(resolved))
	for _, k := range resolved {
		done[k] = true
	}

	var left []string

	for _, k := range g.sortedKeys() {
		if !done[k] {
			left = append(left, g.nodes[k].name.Original())
		}
	}

	return left
}
