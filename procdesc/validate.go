package procdesc

import (
	"sort"

	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procerrors"
)

// sortedCaps returns a unit's capabilities in canonical-lexicographic order,
// the deterministic basis width validation walks them in.
func sortedCaps(caps []icase.String) []icase.String {
	out := append([]icase.String{}, caps...)

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })

	return out
}

// checkWidths enforces that every capability an in_port advertises is shared
// by at least one of the port's direct successors; units beyond the first
// edge are not examined. A capability that dead-ends immediately — no
// directly-reachable unit shares it at all — blocks that capability at the
// port, even though the port's other capabilities
// may flow downstream just fine (the all-capabilities-blocked case is
// DeadInputError instead, checked separately).
//
// A plain pipeline that narrows in raw unit width (input width 2 feeding an
// output width 1) is not itself a blockage: narrower downstream capacity
// only produces ordinary structural stalls during simulation, never a
// validation failure, so this check is reachability-only and never compares
// numeric widths.
func checkWidths(g *graph) error {
	for _, srcKey := range g.sortedKeys() {
		src, ok := g.get(srcKey)
		if !ok || len(src.preds) > 0 || len(src.succs) == 0 {
			continue
		}

		for _, c := range sortedCaps(src.caps) {
			if !reachesCap(g, src, c) {
				return &procerrors.BlockedCapError{
					Capability: procerrors.ComponentInfo{Std: c.Canonical(), Reporting: c.Original()},
					Port:       procerrors.ComponentInfo{Std: src.name.Canonical(), Reporting: src.name.Original()},
				}
			}
		}
	}

	return nil
}

// reachesCap reports whether capability c, fed into src, can flow through at
// least one edge into a unit that also shares c.
func reachesCap(g *graph, src *node, c icase.String) bool {
	succs := append([]string{}, src.succs...)
	sort.Strings(succs)

	for _, sk := range succs {
		if s, ok := g.get(sk); ok && s.hasCap(c) {
			return true
		}
	}

	return false
}

// checkDeadInputs fails if some source unit's capabilities are entirely
// unsupported by every unit it can reach.
func checkDeadInputs(g *graph) error {
	for _, srcKey := range g.sortedKeys() {
		src, ok := g.get(srcKey)
		if !ok || len(src.preds) > 0 || len(src.succs) == 0 {
			continue
		}

		if !reachesSharedCap(g, src) {
			return &procerrors.DeadInputError{Port: src.name.Original()}
		}
	}

	return nil
}

func reachesSharedCap(g *graph, src *node) bool {
	visited := map[string]bool{src.name.Canonical(): true}
	queue := append([]string{}, src.succs...)

	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]

		if visited[k] {
			continue
		}

		visited[k] = true

		n, ok := g.get(k)
		if !ok {
			continue
		}

		if src.sharesCapWith(n) {
			return true
		}

		queue = append(queue, n.succs...)
	}

	return false
}

// checkLockPaths enumerates every simple source-to-sink path and fails if
// any path carries two or more units declaring the same kind of lock.
func checkLockPaths(g *graph) error {
	for _, srcKey := range g.sortedKeys() {
		src, ok := g.get(srcKey)
		if !ok || len(src.preds) > 0 {
			continue
		}

		if err := walkLockPaths(g, src, nil, 0, 0); err != nil {
			return err
		}
	}

	return nil
}

func walkLockPaths(g *graph, n *node, path []string, reads, writes int) error {
	path = append(path, n.name.Canonical())

	if n.readLock {
		reads++
	}

	if n.writeLock {
		writes++
	}

	if reads >= 2 || writes >= 2 {
		return &procerrors.MultiLockError{Segment: reportingNames(g, path)}
	}

	succs := append([]string{}, n.succs...)
	sort.Strings(succs)

	for _, sk := range succs {
		s, ok := g.get(sk)
		if !ok {
			continue
		}

		if err := walkLockPaths(g, s, append([]string{}, path...), reads, writes); err != nil {
			return err
		}
	}

	return nil
}

func reportingNames(g *graph, keys []string) []string {
	out := make([]string, 0, len(keys))

	for _, k := range keys {
		if n, ok := g.get(k); ok {
			out = append(out, n.name.Original())
		}
	}

	return out
}
