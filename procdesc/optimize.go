package procdesc

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// pruneIncompatibleEdges removes every edge between two units that share no
// capability: such an edge can never carry anything, since the destination
// would reject every category the source could produce.
func pruneIncompatibleEdges(g *graph, log *logrus.Logger) {
	for _, a := range g.sortedKeys() {
		an, ok := g.get(a)
		if !ok {
			continue
		}

		succs := append([]string{}, an.succs...)
		sort.Strings(succs)

		for _, b := range succs {
			bn, ok := g.get(b)
			if !ok {
				continue
			}

			if !an.sharesCapWith(bn) {
				log.WithFields(logrus.Fields{
					"from": an.name.Original(),
					"to":   bn.name.Original(),
				}).Warn("edge removed: endpoints share no capability")

				g.removeEdge(a, b)
			}
		}
	}
}

// hadOutgoingAtDeclaration records, for every unit that was declared with at
// least one outgoing data-path edge, that it was meant to forward work
// onward rather than serve as a sink. Dead-end pruning uses this to tell a
// unit that legitimately has no successors (a true sink, destined to become
// an out_port or in_out_port) apart from one that lost every successor to
// capability or dead-end pruning and so can no longer do its declared job.
func hadOutgoingAtDeclaration(g *graph) map[string]bool {
	had := make(map[string]bool, len(g.nodes))

	for k, n := range g.nodes {
		had[k] = len(n.succs) > 0
	}

	return had
}

// pruneDeadEnds iteratively removes units with an empty capability set, and
// units that were declared to forward work onward but have been left with
// no surviving successor by earlier pruning. Both kinds of removal can
// cascade: removing a unit may orphan its own predecessors in turn, so the
// pass repeats to a fixpoint.
func pruneDeadEnds(g *graph, wasForwarding map[string]bool, log *logrus.Logger) {
	for {
		changed := false

		for _, k := range g.sortedKeys() {
			n, ok := g.get(k)
			if !ok {
				continue
			}

			switch {
			case len(n.caps) == 0:
				log.WithFields(logrus.Fields{"unit": n.name.Original()}).
					Warn("unit removed: empty capability set")
				g.removeUnit(k)
				changed = true

			case wasForwarding[k] && len(n.succs) == 0:
				log.WithFields(logrus.Fields{"unit": n.name.Original()}).
					Warn("unit removed: lost every outgoing path")
				g.removeUnit(k)
				changed = true
			}
		}

		if !changed {
			return
		}
	}
}
