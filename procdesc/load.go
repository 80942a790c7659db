package procdesc

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procerrors"
)

// Load parses, validates, and optimizes a processor description tree into a
// ProcessorDesc ready for the simulator core. Warnings produced along the
// way (capability aliasing, duplicate or incompatible edges, pruned dead
// ends) are emitted through log; validation failures are returned as one of
// the typed errors in package procerrors and halt loading immediately.
func Load(tree config.Tree, log *logrus.Logger) (*ProcessorDesc, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	microarch := config.AsTree(tree["microarch"])
	if microarch == nil {
		microarch = tree
	}

	g, err := parseUnits(microarch, log)
	if err != nil {
		return nil, err
	}

	if err := parseEdges(microarch, g, log); err != nil {
		return nil, err
	}

	if _, err := g.topoSort(); err != nil {
		return nil, err
	}

	wasForwarding := hadOutgoingAtDeclaration(g)

	pruneIncompatibleEdges(g, log)
	pruneDeadEnds(g, wasForwarding, log)

	if err := checkWidths(g); err != nil {
		return nil, err
	}

	if err := checkDeadInputs(g); err != nil {
		return nil, err
	}

	if err := checkLockPaths(g); err != nil {
		return nil, err
	}

	desc, err := classify(g)
	if err != nil {
		return nil, err
	}

	if desc.Empty() {
		return nil, &procerrors.EmptyProcError{}
	}

	return desc, nil
}

// classify partitions the graph's surviving units into the four roles and
// lays internal_units and out_ports out in the post-order the simulator's
// forward-flight phase requires: every unit before all of its predecessors.
func classify(g *graph) (*ProcessorDesc, error) {
	order, err := g.topoSort()
	if err != nil {
		return nil, err
	}

	reversed := make([]string, len(order))
	for i, k := range order {
		reversed[len(order)-1-i] = k
	}

	desc := &ProcessorDesc{}

	for _, k := range reversed {
		n, ok := g.get(k)
		if !ok {
			continue
		}

		model := unitModel(n)
		hasPreds := len(n.preds) > 0
		hasSuccs := len(n.succs) > 0

		switch {
		case !hasPreds && !hasSuccs:
			desc.InOutPorts = append(desc.InOutPorts, model)
		case !hasPreds && hasSuccs:
			desc.InPorts = append(desc.InPorts, model)
		case hasPreds && !hasSuccs:
			desc.OutPorts = append(desc.OutPorts, funcUnit(g, n, model))
		default:
			desc.InternalUnits = append(desc.InternalUnits, funcUnit(g, n, model))
		}
	}

	return desc, nil
}

func unitModel(n *node) UnitModel {
	return UnitModel{
		Name:         n.name,
		Width:        n.width,
		Capabilities: append([]icase.String{}, n.caps...),
		ReadLock:     n.readLock,
		WriteLock:    n.writeLock,
		MemACL:       append([]icase.String{}, n.memACL...),
	}
}

// funcUnit builds a FuncUnit for n, resolving its predecessors to their
// models in the order their edges were declared.
func funcUnit(g *graph, n *node, model UnitModel) FuncUnit {
	preds := make([]UnitModel, 0, len(n.preds))

	for _, pk := range n.preds {
		if p, ok := g.get(pk); ok {
			preds = append(preds, unitModel(p))
		}
	}

	return FuncUnit{Model: model, Predecessors: preds}
}
