// Package procdesc implements the microarchitecture parser, validator, and
// graph optimizer: component E+F of the simulator. It turns a generic
// configuration tree into a validated ProcessorDesc — a typed graph of
// functional units ready for the simulator core to drive.
package procdesc

import "github.com/sarchlab/pipesim/icase"

// UnitModel is a processing unit's static description: its name, its
// capacity, what it can do, and how it participates in register locking
// and memory arbitration.
type UnitModel struct {
	Name         icase.String
	Width        int
	Capabilities []icase.String
	ReadLock     bool
	WriteLock    bool
	MemACL       []icase.String
}

// HasCapability reports whether the unit declares the given capability.
func (u UnitModel) HasCapability(c icase.String) bool {
	for _, own := range u.Capabilities {
		if own.Equal(c) {
			return true
		}
	}

	return false
}

// RequiresMem reports whether performing work of the given capability on
// this unit requires the shared memory-access token.
func (u UnitModel) RequiresMem(c icase.String) bool {
	for _, own := range u.MemACL {
		if own.Equal(c) {
			return true
		}
	}

	return false
}

// FuncUnit is a UnitModel together with the ordered, unique list of units
// that feed it directly. The predecessor relation is acyclic across the
// whole processor.
type FuncUnit struct {
	Model        UnitModel
	Predecessors []UnitModel
}

// ProcessorDesc is a validated processor: four disjoint collections of unit
// models by role.
//
// InternalUnits is stored in topological post-order: every unit appears
// before all of its predecessors. Combined with OutPorts (iterated first),
// this is the exact traversal order the simulator core's forward-flight
// phase requires so that a unit's slot is freed before the unit looks to
// its own predecessors for new occupants in the same cycle.
type ProcessorDesc struct {
	InPorts       []UnitModel
	OutPorts      []FuncUnit
	InOutPorts    []UnitModel
	InternalUnits []FuncUnit
}

// NameUnitMap builds a lookup from canonical unit name to its model, used
// by the simulator core to recover a unit's lock discipline and memory
// attributes by name alone.
func (p *ProcessorDesc) NameUnitMap() map[string]UnitModel {
	out := make(map[string]UnitModel)

	for _, u := range p.InPorts {
		out[u.Name.Canonical()] = u
	}

	for _, u := range p.InOutPorts {
		out[u.Name.Canonical()] = u
	}

	for _, fu := range p.OutPorts {
		out[fu.Model.Name.Canonical()] = fu.Model
	}

	for _, fu := range p.InternalUnits {
		out[fu.Model.Name.Canonical()] = fu.Model
	}

	return out
}

// ForwardFlightOrder returns the units the simulator core's forward-flight
// phase must visit, in the exact order required: out_ports first (in
// whatever order Load produced, stable by construction), then
// internal_units in their post-order.
func (p *ProcessorDesc) ForwardFlightOrder() []FuncUnit {
	out := make([]FuncUnit, 0, len(p.OutPorts)+len(p.InternalUnits))
	out = append(out, p.OutPorts...)
	out = append(out, p.InternalUnits...)

	return out
}

// OutputBoundary returns every unit sitting at the processor's output
// boundary: in_out_ports plus the models of out_ports. Instructions
// retiring (leaving the simulated pipeline) only ever do so from one of
// these units.
func (p *ProcessorDesc) OutputBoundary() []UnitModel {
	out := make([]UnitModel, 0, len(p.InOutPorts)+len(p.OutPorts))
	out = append(out, p.InOutPorts...)

	for _, fu := range p.OutPorts {
		out = append(out, fu.Model)
	}

	return out
}

// InputUnits returns every unit that can accept a freshly-fetched
// instruction: in_out_ports plus in_ports.
func (p *ProcessorDesc) InputUnits() []UnitModel {
	out := make([]UnitModel, 0, len(p.InOutPorts)+len(p.InPorts))
	out = append(out, p.InOutPorts...)
	out = append(out, p.InPorts...)

	return out
}

// Empty reports whether the processor has no units left in any role.
func (p *ProcessorDesc) Empty() bool {
	return len(p.InPorts) == 0 && len(p.OutPorts) == 0 &&
		len(p.InOutPorts) == 0 && len(p.InternalUnits) == 0
}
