// Package sim implements the simulator core (component I) and the register
// access planner (component J): the per-cycle state machine that drives a
// compiled program through a validated processor, plus the queue-building
// step that feeds it data-hazard information.
package sim

import (
	"github.com/sarchlab/pipesim/container"
	"github.com/sarchlab/pipesim/regaccess"
)

// StallKind classifies why an instruction failed to advance in a cycle.
type StallKind int

const (
	// NoStall marks an instruction that advanced (or newly arrived) this
	// cycle.
	NoStall StallKind = iota
	// Structural marks an instruction that stayed in the same unit because
	// nothing downstream had room or accepted its category.
	Structural
	// Data marks an instruction held back by an unresolved register
	// dependency.
	Data
)

// String implements fmt.Stringer for diagnostics.
func (k StallKind) String() string {
	switch k {
	case NoStall:
		return "NO_STALL"
	case Structural:
		return "STRUCTURAL"
	case Data:
		return "DATA"
	default:
		return "UNKNOWN"
	}
}

// InstrState is one instruction's occupancy record within a unit at a given
// cycle: its program index and its current stall classification.
type InstrState struct {
	Instr   int
	Stalled StallKind
}

// CycleUtil is a single cycle's utilization snapshot: unit name (canonical)
// to the unordered bag of instructions it hosts. It is a bag-valued
// dictionary so that Phase 5's "same multiset sense" structural-identity
// check is the container's own Equal, not a hand-rolled comparison.
type CycleUtil = container.BagValDict[string, InstrState]

func newCycleUtil() *CycleUtil {
	return container.NewBagValDict[string, InstrState]()
}

func cloneCycleUtil(u *CycleUtil) *CycleUtil {
	return u.Clone(func(s InstrState) InstrState { return s })
}

func instrStateEqual(a, b InstrState) bool {
	return a.Instr == b.Instr && a.Stalled == b.Stalled
}

// UtilTable is the accumulating, ordered sequence of per-cycle snapshots a
// simulation run produces — one entry per simulated clock cycle.
type UtilTable []*CycleUtil

// AccessQueues is the planner's output: one planned access queue per
// register name, consulted and drained as the simulation resolves data
// hazards.
type AccessQueues map[string]*regaccess.Queue
