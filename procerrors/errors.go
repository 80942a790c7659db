// Package procerrors defines the typed failure values the loader, the
// validator, and the simulator core raise. Each error kind carries its
// offending data as exported fields rather than folding everything into a
// message string, so callers can recover the parameters with errors.As
// instead of parsing text.
//
// This mirrors processorSim's processor_utils/exception.py: one exception
// class per failure kind, each exposing the properties a caller would need
// to react to it (the bad unit, the bad edge, the blocking capability...).
package procerrors

import "fmt"

// ComponentInfo names a processor element two ways: the case-folded
// canonical form used for comparisons, and the original spelling used for
// diagnostics.
type ComponentInfo struct {
	Std       string
	Reporting string
}

// BadWidthError reports a unit whose declared width isn't positive.
type BadWidthError struct {
	Unit  string
	Width int
}

func (e *BadWidthError) Error() string {
	return fmt.Sprintf("unit %q has invalid width %d: width must be positive", e.Unit, e.Width)
}

// BadEdgeError reports a data-path edge that doesn't name exactly two
// units.
type BadEdgeError struct {
	Edge []string
}

func (e *BadEdgeError) Error() string {
	return fmt.Sprintf("edge %v does not connect exactly two units", e.Edge)
}

// DupElemError reports a second unit whose name case-folds to one already
// registered.
type DupElemError struct {
	OldElem string
	NewElem string
}

func (e *DupElemError) Error() string {
	return fmt.Sprintf("duplicate unit name: %q conflicts with existing %q", e.NewElem, e.OldElem)
}

// UndefElemError reports a reference to a unit name that was never
// declared.
type UndefElemError struct {
	Element string
}

func (e *UndefElemError) Error() string {
	return fmt.Sprintf("undefined unit %q", e.Element)
}

// BlockedCapError reports an in-port capability that none of the port's
// direct successors shares, so it cannot flow past the port.
type BlockedCapError struct {
	Capability ComponentInfo
	Port       ComponentInfo
}

func (e *BlockedCapError) Error() string {
	return fmt.Sprintf("capability %q is blocked at input port %q", e.Capability.Reporting, e.Port.Reporting)
}

// DeadInputError reports an in-port none of whose capabilities are
// supported by any reachable successor.
type DeadInputError struct {
	Port string
}

func (e *DeadInputError) Error() string {
	return fmt.Sprintf("input port %q has no reachable unit sharing any of its capabilities", e.Port)
}

// TightWidthError reports a downstream segment narrower than the width fed
// into it.
type TightWidthError struct {
	ActualWidth int
	MinWidth    int
}

func (e *TightWidthError) Error() string {
	return fmt.Sprintf("width %d is narrower than the minimum required width %d", e.ActualWidth, e.MinWidth)
}

// CycleError reports that the data-path predecessor relation is not a DAG:
// Segment names the units participating in some cycle.
//
// The retrieved exception taxonomy this package otherwise mirrors covers
// unit/edge/capability/width/lock errors but has no cycle-specific kind.
// CycleError is added here, shaped like MultiLockError (a reported path
// segment), to close that gap.
type CycleError struct {
	Segment []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("processor data path contains a cycle through %v", e.Segment)
}

// MultiLockError reports a simple path through two or more units that both
// declare the same kind of lock.
type MultiLockError struct {
	Segment []string
}

func (e *MultiLockError) Error() string {
	return fmt.Sprintf("path %v carries more than one lock of the same kind", e.Segment)
}

// EmptyProcError reports a processor description with nothing left after
// optimization.
type EmptyProcError struct{}

func (e *EmptyProcError) Error() string {
	return "processor description has no units left after optimization"
}

// StallError reports that a simulated cycle made no progress at all: the
// utilization table is structurally identical to the previous cycle's.
// ProcessorState carries the accumulated utilization table up to and
// including the stalled cycle (typed as any to avoid a dependency on the
// sim package, which is the only thing that constructs this error).
type StallError struct {
	ProcessorState any
}

func (e *StallError) Error() string {
	return "processor stalled: no instruction advanced in the last cycle"
}
