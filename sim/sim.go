package sim

import (
	"sort"

	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procdesc"
	"github.com/sarchlab/pipesim/procerrors"
	"github.com/sarchlab/pipesim/program"
	"github.com/sarchlab/pipesim/regaccess"
)

// Simulate drives prog through hw one cycle at a time, returning the
// accumulated utilization table. It runs until every instruction has
// retired, or returns StallError (carrying the table up to and including
// the stalled cycle) the first time a cycle makes no progress.
func Simulate(prog []program.HwInstruction, hw *procdesc.ProcessorDesc) (UtilTable, error) {
	accQueues := PlanAccess(prog)
	models := hw.NameUnitMap()
	forwardOrder := hw.ForwardFlightOrder()
	outputBoundary := hw.OutputBoundary()
	inputByCap := inputUnitsByCapability(hw.InputUnits())

	var table UtilTable

	old := newCycleUtil()
	entered, exited := 0, 0

	for entered < len(prog) || entered > exited {
		cp := cloneCycleUtil(old)
		memBusy := false

		flushRetired(cp, outputBoundary)
		forwardFlight(cp, forwardOrder, prog, &memBusy)
		entered = fetchInputs(cp, prog, inputByCap, entered, &memBusy)
		markHazards(cp, old, prog, models, accQueues)

		if cp.Equal(old, instrStateEqual) {
			return table, &procerrors.StallError{ProcessorState: table}
		}

		table = append(table, cp)
		exited += retiredCount(cp, outputBoundary)
		old = cp
	}

	return table, nil
}

// flushRetired implements Phase 1: instructions that left a cycle at an
// output-boundary unit in NO_STALL have retired; drop them before this
// cycle's own advancement runs.
func flushRetired(cp *CycleUtil, outputBoundary []procdesc.UnitModel) {
	for _, u := range outputBoundary {
		name := u.Name.Canonical()

		kept := make([]InstrState, 0, len(cp.Get(name)))
		for _, x := range cp.Get(name) {
			if x.Stalled != NoStall {
				kept = append(kept, x)
			}
		}

		cp.Delete(name)
		for _, x := range kept {
			cp.Append(name, x)
		}
	}
}

type flightCandidate struct {
	instr    int
	category icase.String
	hostName string
	hostPos  int
	host     procdesc.UnitModel
}

// forwardFlight implements Phase 2: visiting destinations in the order
// produced by the processor's post-order layout, so that a unit's slot is
// known to be free before its own predecessors are considered.
func forwardFlight(cp *CycleUtil, order []procdesc.FuncUnit, prog []program.HwInstruction, memBusy *bool) {
	for _, fu := range order {
		u := fu.Model
		uName := u.Name.Canonical()

		candidates := gatherCandidates(cp, fu.Predecessors, prog, u)

		space := u.Width - len(cp.Get(uName))
		if space < 0 {
			space = 0
		}
		if space < len(candidates) {
			candidates = candidates[:space]
		}

		type removal struct {
			host  string
			instr int
		}
		var removals []removal

		for _, c := range candidates {
			requiresMem := u.RequiresMem(c.category) || c.host.RequiresMem(c.category)
			if *memBusy && requiresMem {
				continue
			}

			cp.Append(uName, InstrState{Instr: c.instr, Stalled: NoStall})
			removals = append(removals, removal{c.hostName, c.instr})

			if requiresMem {
				*memBusy = true
			}
		}

		for _, r := range removals {
			removeInstr(cp, r.host, r.instr)
		}
	}
}

// gatherCandidates collects every predecessor-resident instruction eligible
// to move into u this cycle, ordered by program index first, then by
// originating host and position within that host.
func gatherCandidates(cp *CycleUtil, preds []procdesc.UnitModel, prog []program.HwInstruction, u procdesc.UnitModel) []flightCandidate {
	var candidates []flightCandidate

	for _, p := range preds {
		pName := p.Name.Canonical()

		for pos, x := range cp.Get(pName) {
			if x.Stalled == Data {
				continue
			}

			cat := prog[x.Instr].Category
			if !u.HasCapability(cat) {
				continue
			}

			candidates = append(candidates, flightCandidate{
				instr: x.Instr, category: cat, hostName: pName, hostPos: pos, host: p,
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.instr != b.instr {
			return a.instr < b.instr
		}
		if a.hostName != b.hostName {
			return a.hostName < b.hostName
		}
		return a.hostPos < b.hostPos
	})

	return candidates
}

func removeInstr(cp *CycleUtil, host string, instr int) {
	for idx, x := range cp.Get(host) {
		if x.Instr == instr {
			cp.RemoveAt(host, idx)
			return
		}
	}
}

// inputUnitsByCapability indexes every input-capable unit by capability,
// units sorted by canonical name so Phase 3's acceptor search is
// deterministic.
func inputUnitsByCapability(units []procdesc.UnitModel) map[string][]procdesc.UnitModel {
	byCap := make(map[string][]procdesc.UnitModel)

	for _, u := range units {
		for _, c := range u.Capabilities {
			byCap[c.Canonical()] = append(byCap[c.Canonical()], u)
		}
	}

	for c := range byCap {
		units := byCap[c]
		sort.Slice(units, func(i, j int) bool {
			return units[i].Name.Canonical() < units[j].Name.Canonical()
		})
	}

	return byCap
}

// fetchInputs implements Phase 3: fetching fresh instructions into the
// processor for as long as some acceptor takes the next one.
func fetchInputs(cp *CycleUtil, prog []program.HwInstruction, byCap map[string][]procdesc.UnitModel, entered int, memBusy *bool) int {
	for entered < len(prog) {
		cat := prog[entered].Category

		accepted := false
		for _, u := range byCap[cat.Canonical()] {
			name := u.Name.Canonical()
			if len(cp.Get(name)) >= u.Width {
				continue
			}
			if u.RequiresMem(cat) && *memBusy {
				continue
			}

			cp.Append(name, InstrState{Instr: entered, Stalled: NoStall})
			entered++

			if u.RequiresMem(cat) {
				*memBusy = true
			}

			accepted = true
			break
		}

		if !accepted {
			break
		}
	}

	return entered
}

type dequeueReq struct {
	reg   string
	instr int
}

// markHazards implements Phase 4: an instruction resident in the same unit
// as last cycle (and not already DATA) failed to advance, so it's
// STRUCTURAL; everything else is freshly arrived or was previously DATA and
// is re-evaluated against its unit's lock discipline.
func markHazards(cp, old *CycleUtil, prog []program.HwInstruction, models map[string]procdesc.UnitModel, accQueues AccessQueues) {
	var dequeues []dequeueReq

	keys := cp.Keys()
	sort.Strings(keys)

	for _, uName := range keys {
		model := models[uName]
		lst := cp.Get(uName)
		updated := make([]InstrState, len(lst))

		for idx, x := range lst {
			if residedBefore(old, uName, x.Instr) {
				x.Stalled = Structural
				updated[idx] = x
				continue
			}

			planned, stalled := checkLocks(model, prog[x.Instr], x.Instr, accQueues)
			if stalled {
				x.Stalled = Data
			} else {
				x.Stalled = NoStall
				dequeues = append(dequeues, planned...)
			}

			updated[idx] = x
		}

		cp.Delete(uName)
		for _, x := range updated {
			cp.Append(uName, x)
		}
	}

	for _, d := range dequeues {
		if q, ok := accQueues[d.reg]; ok {
			q.Dequeue(d.instr)
		}
	}
}

// residedBefore reports whether instr already occupied unit uName last
// cycle in a non-DATA state, meaning it simply failed to advance.
func residedBefore(old *CycleUtil, uName string, instr int) bool {
	for _, x := range old.Get(uName) {
		if x.Instr == instr {
			return x.Stalled != Data
		}
	}

	return false
}

// checkLocks consults a unit's lock discipline for one instruction,
// returning the register/instr pairs to dequeue if it clears, or reporting
// a data stall otherwise.
func checkLocks(model procdesc.UnitModel, instr program.HwInstruction, idx int, accQueues AccessQueues) ([]dequeueReq, bool) {
	var planned []dequeueReq

	if model.ReadLock {
		for _, src := range instr.Sources {
			q := accQueues[src]
			if q == nil || !q.CanAccess(regaccess.Read, idx) {
				return nil, true
			}

			planned = append(planned, dequeueReq{reg: src, instr: idx})
		}
	}

	if model.WriteLock {
		q := accQueues[instr.Destination]
		if q == nil || !q.CanAccess(regaccess.Write, idx) {
			return nil, true
		}

		planned = append(planned, dequeueReq{reg: instr.Destination, instr: idx})
	}

	return planned, false
}

func retiredCount(cp *CycleUtil, outputBoundary []procdesc.UnitModel) int {
	count := 0

	for _, u := range outputBoundary {
		for _, x := range cp.Get(u.Name.Canonical()) {
			if x.Stalled == NoStall {
				count++
			}
		}
	}

	return count
}
