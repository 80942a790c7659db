package sim

import (
	"github.com/sarchlab/pipesim/program"
	"github.com/sarchlab/pipesim/regaccess"
)

// PlanAccess walks the program in order and builds one access queue per
// register name: every source read, then the destination write, each
// instruction in turn. The resulting map is itself immutable structure —
// only the queues it holds mutate, as the simulator drains them.
func PlanAccess(prog []program.HwInstruction) AccessQueues {
	builders := make(map[string]*regaccess.Builder)

	builder := func(reg string) *regaccess.Builder {
		b, ok := builders[reg]
		if !ok {
			b = &regaccess.Builder{}
			builders[reg] = b
		}

		return b
	}

	for i, instr := range prog {
		for _, r := range instr.Sources {
			builder(r).Append(regaccess.Read, i)
		}

		builder(instr.Destination).Append(regaccess.Write, i)
	}

	out := make(AccessQueues, len(builders))
	for reg, b := range builders {
		out[reg] = b.Build()
	}

	return out
}
