package sim_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procdesc"
	"github.com/sarchlab/pipesim/procerrors"
	"github.com/sarchlab/pipesim/program"
	"github.com/sarchlab/pipesim/sim"
)

func model(name string, width int, caps ...string) procdesc.UnitModel {
	cs := make([]icase.String, len(caps))
	for i, c := range caps {
		cs[i] = icase.New(c)
	}

	return procdesc.UnitModel{Name: icase.New(name), Width: width, Capabilities: cs}
}

func withLocks(u procdesc.UnitModel, read, write bool) procdesc.UnitModel {
	u.ReadLock = read
	u.WriteLock = write
	return u
}

func instr(sources []string, dest, category string) program.HwInstruction {
	return program.HwInstruction{Sources: sources, Destination: dest, Category: icase.New(category)}
}

var _ = Describe("Simulate", func() {
	It("runs a single locking unit through one cycle (S1)", func() {
		fullSys := withLocks(model("fullSys", 1, "ALU"), true, true)

		hw := &procdesc.ProcessorDesc{InOutPorts: []procdesc.UnitModel{fullSys}}
		prog := []program.HwInstruction{instr([]string{"R11", "R15"}, "R14", "ALU")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(HaveLen(1))
		Expect(table[0].Get("fullsys")).To(ConsistOf(sim.InstrState{Instr: 0, Stalled: sim.NoStall}))
	})

	It("splits fetched instructions across two capability-specific outputs (S2)", func() {
		input := model("input", 2, "ALU", "MEM")
		aluOut := procdesc.FuncUnit{Model: model("aluOut", 1, "ALU"), Predecessors: []procdesc.UnitModel{input}}
		memOut := procdesc.FuncUnit{Model: model("memOut", 1, "MEM"), Predecessors: []procdesc.UnitModel{input}}

		hw := &procdesc.ProcessorDesc{InPorts: []procdesc.UnitModel{input}, OutPorts: []procdesc.FuncUnit{aluOut, memOut}}
		prog := []program.HwInstruction{
			instr(nil, "R12", "MEM"),
			instr([]string{"R11", "R15"}, "R14", "ALU"),
		}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(HaveLen(2))

		Expect(table[0].Get("input")).To(ConsistOf(
			sim.InstrState{Instr: 0, Stalled: sim.NoStall},
			sim.InstrState{Instr: 1, Stalled: sim.NoStall},
		))

		Expect(table[1].Get("aluout")).To(ConsistOf(sim.InstrState{Instr: 1, Stalled: sim.NoStall}))
		Expect(table[1].Get("memout")).To(ConsistOf(sim.InstrState{Instr: 0, Stalled: sim.NoStall}))
	})

	It("stalls structurally when a narrower downstream unit can't keep pace (S3)", func() {
		input := model("input", 2, "ALU")
		middle := model("middle", 2, "ALU")
		output := model("output", 1, "ALU")

		hw := &procdesc.ProcessorDesc{
			InPorts:       []procdesc.UnitModel{input},
			InternalUnits: []procdesc.FuncUnit{{Model: middle, Predecessors: []procdesc.UnitModel{input}}},
			OutPorts:      []procdesc.FuncUnit{{Model: output, Predecessors: []procdesc.UnitModel{middle}}},
		}
		prog := []program.HwInstruction{instr(nil, "R1", "ALU"), instr(nil, "R2", "ALU")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(HaveLen(4))

		Expect(table[0].Get("input")).To(ConsistOf(
			sim.InstrState{Instr: 0, Stalled: sim.NoStall},
			sim.InstrState{Instr: 1, Stalled: sim.NoStall},
		))
		Expect(table[1].Get("middle")).To(ConsistOf(
			sim.InstrState{Instr: 0, Stalled: sim.NoStall},
			sim.InstrState{Instr: 1, Stalled: sim.NoStall},
		))
		Expect(table[2].Get("middle")).To(ConsistOf(sim.InstrState{Instr: 1, Stalled: sim.Structural}))
		Expect(table[2].Get("output")).To(ConsistOf(sim.InstrState{Instr: 0, Stalled: sim.NoStall}))
		Expect(table[3].Get("output")).To(ConsistOf(sim.InstrState{Instr: 1, Stalled: sim.NoStall}))
	})

	It("holds a dependent instruction in DATA until its producer retires (S4)", func() {
		in1 := model("in1", 1, "ALU")
		in2 := model("in2", 1, "ALU")
		output := withLocks(model("output", 2, "ALU"), true, true)

		hw := &procdesc.ProcessorDesc{
			InPorts:  []procdesc.UnitModel{in1, in2},
			OutPorts: []procdesc.FuncUnit{{Model: output, Predecessors: []procdesc.UnitModel{in1, in2}}},
		}
		prog := []program.HwInstruction{instr(nil, "R1", "ALU"), instr([]string{"R1"}, "R2", "ALU")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(HaveLen(3))

		Expect(table[1].Get("output")).To(ConsistOf(
			sim.InstrState{Instr: 0, Stalled: sim.NoStall},
			sim.InstrState{Instr: 1, Stalled: sim.Data},
		))
		Expect(table[2].Get("output")).To(ConsistOf(sim.InstrState{Instr: 1, Stalled: sim.NoStall}))
	})

	It("raises StallError carrying the table accumulated up to the stalled cycle (S5)", func() {
		fullSys := model("fullSys", 1, "ALU")
		hw := &procdesc.ProcessorDesc{InOutPorts: []procdesc.UnitModel{fullSys}}
		prog := []program.HwInstruction{instr(nil, "R1", "ALU"), instr(nil, "R2", "MEM")}

		table, err := sim.Simulate(prog, hw)

		var target *procerrors.StallError
		Expect(errors.As(err, &target)).To(BeTrue())
		Expect(target.ProcessorState).To(Equal(table))
		Expect(table).To(HaveLen(2))
	})

	It("advances the earliest program index first when two inputs compete for one output (S6)", func() {
		inALU := model("inALU", 1, "ALU")
		inMEM := model("inMEM", 1, "MEM")
		output := model("output", 1, "ALU", "MEM")

		hw := &procdesc.ProcessorDesc{
			InPorts:  []procdesc.UnitModel{inALU, inMEM},
			OutPorts: []procdesc.FuncUnit{{Model: output, Predecessors: []procdesc.UnitModel{inALU, inMEM}}},
		}
		prog := []program.HwInstruction{instr(nil, "R1", "MEM"), instr(nil, "R2", "ALU")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table).To(HaveLen(3))

		Expect(table[1].Get("output")).To(ConsistOf(sim.InstrState{Instr: 0, Stalled: sim.NoStall}))
		Expect(table[1].Get("inalu")).To(ConsistOf(sim.InstrState{Instr: 1, Stalled: sim.Structural}))
	})

	It("never lets a unit exceed its width across any cycle (invariant 1)", func() {
		input := model("input", 1, "ALU")
		output := model("output", 1, "ALU")

		hw := &procdesc.ProcessorDesc{
			InPorts:  []procdesc.UnitModel{input},
			OutPorts: []procdesc.FuncUnit{{Model: output, Predecessors: []procdesc.UnitModel{input}}},
		}
		prog := []program.HwInstruction{instr(nil, "R1", "ALU"), instr(nil, "R2", "ALU"), instr(nil, "R3", "ALU")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())

		for _, cycle := range table {
			Expect(len(cycle.Get("input"))).To(BeNumerically("<=", input.Width))
			Expect(len(cycle.Get("output"))).To(BeNumerically("<=", output.Width))
		}
	})

	It("only admits one memory-access unit's worth of traffic per cycle (invariant 2)", func() {
		memIn := model("memIn", 2, "MEM")
		memIn.MemACL = []icase.String{icase.New("MEM")}
		out := model("out", 2, "MEM")
		out.MemACL = []icase.String{icase.New("MEM")}

		hw := &procdesc.ProcessorDesc{
			InPorts:  []procdesc.UnitModel{memIn},
			OutPorts: []procdesc.FuncUnit{{Model: out, Predecessors: []procdesc.UnitModel{memIn}}},
		}
		prog := []program.HwInstruction{instr(nil, "R1", "MEM"), instr(nil, "R2", "MEM")}

		table, err := sim.Simulate(prog, hw)
		Expect(err).NotTo(HaveOccurred())
		Expect(table[0].Get("memin")).To(ConsistOf(sim.InstrState{Instr: 0, Stalled: sim.NoStall}))
	})
})
