// Package pipesim threads the microarchitecture parser, the ISA loader, the
// program compiler, and the simulator core together (component K): the
// single entry point an embedding caller or the cmd/pipesim binary needs.
package pipesim

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/procdesc"
	"github.com/sarchlab/pipesim/program"
	"github.com/sarchlab/pipesim/sim"
)

// Run loads procTree into a validated processor, compiles programTree
// against its ISA mapping, and simulates the result, returning the
// accumulated utilization table. log receives load-time warnings (capability
// aliasing, pruned edges and units); a nil log defaults to
// logrus.StandardLogger().
func Run(procTree, programTree config.Tree, log *logrus.Logger) (sim.UtilTable, error) {
	hw, err := procdesc.Load(procTree, log)
	if err != nil {
		return nil, err
	}

	isaTable, err := isa.Load(procTree, isa.Abilities(hw))
	if err != nil {
		return nil, err
	}

	records := program.ParseRecords(programTree)

	compiled, err := program.Compile(records, isaTable)
	if err != nil {
		return nil, err
	}

	return sim.Simulate(compiled, hw)
}
