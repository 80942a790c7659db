// Package isa implements the instruction-set loader (component G):
// resolving instruction mnemonics to the processor's capability categories,
// case-normalized against the capabilities the processor actually declares.
package isa

import (
	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procdesc"
	"github.com/sarchlab/pipesim/procerrors"
)

// ISA maps a mnemonic (case-insensitive) to the capability category it
// belongs to.
type ISA struct {
	byMnemonic map[string]icase.String
}

// Category resolves a mnemonic to its capability category.
func (i *ISA) Category(mnemonic string) (icase.String, bool) {
	c, ok := i.byMnemonic[icase.New(mnemonic).Canonical()]
	return c, ok
}

// Abilities collects every capability a processor description's units
// declare, keyed by canonical form, so the ISA loader can normalize a
// category's reporting spelling against the processor rather than whatever
// spelling the ISA mapping happened to use.
func Abilities(proc *procdesc.ProcessorDesc) map[string]icase.String {
	out := make(map[string]icase.String)

	add := func(u procdesc.UnitModel) {
		for _, c := range u.Capabilities {
			if _, ok := out[c.Canonical()]; !ok {
				out[c.Canonical()] = c
			}
		}
	}

	for _, u := range proc.InPorts {
		add(u)
	}

	for _, u := range proc.InOutPorts {
		add(u)
	}

	for _, fu := range proc.OutPorts {
		add(fu.Model)
	}

	for _, fu := range proc.InternalUnits {
		add(fu.Model)
	}

	return out
}

// Load parses the top-level "ISA" mapping (mnemonic -> capability) from a
// configuration tree, normalizing every category's spelling to whatever
// form the processor itself uses for that capability. A category naming a
// capability the processor never declares fails with UndefElemError.
func Load(tree config.Tree, abilities map[string]icase.String) (*ISA, error) {
	byMnemonic := make(map[string]icase.String)

	raw := config.AsTree(tree["ISA"])
	if raw == nil {
		raw = tree
	}

	for mnemonic, rawCategory := range raw {
		categoryStr, _ := rawCategory.(string)
		categoryKey := icase.New(categoryStr).Canonical()

		canonical, ok := abilities[categoryKey]
		if !ok {
			return nil, &procerrors.UndefElemError{Element: categoryStr}
		}

		byMnemonic[icase.New(mnemonic).Canonical()] = canonical
	}

	return &ISA{byMnemonic: byMnemonic}, nil
}
