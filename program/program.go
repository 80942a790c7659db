// Package program implements the program compiler (component H): resolving
// each source instruction's mnemonic into its capability category through
// the ISA mapping, yielding the abstract HwInstruction sequence the
// simulator core drives.
package program

import (
	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/procerrors"
)

// SourceRecord is one assembler-produced instruction, before its mnemonic
// has been resolved to a capability category.
type SourceRecord struct {
	Sources     []string
	Destination string
	Mnemonic    string
}

// HwInstruction is an abstract instruction ready for simulation: dataflow
// only, no computed values. Its position in a program slice is its program
// index.
type HwInstruction struct {
	Sources     []string
	Destination string
	Category    icase.String
}

// ParseRecords reads a program's flat instruction sequence out of a
// configuration tree: a top-level "program" key holding a sequence of
// records with "sources", "destination", and "category" (the mnemonic,
// pre-ISA-resolution) fields.
func ParseRecords(tree config.Tree) []SourceRecord {
	raw := config.Seq(tree["program"])
	if raw == nil {
		raw = config.Seq(tree)
	}

	out := make([]SourceRecord, 0, len(raw))

	for _, r := range raw {
		rec := config.AsTree(r)

		dest, _ := rec["destination"].(string)
		mnemonic, _ := rec["category"].(string)

		out = append(out, SourceRecord{
			Sources:     config.StringSeq(rec["sources"]),
			Destination: dest,
			Mnemonic:    mnemonic,
		})
	}

	return out
}

// Compile resolves every record's mnemonic to a capability category through
// table, failing with UndefElemError on the first mnemonic the ISA mapping
// doesn't define.
func Compile(records []SourceRecord, table *isa.ISA) ([]HwInstruction, error) {
	out := make([]HwInstruction, 0, len(records))

	for _, r := range records {
		category, ok := table.Category(r.Mnemonic)
		if !ok {
			return nil, &procerrors.UndefElemError{Element: r.Mnemonic}
		}

		out = append(out, HwInstruction{
			Sources:     r.Sources,
			Destination: r.Destination,
			Category:    category,
		})
	}

	return out, nil
}
