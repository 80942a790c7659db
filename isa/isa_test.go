package isa_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/procerrors"
)

var _ = Describe("Load", func() {
	abilities := map[string]icase.String{
		"alu": icase.New("ALU"),
		"mem": icase.New("MEM"),
	}

	It("resolves a mnemonic to its processor-spelled category", func() {
		tree := config.Tree{"ISA": config.Tree{"add": "alu", "ld": "MEM"}}

		table, err := isa.Load(tree, abilities)
		Expect(err).NotTo(HaveOccurred())

		cat, ok := table.Category("ADD")
		Expect(ok).To(BeTrue())
		Expect(cat.Original()).To(Equal("ALU"))

		cat, ok = table.Category("ld")
		Expect(ok).To(BeTrue())
		Expect(cat.Original()).To(Equal("MEM"))
	})

	It("reports an unresolved mnemonic", func() {
		tree := config.Tree{"ISA": config.Tree{"add": "alu"}}

		table, err := isa.Load(tree, abilities)
		Expect(err).NotTo(HaveOccurred())

		_, ok := table.Category("sub")
		Expect(ok).To(BeFalse())
	})

	It("rejects a category the processor never declares", func() {
		tree := config.Tree{"ISA": config.Tree{"br": "branch"}}

		_, err := isa.Load(tree, abilities)

		var target *procerrors.UndefElemError
		Expect(errors.As(err, &target)).To(BeTrue())
	})
})
