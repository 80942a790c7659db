package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/config"
)

var _ = Describe("Parse", func() {
	It("decodes a nested YAML mapping into a Tree", func() {
		raw := []byte(`
microarch:
  units:
    - name: fullSys
      width: 1
      capabilities: [ALU]
`)

		tree, err := config.Parse(raw)
		Expect(err).NotTo(HaveOccurred())

		microarch := config.AsTree(tree["microarch"])
		Expect(microarch).NotTo(BeNil())

		units := config.Seq(microarch["units"])
		Expect(units).To(HaveLen(1))

		unit := config.AsTree(units[0])
		Expect(unit["name"]).To(Equal("fullSys"))
		Expect(unit["width"]).To(Equal(1))
	})

	It("rejects malformed YAML", func() {
		_, err := config.Parse([]byte("units: [unterminated"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Seq", func() {
	It("treats a missing key as an empty sequence", func() {
		Expect(config.Seq(nil)).To(BeEmpty())
	})
})

var _ = Describe("StringSeq", func() {
	It("filters non-string elements out of a []any", func() {
		Expect(config.StringSeq([]any{"R1", 2, "R2"})).To(Equal([]string{"R1", "R2"}))
	})
})
