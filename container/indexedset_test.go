package container_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/container"
)

var _ = Describe("IndexedSet", func() {
	keyFunc := strings.ToLower

	It("returns not-found for an element never added", func() {
		set := container.NewIndexedSet[string, string](keyFunc)

		_, ok := set.Get("ALU")
		Expect(ok).To(BeFalse())
	})

	It("finds an element added under a different case", func() {
		set := container.NewIndexedSet[string, string](keyFunc)
		set.Add("ALU")

		found, ok := set.Get("alu")
		Expect(ok).To(BeTrue())
		Expect(found).To(Equal("ALU"))
	})

	It("GetOrAdd keeps the first-encountered spelling", func() {
		set := container.NewIndexedSet[string, string](keyFunc)

		first := container.GetOrAdd(set, "ALU")
		second := container.GetOrAdd(set, "alu")

		Expect(first).To(Equal("ALU"))
		Expect(second).To(Equal("ALU"))
		Expect(set.Len()).To(Equal(1))
	})
})
