package regaccess

// Builder assembles a Queue's planned group structure instruction by
// instruction, in program order. It implements the merge-adjacent-reads
// rule: appending a read extends the trailing group if that group is also
// a read; appending a write always starts a new singleton group.
type Builder struct {
	groups []group
}

// Append records a planned access by instr to the register this builder is
// assembling a queue for.
func (b *Builder) Append(kind AccessType, instr int) {
	if kind == Read && len(b.groups) > 0 {
		last := &b.groups[len(b.groups)-1]
		if last.kind == Read {
			last.instrs = append(last.instrs, instr)
			return
		}
	}

	b.groups = append(b.groups, group{kind: kind, instrs: []int{instr}})
}

// Build finalizes the queue. The builder may continue to be used
// afterwards; Build takes a fresh copy of the accumulated groups.
func (b *Builder) Build() *Queue {
	groups := make([]group, len(b.groups))

	for i, g := range b.groups {
		instrs := make([]int, len(g.instrs))
		copy(instrs, g.instrs)
		groups[i] = group{kind: g.kind, instrs: instrs}
	}

	return &Queue{groups: groups}
}
