package procdesc

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/pipesim/config"
	"github.com/sarchlab/pipesim/container"
	"github.com/sarchlab/pipesim/icase"
	"github.com/sarchlab/pipesim/procerrors"
)

// capRegistry canonicalizes capability spellings across the whole
// processor: the first spelling seen for a case-folded form becomes the
// reporting form every later occurrence is rewritten to.
type capRegistry struct {
	set     *container.IndexedSet[string, icase.String]
	log     *logrus.Logger
}

func newCapRegistry(log *logrus.Logger) *capRegistry {
	return &capRegistry{
		set: container.NewIndexedSet[string, icase.String](icase.String.Canonical),
		log: log,
	}
}

// canon resolves raw to the registry's canonical spelling, warning and
// rewriting whenever raw's case differs from the first spelling seen.
func (r *capRegistry) canon(raw string) icase.String {
	candidate := icase.New(raw)
	canonical := container.GetOrAdd(r.set, candidate)

	if canonical.Original() != candidate.Original() {
		r.log.WithFields(logrus.Fields{
			"canonical": canonical.Original(),
			"alias":     candidate.Original(),
		}).Warn("capability spelling normalized to first-seen form")
	}

	return canonical
}

// parseUnits ingests the "units" sequence of a processor description tree:
// validates widths, deduplicates unit names case-insensitively, and
// canonicalizes capability spellings across the whole unit set.
func parseUnits(tree config.Tree, log *logrus.Logger) (*graph, error) {
	g := newGraph()
	caps := newCapRegistry(log)
	names := container.NewIndexedSet[string, icase.String](icase.String.Canonical)

	for _, raw := range config.Seq(tree["units"]) {
		rec := config.AsTree(raw)

		n, err := parseUnitRecord(rec, caps)
		if err != nil {
			return nil, err
		}

		if existing, dup := names.Get(n.name); dup {
			return nil, &procerrors.DupElemError{
				OldElem: existing.Original(),
				NewElem: n.name.Original(),
			}
		}

		names.Add(n.name)
		g.add(n)
	}

	return g, nil
}

func parseUnitRecord(rec config.Tree, caps *capRegistry) (*node, error) {
	name := icase.New(stringField(rec, "name"))
	width := intField(rec, "width")

	if width <= 0 {
		return nil, &procerrors.BadWidthError{Unit: name.Original(), Width: width}
	}

	rawCaps := config.StringSeq(rec["capabilities"])
	capSet := make([]icase.String, 0, len(rawCaps))

	for _, c := range rawCaps {
		capSet = appendUniqueCap(capSet, caps.canon(c))
	}

	rawMem := config.StringSeq(rec["memoryAccess"])
	memSet := make([]icase.String, 0, len(rawMem))

	for _, c := range rawMem {
		memSet = append(memSet, caps.canon(c))
	}

	return &node{
		name:      name,
		width:     width,
		caps:      capSet,
		readLock:  boolField(rec, "readLock"),
		writeLock: boolField(rec, "writeLock"),
		memACL:    memSet,
	}, nil
}

func appendUniqueCap(caps []icase.String, c icase.String) []icase.String {
	for _, own := range caps {
		if own.Equal(c) {
			return caps
		}
	}

	return append(caps, c)
}

func stringField(rec config.Tree, key string) string {
	s, _ := rec[key].(string)
	return s
}

func boolField(rec config.Tree, key string) bool {
	b, _ := rec[key].(bool)
	return b
}

func intField(rec config.Tree, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// parseEdges ingests the "dataPath" sequence: a list of two-element
// sequences naming the units on either end of a directed edge. Unknown
// unit names fail the load; duplicate edges (including case-variant
// duplicates) are deduplicated with a warning.
func parseEdges(tree config.Tree, g *graph, log *logrus.Logger) error {
	seen := make(map[[2]string]bool)

	for _, raw := range config.Seq(tree["dataPath"]) {
		edge := config.StringSeq(raw)

		if len(edge) != 2 {
			return &procerrors.BadEdgeError{Edge: edge}
		}

		a, err := resolveUnit(g, edge[0])
		if err != nil {
			return err
		}

		b, err := resolveUnit(g, edge[1])
		if err != nil {
			return err
		}

		key := [2]string{a, b}
		if seen[key] {
			log.WithFields(logrus.Fields{
				"from": g.nodes[a].name.Original(),
				"to":   g.nodes[b].name.Original(),
			}).Warn("duplicate data-path edge ignored")
			continue
		}

		seen[key] = true
		g.addEdge(a, b)
	}

	return nil
}

func resolveUnit(g *graph, rawName string) (string, error) {
	key := icase.New(rawName).Canonical()

	if _, ok := g.get(key); !ok {
		return "", &procerrors.UndefElemError{Element: rawName}
	}

	return key, nil
}
