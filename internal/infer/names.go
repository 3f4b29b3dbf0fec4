package infer

import "strconv"

// nameGenerator collects column names in first-seen order and hands out
// unique names for synthesized columns.
type nameGenerator struct {
	names []string
	used  map[string]bool
}

func newNameGenerator() *nameGenerator {
	return &nameGenerator{used: map[string]bool{}}
}

// add registers name unless it is already present.
func (g *nameGenerator) add(name string) {
	if g.used[name] {
		return
	}
	g.used[name] = true
	g.names = append(g.names, name)
}

// addUnique registers base, or base1, base2 and so on when taken, and returns
// the registered name.
func (g *nameGenerator) addUnique(base string) string {
	name := base
	for k := 1; g.used[name]; k++ {
		name = base + strconv.Itoa(k)
	}
	g.add(name)
	return name
}

func (g *nameGenerator) list() []string { return g.names }
