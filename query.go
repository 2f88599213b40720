package depot

import (
	"slices"
	"strings"
)

// Query is an immutable conjunction of component names. An entity matches when
// it holds every term and none of the excluded components. A Query may be
// built into any number of iterators.
type Query struct {
	terms   []string
	without []string
}

func newQuery(terms ...string) Query {
	return Query{terms: cloneNames(terms)}
}

// QueryOf builds a query whose terms are the given descriptors, in order.
func QueryOf(components ...ComponentType) Query {
	return Query{terms: namesOf(components)}
}

// Without returns a copy of q that also rejects entities holding any of names.
// Excluded components are not addressable through QueryIterator.Get.
func (q Query) Without(names ...string) Query {
	return Query{
		terms:   q.terms,
		without: append(slices.Clip(q.without), cloneNames(names)...),
	}
}

// WithoutComponents is Without for descriptors.
func (q Query) WithoutComponents(components ...ComponentType) Query {
	return q.Without(namesOf(components)...)
}

// Terms returns the query's component names in term order.
func (q Query) Terms() []string {
	return slices.Clone(q.terms)
}

func (q Query) Excluded() []string {
	return slices.Clone(q.without)
}

func (q Query) Len() int {
	return len(q.terms)
}

func (q Query) String() string {
	parts := slices.Clone(q.terms)
	for _, name := range q.without {
		parts = append(parts, "!"+name)
	}
	return "[" + strings.Join(parts, " & ") + "]"
}

func cloneNames(names []string) []string {
	cloned := make([]string, len(names))
	for i, name := range names {
		cloned[i] = strings.Clone(name)
	}
	return cloned
}

func namesOf(components []ComponentType) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name()
	}
	return names
}
