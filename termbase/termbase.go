// Package termbase holds the in-memory model of a multilingual terminology
// database: concepts keyed by id, each with entry metadata and one term group
// per language.
//
// A TermBase is produced in two phases. A Builder collects concepts as they are
// parsed; Build then computes the synonym capacity of every language in a single
// pass and returns the finished, read-only TermBase.
package termbase

import (
	"sort"
)

// InfoNonTerm marks a forbidden term
const InfoNonTerm = "NonTerm"

// Term is one surface form of a concept in a language
type Term struct {
	Word  string
	Info  string
	Usage string
}

// Forbidden reports whether the term is marked as a term not to be used
func (t Term) Forbidden() bool {
	return t.Info == InfoNonTerm
}

// TermGroup holds the definition and the synonyms of a concept in one language
type TermGroup struct {
	Definition string
	Terms      []Term
}

// Concept is one termbase entry
type Concept struct {
	ID       int
	Creator  string
	Created  string
	Modifier string
	Modified string

	metaKeys []string
	meta     map[string]string
	groups   map[string]*TermGroup
}

// NewConcept creates an empty concept
func NewConcept(id int) *Concept {
	return &Concept{
		ID:     id,
		meta:   make(map[string]string),
		groups: make(map[string]*TermGroup),
	}
}

// SetMeta records a metadata value, keeping first-seen key order
func (c *Concept) SetMeta(key, value string) {
	if _, ok := c.meta[key]; !ok {
		c.metaKeys = append(c.metaKeys, key)
	}
	c.meta[key] = value
}

// Meta returns the value for key, empty if absent
func (c *Concept) Meta(key string) string {
	return c.meta[key]
}

// MetaKeys returns metadata keys in first-seen order
func (c *Concept) MetaKeys() []string {
	return append([]string(nil), c.metaKeys...)
}

// Group returns the term group for lang, creating it on first use.
// A language repeated within one entry merges into the same group.
func (c *Concept) Group(lang string) *TermGroup {
	g, ok := c.groups[lang]
	if !ok {
		g = &TermGroup{}
		c.groups[lang] = g
	}
	return g
}

// LookupGroup returns the term group for lang without creating it
func (c *Concept) LookupGroup(lang string) (*TermGroup, bool) {
	g, ok := c.groups[lang]
	return g, ok
}

// Languages returns the concept's languages in sorted order
func (c *Concept) Languages() []string {
	langs := make([]string, 0, len(c.groups))
	for lang := range c.groups {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// TermBase is a finished, read-only set of concepts
type TermBase struct {
	concepts []*Concept
	capacity map[string]int
	metaKeys []string
}

// Concepts returns concepts in ascending id order
func (tb *TermBase) Concepts() []*Concept {
	return tb.concepts
}

// Len returns the number of concepts
func (tb *TermBase) Len() int {
	return len(tb.concepts)
}

// Languages returns every language that appears in any concept, sorted
func (tb *TermBase) Languages() []string {
	langs := make([]string, 0, len(tb.capacity))
	for lang := range tb.capacity {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Capacity returns the maximum number of terms any concept holds for lang
func (tb *TermBase) Capacity(lang string) int {
	return tb.capacity[lang]
}

// MetaKeys returns the metadata keys of all concepts in first-seen order
func (tb *TermBase) MetaKeys() []string {
	return tb.metaKeys
}

// Builder accumulates concepts before the capacity pass
type Builder struct {
	concepts map[int]*Concept
	order    []int
	metaKeys []string
	metaSeen map[string]bool
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		concepts: make(map[int]*Concept),
		metaSeen: make(map[string]bool),
	}
}

// Add stores a fully parsed concept and registers its metadata keys.
// Adding a second concept with the same id replaces the first.
func (b *Builder) Add(c *Concept) {
	if _, exists := b.concepts[c.ID]; !exists {
		b.order = append(b.order, c.ID)
	}
	b.concepts[c.ID] = c
	for _, key := range c.metaKeys {
		if !b.metaSeen[key] {
			b.metaSeen[key] = true
			b.metaKeys = append(b.metaKeys, key)
		}
	}
}

// Len returns the number of concepts added so far
func (b *Builder) Len() int {
	return len(b.concepts)
}

// Build computes per-language capacities and returns the finished TermBase.
// The builder may keep being used afterwards; the TermBase does not change.
func (b *Builder) Build() *TermBase {
	ids := append([]int(nil), b.order...)
	sort.Ints(ids)

	tb := &TermBase{
		concepts: make([]*Concept, 0, len(ids)),
		capacity: make(map[string]int),
		metaKeys: append([]string(nil), b.metaKeys...),
	}
	for _, id := range ids {
		c := b.concepts[id]
		tb.concepts = append(tb.concepts, c)
		for lang, g := range c.groups {
			if cur, ok := tb.capacity[lang]; !ok || len(g.Terms) > cur {
				tb.capacity[lang] = len(g.Terms)
			}
		}
	}
	return tb
}
