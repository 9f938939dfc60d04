// Package taxonomy holds the catalogue of named number groupings that the
// analysis engine reports on: the built-in wheel, table and racetrack groups
// plus any user-defined groups.
package taxonomy

import (
	"iter"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/the-wheel-must-spin/internal/common"
	"github.com/Veraticus/the-wheel-must-spin/internal/model"
)

// Registry is the immutable set of built-in groups. Build it once with
// NewRegistry and share the handle.
type Registry struct {
	index    map[string]int
	builtins []model.Group
}

// NewRegistry builds the built-in catalogue.
func NewRegistry() *Registry {
	builtins := buildBuiltins()
	index := make(map[string]int, len(builtins))
	for i, g := range builtins {
		index[nameKey(g.Name)] = i
	}
	return &Registry{builtins: builtins, index: index}
}

// Len returns the number of built-in groups.
func (r *Registry) Len() int {
	return len(r.builtins)
}

// Builtins yields the built-in groups in their fixed order.
func (r *Registry) Builtins() iter.Seq[model.Group] {
	return func(yield func(model.Group) bool) {
		for _, g := range r.builtins {
			if !yield(cloneGroup(g)) {
				return
			}
		}
	}
}

// Lookup finds a built-in group by name, ignoring case.
func (r *Registry) Lookup(name string) (model.Group, bool) {
	i, ok := r.index[nameKey(name)]
	if !ok {
		return model.Group{}, false
	}
	return cloneGroup(r.builtins[i]), true
}

type customEntry struct {
	group model.Group
	seq   uint64
}

// Taxonomy combines the shared registry with a mutable set of custom groups.
// It is not safe for concurrent mutation; build one per request or guard it.
type Taxonomy struct {
	registry *Registry
	custom   map[string]customEntry
	nextSeq  uint64
}

// New creates a taxonomy over registry seeded with previously stored custom
// groups.
func New(registry *Registry, custom ...model.Group) (*Taxonomy, error) {
	t := &Taxonomy{
		registry: registry,
		custom:   make(map[string]customEntry, len(custom)),
	}
	for _, g := range custom {
		if err := t.AddCustom(g); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Registry returns the shared built-in registry.
func (t *Taxonomy) Registry() *Registry {
	return t.registry
}

// AllGroups yields every built-in group followed by the custom groups in
// creation order. The sequence can be ranged over repeatedly.
func (t *Taxonomy) AllGroups() iter.Seq[model.Group] {
	return func(yield func(model.Group) bool) {
		for g := range t.registry.Builtins() {
			if !yield(g) {
				return
			}
		}
		for _, g := range t.Custom() {
			if !yield(g) {
				return
			}
		}
	}
}

// ByCategory yields the groups of a single category.
func (t *Taxonomy) ByCategory(category model.GroupCategory) iter.Seq[model.Group] {
	return func(yield func(model.Group) bool) {
		for g := range t.AllGroups() {
			if g.Category != category {
				continue
			}
			if !yield(g) {
				return
			}
		}
	}
}

// Custom returns the custom groups in creation order.
func (t *Taxonomy) Custom() []model.Group {
	entries := make([]customEntry, 0, len(t.custom))
	for _, e := range t.custom {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b customEntry) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})

	groups := make([]model.Group, len(entries))
	for i, e := range entries {
		groups[i] = cloneGroup(e.group)
	}
	return groups
}

// Lookup finds any group by name, ignoring case.
func (t *Taxonomy) Lookup(name string) (model.Group, bool) {
	if g, ok := t.registry.Lookup(name); ok {
		return g, true
	}
	if e, ok := t.custom[nameKey(name)]; ok {
		return cloneGroup(e.group), true
	}
	return model.Group{}, false
}

// NewCustomGroup validates user input for a custom group without adding it.
// Names collide case-insensitively with every existing group.
func (t *Taxonomy) NewCustomGroup(name, numbersText string) (model.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Group{}, &common.InvalidGroupError{Reason: "name must not be empty"}
	}
	if _, exists := t.Lookup(name); exists {
		return model.Group{}, &common.InvalidGroupError{Name: name, Reason: "name already used by another group"}
	}

	numbers := ParseNumbers(numbersText)
	if len(numbers) == 0 {
		return model.Group{}, &common.InvalidGroupError{Name: name, Reason: "no valid numbers between 0 and 36"}
	}

	return model.NewGroup(name, model.CategoryCustom, numbers)
}

// AddCustom registers a custom group.
func (t *Taxonomy) AddCustom(g model.Group) error {
	if g.Category != model.CategoryCustom {
		return &common.InvalidGroupError{Name: g.Name, Reason: "only custom groups can be added"}
	}
	if err := g.Validate(); err != nil {
		return err
	}
	key := nameKey(g.Name)
	if _, exists := t.Lookup(g.Name); exists {
		return &common.InvalidGroupError{Name: g.Name, Reason: "name already used by another group"}
	}

	t.custom[key] = customEntry{group: cloneGroup(g), seq: t.nextSeq}
	t.nextSeq++
	return nil
}

// RemoveCustom deletes a custom group by name and reports whether it existed.
// Built-in groups cannot be removed.
func (t *Taxonomy) RemoveCustom(name string) bool {
	key := nameKey(name)
	if _, ok := t.custom[key]; !ok {
		return false
	}
	delete(t.custom, key)
	return true
}

// ParseNumbers extracts the valid pockets from free text such as
// "1, 2 3,x,40". Invalid tokens are dropped and the result is sorted and
// unique.
func ParseNumbers(text string) []int {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	numbers := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || !model.ValidNumber(n) {
			continue
		}
		numbers = append(numbers, n)
	}
	return model.NormalizeNumbers(numbers)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func cloneGroup(g model.Group) model.Group {
	g.Numbers = slices.Clone(g.Numbers)
	return g
}
