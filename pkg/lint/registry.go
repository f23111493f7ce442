package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry indexes rules by ID, by name, and through aliases.
type Registry struct {
	mu        sync.RWMutex
	idIndex   map[string]Rule
	nameIndex map[string]Rule
	aliasTo   map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		idIndex:   make(map[string]Rule),
		nameIndex: make(map[string]Rule),
		aliasTo:   make(map[string]string),
	}
}

// Register adds a rule, replacing any earlier rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idIndex[rule.ID()] = rule
	r.nameIndex[rule.Name()] = rule
}

// RegisterAlias maps an extra code onto a canonical rule ID. pycodestyle
// splits some checks across several codes that one rule covers here,
// "W293" landing on "W291" for instance.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliasTo[alias] = ruleID
}

// lookup finds a rule by ID then by name. Callers hold mu.
func (r *Registry) lookup(key string) (Rule, bool) {
	if rule, ok := r.idIndex[key]; ok {
		return rule, true
	}
	rule, ok := r.nameIndex[key]
	return rule, ok
}

// Get looks a rule up by ID, then by name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(key)
}

// GetByID looks a rule up by ID alone.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.idIndex[id]
	return rule, ok
}

// GetByName looks a rule up by name alone.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.nameIndex[name]
	return rule, ok
}

// Resolve maps a rule ID, name, or alias onto the canonical ID and its
// rule.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.lookup(key)
	if !ok {
		if target, aliased := r.aliasTo[key]; aliased {
			rule, ok = r.idIndex[target]
		}
	}
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.idIndex))
	for _, rule := range r.idIndex {
		rules = append(rules, rule)
	}

	slices.SortFunc(rules, func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return rules
}

// IDs returns the registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.idIndex))
	for id := range r.idIndex {
		ids = append(ids, id)
	}

	slices.Sort(ids)
	return ids
}

// DefaultRegistry receives the built-in rules, which register
// themselves during init.
//
//nolint:gochecknoglobals // rules self-register here from package init
var DefaultRegistry = NewRegistry()
