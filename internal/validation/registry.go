package validation

import (
	"sort"
	"sync"

	"github.com/ginjaninja78/AGS-data-validator/internal/model"
	"github.com/ginjaninja78/AGS-data-validator/internal/types"
)

// Scope says when a rule runs.
type Scope int

const (
	// ScopeRow rules run inline while the file is decoded.
	ScopeRow Scope = iota
	// ScopeFile rules run once over the finished Container.
	ScopeFile
	// ScopeGroup rules run once per GROUP.
	ScopeGroup
)

func (s Scope) String() string {
	switch s {
	case ScopeRow:
		return "row"
	case ScopeFile:
		return "file"
	case ScopeGroup:
		return "group"
	default:
		return "unknown"
	}
}

// FileCheck inspects the whole file.
type FileCheck func(ctx *Context)

// GroupCheck inspects one GROUP.
type GroupCheck func(ctx *Context, g *model.Group)

// RuleDef describes one registered rule.
type RuleDef struct {
	ID          types.RuleID
	Name        string // e.g. "key-fields"
	Scope       Scope
	Description string

	// Exactly one of these is set for file and group rules. Row rules are
	// wired into the decoder by the engine and leave both nil.
	File  FileCheck
	Group GroupCheck
}

// registry holds every rule, keyed by ID.
var registry = struct {
	mu    sync.RWMutex
	rules map[types.RuleID]RuleDef
}{rules: make(map[types.RuleID]RuleDef)}

// Register adds a rule. Call it from init() in the rule's file.
func Register(rule RuleDef) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.rules[rule.ID] = rule
}

// Rules returns every registered rule ordered by ID.
func Rules() []RuleDef {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	out := make([]RuleDef, 0, len(registry.rules))
	for _, r := range registry.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RulesByScope returns the rules of one scope ordered by ID.
func RulesByScope(scope Scope) []RuleDef {
	var out []RuleDef
	for _, r := range Rules() {
		if r.Scope == scope {
			out = append(out, r)
		}
	}
	return out
}

// Lookup returns the rule with the given ID.
func Lookup(id types.RuleID) (RuleDef, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	r, ok := registry.rules[id]
	return r, ok
}
