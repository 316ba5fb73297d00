package keymap

import (
	"strings"

	"github.com/samber/lo"
)

// Resolver maps key strings to actions.
type Resolver struct {
	bindings map[string]Action   // key -> action
	byAction map[Action][]string // action -> keys (for help)
	all      []Binding
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		byAction: make(map[Action][]string),
		all:      bindings,
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.bindings[key] = b.Action
		}
		r.byAction[b.Action] = lo.Uniq(append(r.byAction[b.Action], b.Keys...))
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Help renders a one-line summary of a context, e.g. "space play/pause · q quit".
// Only the first key of each binding is shown.
func (r *Resolver) Help(context string) string {
	parts := lo.FilterMap(r.all, func(b Binding, _ int) (string, bool) {
		if b.Context != context || len(b.Keys) == 0 {
			return "", false
		}
		key := b.Keys[0]
		if key == " " {
			key = "space"
		}
		return key + " " + strings.ToLower(b.Description), true
	})
	return strings.Join(parts, " · ")
}
