package compiler

import (
	"sync"

	"nlpbridge/internal/model"
)

// NativeEntityResolver answers whether an abstract entity type has a native
// equivalent in the target engine, and owns the demotion of unsupported
// base types to free-text catch-alls. Descriptors are shared by reference
// across parameters and intents, so every access to a descriptor's kind
// during compilation goes through the resolver: kind reads and the demotion
// write share one lock, which keeps concurrent per-intent compilation free
// of races on the shared instances.
type NativeEntityResolver interface {
	// Resolve returns the engine-native type name for the descriptor. ok is
	// false when the engine has no native equivalent.
	Resolve(entity *model.EntityTypeDescriptor) (name string, ok bool)

	// EffectiveKind reads the descriptor's current kind under the same lock
	// that guards demotion.
	EffectiveKind(entity *model.EntityTypeDescriptor) model.EntityKind

	// DemoteToAny marks the descriptor as a free-text catch-all. The
	// demotion is visible to every parameter and intent holding the same
	// instance. Demoting an Any descriptor is a no-op, which keeps repeated
	// compilation idempotent.
	DemoteToAny(entity *model.EntityTypeDescriptor)
}

// TableResolver resolves entity types against a static name table. Kind
// reads and demotions funnel through one lock so that intents compiled
// concurrently never race on a shared descriptor.
type TableResolver struct {
	mu    sync.Mutex
	table map[string]string
}

// DefaultNativeMappings returns the entity types the engine matches
// natively.
func DefaultNativeMappings() map[string]string {
	return map[string]string{
		"age":          "age",
		"currency":     "currency",
		"date":         "date",
		"dimension":    "dimension",
		"email":        "email",
		"number":       "number",
		"ordinal":      "ordinal",
		"percentage":   "percentage",
		"phone-number": "phonenumber",
		"url":          "url",
	}
}

// NewTableResolver builds a resolver over the given mapping table. The table
// is copied; later mutation of the argument has no effect.
func NewTableResolver(table map[string]string) *TableResolver {
	copied := make(map[string]string, len(table))
	for k, v := range table {
		copied[k] = v
	}
	return &TableResolver{table: copied}
}

// Resolve implements NativeEntityResolver. Any-kind descriptors never have a
// native name: they are matched through synthesized entities instead.
func (r *TableResolver) Resolve(entity *model.EntityTypeDescriptor) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entity.Kind == model.EntityAny {
		return "", false
	}
	name, ok := r.table[entity.Name]
	return name, ok
}

// EffectiveKind implements NativeEntityResolver.
func (r *TableResolver) EffectiveKind(entity *model.EntityTypeDescriptor) model.EntityKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return entity.Kind
}

// DemoteToAny implements NativeEntityResolver.
func (r *TableResolver) DemoteToAny(entity *model.EntityTypeDescriptor) {
	r.mu.Lock()
	entity.Kind = model.EntityAny
	r.mu.Unlock()
}
