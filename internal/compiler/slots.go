package compiler

import (
	"fmt"

	"nlpbridge/internal/model"
)

// entityUseCount reports how many parameters of the intent reference the
// given entity type.
func entityUseCount(intent *model.IntentSpec, entity *model.EntityTypeDescriptor) int {
	n := 0
	for _, p := range intent.Parameters {
		if p.Entity != nil && p.Entity.Name == entity.Name {
			n++
		}
	}
	return n
}

// entityTypeIndex computes the positional suffix for a repeated entity type:
// parameters are walked in declaration order, a per-type counter incremented
// on each use of the type, and the counter value at the first parameter
// whose primary fragment equals the given one is returned. The first use of
// a type therefore gets index 0.
func entityTypeIndex(intent *model.IntentSpec, entity *model.EntityTypeDescriptor, fragment string) int {
	idx := 0
	for _, p := range intent.Parameters {
		if p.PrimaryFragment() == fragment {
			return idx
		}
		if p.Entity != nil && p.Entity.Name == entity.Name {
			idx++
		}
	}
	return idx
}

// assignSlot computes the slot id for a natively mapped parameter, appending
// a positional suffix when its entity type is shared by more than one
// parameter of the intent. Synthesized any-entity slots never come through
// here and are never suffixed.
func assignSlot(intent *model.IntentSpec, param *model.ParameterSpec, native string) string {
	if entityUseCount(intent, param.Entity) > 1 {
		return fmt.Sprintf("%s_%d", native, entityTypeIndex(intent, param.Entity, param.PrimaryFragment()))
	}
	return native
}
