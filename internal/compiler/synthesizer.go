package compiler

import "nlpbridge/internal/model"

// anyEntitySet accumulates synthesized catch-all entities while compiling a
// single intent. Entries are keyed by parameter name; the emitted entity
// name carries the intent-name prefix, so no cross-intent merge can occur.
type anyEntitySet struct {
	intentName string
	entities   map[string]*model.SynthesizedEntity
	order      []string
}

func newAnyEntitySet(intentName string) *anyEntitySet {
	return &anyEntitySet{
		intentName: intentName,
		entities:   map[string]*model.SynthesizedEntity{},
	}
}

// accumulate folds the boundary tokens of one degraded parameter occurrence
// into the set and returns the synthesized entity name.
//
// No boundary on either side means the fragment spans the whole sentence:
// the entry is replaced by a regex matching anything. One-or-more, not
// zero-or-more: the engine recurses without terminating on a zero-width
// match. A single-sided occurrence appends to the matching stop list; an
// occurrence with both sides appends to the between record, creating it
// fresh if the entry was single-sided so far. Nothing is deduplicated.
func (s *anyEntitySet) accumulate(paramName, left, right string) string {
	name := s.intentName + paramName + "Any"
	if left == "" && right == "" {
		s.put(paramName, &model.SynthesizedEntity{
			Name:     name,
			Kind:     model.SynthRegex,
			Patterns: []string{"/.+/"},
		})
		return name
	}

	entity := s.entities[paramName]
	if entity == nil || entity.Kind != model.SynthTrim {
		entity = &model.SynthesizedEntity{Name: name, Kind: model.SynthTrim}
		s.put(paramName, entity)
	}
	switch {
	case left != "" && right != "":
		if entity.Between == nil {
			entity.Between = &model.BetweenCondition{}
		}
		entity.Between.Left = append(entity.Between.Left, left)
		entity.Between.Right = append(entity.Between.Right, right)
	case left != "":
		entity.LeftStops = append(entity.LeftStops, left)
	default:
		entity.RightStops = append(entity.RightStops, right)
	}
	return name
}

func (s *anyEntitySet) put(paramName string, entity *model.SynthesizedEntity) {
	if _, seen := s.entities[paramName]; !seen {
		s.order = append(s.order, paramName)
	}
	s.entities[paramName] = entity
}

// list returns the accumulated entities in first-seen parameter order, so
// repeated compilation of the same intent yields identical output.
func (s *anyEntitySet) list() []model.SynthesizedEntity {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]model.SynthesizedEntity, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.entities[key])
	}
	return out
}
