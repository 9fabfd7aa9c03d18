// Package compiler turns platform-agnostic intent definitions into the flat
// annotated corpus a pattern-matching engine trains on. Parameters bound to
// entity types the engine knows natively become %slot% markers; unsupported
// base types degrade to catch-all entities synthesized from the words around
// each occurrence.
package compiler

import (
	"fmt"
	"strings"

	"nlpbridge/internal/model"
)

// fragmentDelimiter wraps parameter fragments during segmentation. Training
// sentences are natural language and are not expected to contain it.
const fragmentDelimiter = "#"

// PreconditionError reports an intent definition the compiler refuses to
// build. No partial output is produced for the offending intent.
type PreconditionError struct {
	Intent   string
	Sentence string
	Fragment string
	Reason   string
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("intent %q: %s", e.Intent, e.Reason)
	if e.Sentence != "" {
		msg += fmt.Sprintf(" (sentence %q", e.Sentence)
		if e.Fragment != "" {
			msg += fmt.Sprintf(", fragment %q", e.Fragment)
		}
		msg += ")"
	}
	return msg
}

// Compiler compiles intents against a native-entity resolver. It holds no
// per-intent state: each CompileIntent call owns fresh accumulators, so one
// Compiler may serve concurrent compilations.
type Compiler struct {
	resolver NativeEntityResolver
}

func New(resolver NativeEntityResolver) *Compiler {
	return &Compiler{resolver: resolver}
}

// CompileIntent compiles one intent into its annotated examples plus the
// catch-all entities synthesized while degrading unmapped base types. The
// returned entity slice is intent-local; merging it into a batch-wide
// collection is the caller's job and must be synchronized if compilations
// run concurrently.
//
// A sentence that does not contain a parameter's primary fragment is passed
// through without annotating that parameter; that is a tolerance, not an
// error. Structural defects (missing names, missing entity references,
// empty fragment lists) abort the whole intent with a PreconditionError.
func (c *Compiler) CompileIntent(intent *model.IntentSpec) (*model.CompiledIntent, []model.SynthesizedEntity, error) {
	if intent == nil || intent.Name == "" {
		return nil, nil, &PreconditionError{Reason: "missing intent name"}
	}

	compiled := &model.CompiledIntent{
		Name:           intent.Name,
		ParameterSlots: map[string]string{},
	}
	if len(intent.Parameters) == 0 {
		compiled.Examples = append([]string(nil), intent.TrainingSentences...)
		return compiled, nil, nil
	}

	anySet := newAnyEntitySet(intent.Name)
	for _, sentence := range intent.TrainingSentences {
		example, err := c.compileSentence(intent, sentence, compiled, anySet)
		if err != nil {
			return nil, nil, err
		}
		compiled.Examples = append(compiled.Examples, example)
	}
	return compiled, anySet.list(), nil
}

// compileSentence wraps every primary fragment occurring in the sentence
// with the delimiter, splits on it, and reassembles the segments: parameter
// segments become %slot% markers, everything else is copied verbatim.
func (c *Compiler) compileSentence(intent *model.IntentSpec, sentence string, compiled *model.CompiledIntent, anySet *anyEntitySet) (string, error) {
	prepared := sentence
	for _, p := range intent.Parameters {
		fragment := p.PrimaryFragment()
		if fragment == "" {
			return "", &PreconditionError{
				Intent:   intent.Name,
				Sentence: sentence,
				Reason:   fmt.Sprintf("parameter %q has no text fragments", p.Name),
			}
		}
		if strings.Contains(prepared, fragment) {
			prepared = strings.ReplaceAll(prepared, fragment, fragmentDelimiter+fragment+fragmentDelimiter)
		}
	}

	var example strings.Builder
	for _, segment := range strings.Split(prepared, fragmentDelimiter) {
		param := matchParameter(intent, segment)
		if param == nil {
			example.WriteString(segment)
			continue
		}
		slotID, err := c.resolveSlot(intent, param, sentence, anySet)
		if err != nil {
			return "", err
		}
		example.WriteString("%")
		example.WriteString(slotID)
		example.WriteString("%")
		if _, seen := compiled.ParameterSlots[param.Name]; !seen {
			compiled.ParameterSlots[param.Name] = slotID
		}
	}
	return example.String(), nil
}

// matchParameter returns the first declared parameter whose primary fragment
// equals the segment, or nil for literal text.
func matchParameter(intent *model.IntentSpec, segment string) *model.ParameterSpec {
	for _, p := range intent.Parameters {
		if len(p.TextFragments) > 0 && p.TextFragments[0] == segment {
			return p
		}
	}
	return nil
}

// resolveSlot runs the degradation pipeline for one parameter occurrence:
// resolve the entity type, demote an unmapped base type to Any, synthesize
// boundary or regex entities for Any types, and suffix repeated native
// types. Boundary extraction runs against the original unwrapped sentence.
func (c *Compiler) resolveSlot(intent *model.IntentSpec, param *model.ParameterSpec, sentence string, anySet *anyEntitySet) (string, error) {
	fragment := param.PrimaryFragment()
	if param.Name == "" {
		return "", &PreconditionError{
			Intent:   intent.Name,
			Sentence: sentence,
			Fragment: fragment,
			Reason:   "parameter has no name",
		}
	}
	if param.Entity == nil {
		return "", &PreconditionError{
			Intent:   intent.Name,
			Sentence: sentence,
			Fragment: fragment,
			Reason:   fmt.Sprintf("parameter %q has no entity reference", param.Name),
		}
	}

	// The descriptor is shared across concurrently compiled intents; its
	// kind is only read through the resolver, under the lock that guards
	// demotion.
	native, ok := c.resolver.Resolve(param.Entity)
	if !ok && c.resolver.EffectiveKind(param.Entity) == model.EntityBase {
		c.resolver.DemoteToAny(param.Entity)
	}

	var slotID string
	if c.resolver.EffectiveKind(param.Entity) == model.EntityAny {
		left, right := extractBoundaries(sentence, fragment)
		slotID = anySet.accumulate(param.Name, left, right)
	} else {
		if !ok {
			// Custom entities are trained into the engine under their own
			// name; there is nothing to degrade.
			native = param.Entity.Name
		}
		slotID = assignSlot(intent, param, native)
	}
	if strings.Contains(slotID, "%") {
		return "", &PreconditionError{
			Intent:   intent.Name,
			Sentence: sentence,
			Fragment: fragment,
			Reason:   fmt.Sprintf("slot id %q contains the marker delimiter", slotID),
		}
	}
	return slotID, nil
}
