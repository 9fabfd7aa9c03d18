package model

// EntityKind classifies an entity type descriptor.
type EntityKind int

const (
	// EntityBase is a built-in abstract type (date, number, ...) that may or
	// may not have a native equivalent in the target engine.
	EntityBase EntityKind = iota
	// EntityCustom is a user-defined entity trained into the engine under
	// its own name.
	EntityCustom
	// EntityAny is a free-text catch-all. Base types are demoted to Any when
	// the engine has no native equivalent.
	EntityAny
)

// String returns the lowercase kind name used in bot definition files.
func (k EntityKind) String() string {
	switch k {
	case EntityBase:
		return "base"
	case EntityCustom:
		return "custom"
	case EntityAny:
		return "any"
	}
	return "unknown"
}

// EntityTypeDescriptor describes an abstract entity type. Descriptors are
// shared by reference: every parameter bound to the same type holds the same
// instance, so demoting a Base type to Any is visible to all of them, across
// intents. Demotion must go through the resolver's DemoteToAny.
type EntityTypeDescriptor struct {
	Name string
	Kind EntityKind
}

// ParameterSpec is a named, typed placeholder inside an intent's training
// sentences. Only TextFragments[0] drives matching: a sentence that contains
// a secondary fragment but not the primary one is compiled without
// annotating this parameter.
type ParameterSpec struct {
	Name          string
	Entity        *EntityTypeDescriptor
	TextFragments []string
}

// PrimaryFragment returns the fragment used for matching, or "" when the
// fragment list is empty.
func (p *ParameterSpec) PrimaryFragment() string {
	if len(p.TextFragments) == 0 {
		return ""
	}
	return p.TextFragments[0]
}

// IntentSpec is one platform-agnostic intent definition as produced by the
// upstream modeling layer. The compiler treats it as immutable, with the
// single documented exception of entity-type demotion.
type IntentSpec struct {
	Name              string
	TrainingSentences []string
	Parameters        []*ParameterSpec
}
