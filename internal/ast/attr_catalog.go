package ast

import (
	"slices"
	"strings"

	"karst/internal/source"
)

// AttrTargetMask describes the set of syntactic positions an attribute may
// be applied to.
type AttrTargetMask uint16

const (
	AttrTargetNone  AttrTargetMask = 0
	AttrTargetStmt  AttrTargetMask = 1 << iota // statements
	AttrTargetFn                               // function declarations
	AttrTargetType                             // type declarations
	AttrTargetField                            // struct fields
	AttrTargetLet                              // let and const declarations
)

// AttrSpec describes a known attribute and where it may appear.
type AttrSpec struct {
	Name    string
	Targets AttrTargetMask
}

// Allows reports whether the attribute can be applied to the provided target bit.
func (spec AttrSpec) Allows(target AttrTargetMask) bool {
	return spec.Targets&target != 0
}

// The attribute set is fixed at grammar-definition time; there is no open
// extension point. Statement processing dispatches on the canonical Name.
var attrRegistry = map[string]AttrSpec{
	"fallthrough": {Name: "fallthrough", Targets: AttrTargetStmt},
	"loop":        {Name: "loop", Targets: AttrTargetStmt},

	"pure":       {Name: "pure", Targets: AttrTargetFn},
	"inline":     {Name: "inline", Targets: AttrTargetFn},
	"deprecated": {Name: "deprecated", Targets: AttrTargetFn | AttrTargetType | AttrTargetLet},
	"packed":     {Name: "packed", Targets: AttrTargetType | AttrTargetField},
	"align":      {Name: "align", Targets: AttrTargetType | AttrTargetField},
	"sealed":     {Name: "sealed", Targets: AttrTargetType},
	"hidden":     {Name: "hidden", Targets: AttrTargetFn | AttrTargetType | AttrTargetLet},
}

// LookupAttr returns metadata for the given attribute name (case-insensitive).
func LookupAttr(name string) (AttrSpec, bool) {
	if name == "" {
		return AttrSpec{}, false
	}
	spec, ok := attrRegistry[strings.ToLower(name)]
	return spec, ok
}

// LookupAttrID resolves attribute metadata by string ID using the provided interner.
func LookupAttrID(interner *source.Interner, id source.StringID) (AttrSpec, bool) {
	if interner == nil || id == source.NoStringID {
		return AttrSpec{}, false
	}
	name, ok := interner.Lookup(id)
	if !ok {
		return AttrSpec{}, false
	}
	return LookupAttr(name)
}

// AttrSpecs returns a stable slice of all registered attribute specifications
// sorted by name.
func AttrSpecs() []AttrSpec {
	names := make([]string, 0, len(attrRegistry))
	for name := range attrRegistry {
		names = append(names, name)
	}
	slices.Sort(names)
	result := make([]AttrSpec, 0, len(names))
	for _, name := range names {
		result = append(result, attrRegistry[name])
	}
	return result
}
