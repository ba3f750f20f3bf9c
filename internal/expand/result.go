package expand

import (
	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// NamedCode is a brand-new named type emitted during the types phase.
type NamedCode struct {
	Name string
	Code code.Code
}

// ShapeSlot identifies which clause of a type's shape a ShapeEdit extends.
type ShapeSlot uint8

const (
	// SlotInterfaces extends the type's implements clause.
	SlotInterfaces ShapeSlot = iota
	// SlotMixins extends the type's with clause.
	SlotMixins
)

func (s ShapeSlot) String() string {
	switch s {
	case SlotInterfaces:
		return "interfaces"
	case SlotMixins:
		return "mixins"
	}
	return "unknown"
}

// ShapeEdit appends entries to one clause of the target type's shape,
// registered under the type's own identifier.
type ShapeEdit struct {
	Slot  ShapeSlot
	Owner decl.Ident
	Parts []code.Code
}

// Placement says where a declarations-phase emission lands.
type Placement uint8

const (
	// PlaceLibrary puts the declaration at the top level of a library.
	PlaceLibrary Placement = iota
	// PlaceType puts the declaration inside a type's member list.
	PlaceType
	// PlaceEnumValues puts the declaration in an enum's value list.
	PlaceEnumValues
)

func (p Placement) String() string {
	switch p {
	case PlaceLibrary:
		return "library"
	case PlaceType:
		return "type"
	case PlaceEnumValues:
		return "enum_values"
	}
	return "unknown"
}

// PlacedCode is one declaration emitted during the declarations phase,
// attributed to the library or type that receives it.
type PlacedCode struct {
	Placement Placement
	Owner     decl.Ident
	Code      code.Code
}

// AugmentSlot identifies which part of a declaration a definitions-phase
// augmentation fills.
type AugmentSlot uint8

const (
	// SlotBody fills or wraps a function-like body.
	SlotBody AugmentSlot = iota
	// SlotInitializerList appends constructor initializer-list entries.
	SlotInitializerList
	// SlotGetter provides a variable's getter body.
	SlotGetter
	// SlotSetter provides a variable's setter body.
	SlotSetter
	// SlotInitializer provides a variable's initializer expression.
	SlotInitializer
	// SlotValue provides an enum value's construction expression.
	SlotValue
)

func (s AugmentSlot) String() string {
	switch s {
	case SlotBody:
		return "body"
	case SlotInitializerList:
		return "initializers"
	case SlotGetter:
		return "getter"
	case SlotSetter:
		return "setter"
	case SlotInitializer:
		return "initializer"
	case SlotValue:
		return "value"
	}
	return "unknown"
}

// Augmentation is one definitions-phase edit to an existing declaration.
// Code carries single-fragment slots; Parts carries initializer lists.
type Augmentation struct {
	Target decl.Ref
	Slot   AugmentSlot
	Code   code.Code
	Parts  []code.Code
}

// Result is the terminal snapshot of one execution: everything the macro
// emitted through its builder, or the failure that stopped it. A Result
// is produced exactly once per call; the builder it was read from does
// not outlive the call.
type Result struct {
	Phase     macro.Phase
	Target    decl.Ref
	MacroName string

	NewTypes       []NamedCode
	TypeShapeEdits []ShapeEdit
	Declarations   []PlacedCode
	Augmentations  []Augmentation

	Diagnostics []diag.Diagnostic
	// Failure preserves a framework-level failure raised beneath the
	// macro. Nil unless the execution was stopped by one.
	Failure *macro.Failure
}

// Failed reports whether the execution produced a failure or any
// error-severity diagnostic.
func (r *Result) Failed() bool {
	if r.Failure != nil {
		return true
	}
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity >= diag.SevError {
			return true
		}
	}
	return false
}

// Empty reports whether the macro emitted nothing at all: no artifacts,
// no diagnostics, no failure.
func (r *Result) Empty() bool {
	return len(r.NewTypes) == 0 &&
		len(r.TypeShapeEdits) == 0 &&
		len(r.Declarations) == 0 &&
		len(r.Augmentations) == 0 &&
		len(r.Diagnostics) == 0 &&
		r.Failure == nil
}

// ArtifactCount returns the number of emitted artifacts, diagnostics
// excluded.
func (r *Result) ArtifactCount() int {
	return len(r.NewTypes) + len(r.TypeShapeEdits) + len(r.Declarations) + len(r.Augmentations)
}
