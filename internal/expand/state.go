package expand

import (
	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
	"loom/internal/macro"
)

// state is the single accumulator behind every builder variant of one
// execution. Child builders handed out during the definitions phase share
// their parent's state, so a call still yields exactly one Result.
type state struct {
	phase     macro.Phase
	target    decl.Ref
	macroName string

	newTypes   []NamedCode
	shapeEdits []ShapeEdit
	decls      []PlacedCode
	augs       []Augmentation

	diags   []diag.Diagnostic
	failure *macro.Failure
}

func newState(phase macro.Phase, target decl.Decl, m macro.Macro) *state {
	return &state{
		phase:     phase,
		target:    target.Ref(),
		macroName: macro.Name(m),
	}
}

func (st *state) report(d diag.Diagnostic) {
	st.diags = append(st.diags, d)
}

func (st *state) declareType(name string, c code.Code) {
	st.newTypes = append(st.newTypes, NamedCode{Name: name, Code: c})
}

func (st *state) appendShape(slot ShapeSlot, owner decl.Ident, parts []code.Code) {
	if len(parts) == 0 {
		return
	}
	st.shapeEdits = append(st.shapeEdits, ShapeEdit{Slot: slot, Owner: owner, Parts: parts})
}

func (st *state) place(p Placement, owner decl.Ident, c code.Code) {
	st.decls = append(st.decls, PlacedCode{Placement: p, Owner: owner, Code: c})
}

func (st *state) augment(target decl.Ref, slot AugmentSlot, c code.Code) {
	st.augs = append(st.augs, Augmentation{Target: target, Slot: slot, Code: c})
}

func (st *state) augmentParts(target decl.Ref, slot AugmentSlot, parts []code.Code) {
	if len(parts) == 0 {
		return
	}
	st.augs = append(st.augs, Augmentation{Target: target, Slot: slot, Parts: parts})
}

// result reads the final snapshot out of the state. Called exactly once,
// after the failure boundary has run.
func (st *state) result() *Result {
	return &Result{
		Phase:          st.phase,
		Target:         st.target,
		MacroName:      st.macroName,
		NewTypes:       st.newTypes,
		TypeShapeEdits: st.shapeEdits,
		Declarations:   st.decls,
		Augmentations:  st.augs,
		Diagnostics:    st.diags,
		Failure:        st.failure,
	}
}
