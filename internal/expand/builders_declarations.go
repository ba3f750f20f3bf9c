package expand

import (
	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
)

// declarationsBuilder serves top-level and free contexts: libraries,
// functions, variables and type aliases. Emissions land in the target's
// library.
type declarationsBuilder struct {
	decl.DeclarationIntrospector
	st      *state
	library decl.Ident
}

func (b *declarationsBuilder) Report(d diag.Diagnostic) { b.st.report(d) }

func (b *declarationsBuilder) DeclareInLibrary(c code.Code) {
	b.st.place(PlaceLibrary, b.library, c)
}

// memberDeclarationsBuilder serves type targets and their members.
// Emissions are attributed to the owning type: the target itself for type
// targets, the resolved owner for member targets.
type memberDeclarationsBuilder struct {
	declarationsBuilder
	owner decl.Ident
}

func (b *memberDeclarationsBuilder) DeclareInType(c code.Code) {
	b.st.place(PlaceType, b.owner, c)
}

// enumDeclarationsBuilder serves Enum and EnumValue targets.
type enumDeclarationsBuilder struct {
	memberDeclarationsBuilder
}

func (b *enumDeclarationsBuilder) DeclareEnumValue(c code.Code) {
	b.st.place(PlaceEnumValues, b.owner, c)
}

func newDeclarationsBuilder(st *state, in decl.DeclarationIntrospector, target decl.Decl) *declarationsBuilder {
	return &declarationsBuilder{
		DeclarationIntrospector: in,
		st:                      st,
		library:                 decl.Ident{Library: target.Library()},
	}
}

func newMemberDeclarationsBuilder(st *state, in decl.DeclarationIntrospector, target decl.Decl, owner decl.Ident) *memberDeclarationsBuilder {
	return &memberDeclarationsBuilder{
		declarationsBuilder: *newDeclarationsBuilder(st, in, target),
		owner:               owner,
	}
}

func newEnumDeclarationsBuilder(st *state, in decl.DeclarationIntrospector, target decl.Decl, owner decl.Ident) *enumDeclarationsBuilder {
	return &enumDeclarationsBuilder{
		memberDeclarationsBuilder: *newMemberDeclarationsBuilder(st, in, target, owner),
	}
}
