package expand

import (
	"loom/internal/code"
	"loom/internal/decl"
	"loom/internal/diag"
)

// typesBuilder is the generic types-phase builder. New type names are
// attributed to the target's library.
type typesBuilder struct {
	decl.TypeIntrospector
	st      *state
	library string
}

func (b *typesBuilder) Report(d diag.Diagnostic) { b.st.report(d) }

func (b *typesBuilder) DeclareType(name string, c code.Code) {
	b.st.declareType(name, c)
}

// identifiedTypesBuilder extends typesBuilder for Class, Enum and Mixin
// targets: shape edits are registered under the target type's own
// identifier.
type identifiedTypesBuilder struct {
	typesBuilder
	ident decl.Ident
}

func (b *identifiedTypesBuilder) AppendInterfaces(parts ...code.Code) {
	b.st.appendShape(SlotInterfaces, b.ident, parts)
}

func (b *identifiedTypesBuilder) AppendMixins(parts ...code.Code) {
	b.st.appendShape(SlotMixins, b.ident, parts)
}

func newTypesBuilder(st *state, in decl.TypeIntrospector, target decl.Decl) *typesBuilder {
	return &typesBuilder{TypeIntrospector: in, st: st, library: target.Library()}
}

func newIdentifiedTypesBuilder(st *state, in decl.TypeIntrospector, target decl.Decl) *identifiedTypesBuilder {
	return &identifiedTypesBuilder{
		typesBuilder: *newTypesBuilder(st, in, target),
		ident:        target.Ident(),
	}
}
