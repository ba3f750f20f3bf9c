package macro

import "loom/internal/decl"

// Capability names one (phase, kind) pair a macro can serve.
type Capability struct {
	Phase Phase
	Kind  decl.Kind
}

func (c Capability) String() string {
	return c.Phase.String() + "/" + c.Kind.String()
}

// probes mirrors the expander's dispatch: one type assertion per
// supported (phase, kind) pair. Kept in phase-then-kind order so
// Capabilities output is stable.
var probes = []struct {
	cap Capability
	ok  func(m Macro) bool
}{
	{Capability{PhaseTypes, decl.KindLibrary}, func(m Macro) bool { _, ok := m.(LibraryTypes); return ok }},
	{Capability{PhaseTypes, decl.KindClass}, func(m Macro) bool { _, ok := m.(ClassTypes); return ok }},
	{Capability{PhaseTypes, decl.KindMixin}, func(m Macro) bool { _, ok := m.(MixinTypes); return ok }},
	{Capability{PhaseTypes, decl.KindEnum}, func(m Macro) bool { _, ok := m.(EnumTypes); return ok }},
	{Capability{PhaseTypes, decl.KindEnumValue}, func(m Macro) bool { _, ok := m.(EnumValueTypes); return ok }},
	{Capability{PhaseTypes, decl.KindExtension}, func(m Macro) bool { _, ok := m.(ExtensionTypes); return ok }},
	{Capability{PhaseTypes, decl.KindExtensionType}, func(m Macro) bool { _, ok := m.(ExtensionTypeTypes); return ok }},
	{Capability{PhaseTypes, decl.KindTypeAlias}, func(m Macro) bool { _, ok := m.(TypeAliasTypes); return ok }},
	{Capability{PhaseTypes, decl.KindFunction}, func(m Macro) bool { _, ok := m.(FunctionTypes); return ok }},
	{Capability{PhaseTypes, decl.KindVariable}, func(m Macro) bool { _, ok := m.(VariableTypes); return ok }},
	{Capability{PhaseTypes, decl.KindConstructor}, func(m Macro) bool { _, ok := m.(ConstructorTypes); return ok }},
	{Capability{PhaseTypes, decl.KindMethod}, func(m Macro) bool { _, ok := m.(MethodTypes); return ok }},
	{Capability{PhaseTypes, decl.KindField}, func(m Macro) bool { _, ok := m.(FieldTypes); return ok }},

	{Capability{PhaseDeclarations, decl.KindLibrary}, func(m Macro) bool { _, ok := m.(LibraryDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindClass}, func(m Macro) bool { _, ok := m.(ClassDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindMixin}, func(m Macro) bool { _, ok := m.(MixinDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindEnum}, func(m Macro) bool { _, ok := m.(EnumDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindEnumValue}, func(m Macro) bool { _, ok := m.(EnumValueDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindExtension}, func(m Macro) bool { _, ok := m.(ExtensionDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindExtensionType}, func(m Macro) bool { _, ok := m.(ExtensionTypeDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindTypeAlias}, func(m Macro) bool { _, ok := m.(TypeAliasDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindFunction}, func(m Macro) bool { _, ok := m.(FunctionDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindVariable}, func(m Macro) bool { _, ok := m.(VariableDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindConstructor}, func(m Macro) bool { _, ok := m.(ConstructorDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindMethod}, func(m Macro) bool { _, ok := m.(MethodDeclarations); return ok }},
	{Capability{PhaseDeclarations, decl.KindField}, func(m Macro) bool { _, ok := m.(FieldDeclarations); return ok }},

	{Capability{PhaseDefinitions, decl.KindLibrary}, func(m Macro) bool { _, ok := m.(LibraryDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindClass}, func(m Macro) bool { _, ok := m.(ClassDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindMixin}, func(m Macro) bool { _, ok := m.(MixinDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindEnum}, func(m Macro) bool { _, ok := m.(EnumDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindEnumValue}, func(m Macro) bool { _, ok := m.(EnumValueDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindExtension}, func(m Macro) bool { _, ok := m.(ExtensionDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindExtensionType}, func(m Macro) bool { _, ok := m.(ExtensionTypeDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindFunction}, func(m Macro) bool { _, ok := m.(FunctionDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindVariable}, func(m Macro) bool { _, ok := m.(VariableDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindConstructor}, func(m Macro) bool { _, ok := m.(ConstructorDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindMethod}, func(m Macro) bool { _, ok := m.(MethodDefinition); return ok }},
	{Capability{PhaseDefinitions, decl.KindField}, func(m Macro) bool { _, ok := m.(FieldDefinition); return ok }},
}

// Supports reports whether m implements the capability for the given
// phase and target kind.
func Supports(m Macro, phase Phase, kind decl.Kind) bool {
	for _, p := range probes {
		if p.cap.Phase == phase && p.cap.Kind == kind {
			return p.ok(m)
		}
	}
	return false
}

// Capabilities lists every (phase, kind) pair m can serve, in a stable
// phase-then-kind order.
func Capabilities(m Macro) []Capability {
	var out []Capability
	for _, p := range probes {
		if p.ok(m) {
			out = append(out, p.cap)
		}
	}
	return out
}
