package program

import (
	"context"

	"loom/internal/decl"
	"loom/internal/macro"
)

// The Program is the host-side introspector handed to macro executions.
// Misses are framework failures, so every lookup error is a
// *macro.Failure for the execution boundary to preserve.

// ResolveIdentifier resolves name within library. Names registered with
// RegisterType resolve here from the declarations phase on.
func (p *Program) ResolveIdentifier(ctx context.Context, library, name string) (decl.Ident, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	libID, ok := p.names.Get(library)
	if !ok {
		return decl.Ident{}, macro.Failf("ResolveIdentifier", "unknown library %q", library)
	}
	nameID, ok := p.names.Get(name)
	if !ok {
		return decl.Ident{}, macro.Failf("ResolveIdentifier", "no declaration named %q in %s", name, library)
	}
	ident, ok := p.idents[nameKey{lib: libID, name: nameID}]
	if !ok {
		return decl.Ident{}, macro.Failf("ResolveIdentifier", "no declaration named %q in %s", name, library)
	}
	return ident, nil
}

// DeclarationOf returns the declaration behind a reference.
func (p *Program) DeclarationOf(ctx context.Context, ref decl.Ref) (decl.Decl, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.declByRef("DeclarationOf", ref)
}

// declByRef resolves a reference under the read lock, checking that the
// reference's kind tag matches the stored declaration.
func (p *Program) declByRef(op string, ref decl.Ref) (decl.Decl, error) {
	d, ok := p.decls[ref.ID]
	if !ok {
		return nil, macro.Failf(op, "unknown declaration %s", ref)
	}
	if d.Kind() != ref.Kind {
		return nil, macro.Failf(op, "%s refers to a %s declaration", ref, d.Kind())
	}
	return d, nil
}

// FieldsOf returns the fields of a type declaration in insertion order.
func (p *Program) FieldsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Field, error) {
	return membersOf[*decl.Field](p, "FieldsOf", typeRef)
}

// MethodsOf returns the methods of a type declaration in insertion order.
func (p *Program) MethodsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Method, error) {
	return membersOf[*decl.Method](p, "MethodsOf", typeRef)
}

// ConstructorsOf returns the constructors of a type declaration in
// insertion order.
func (p *Program) ConstructorsOf(ctx context.Context, typeRef decl.Ref) ([]*decl.Constructor, error) {
	return membersOf[*decl.Constructor](p, "ConstructorsOf", typeRef)
}

// EnumValuesOf returns the values of an enum declaration in insertion
// order.
func (p *Program) EnumValuesOf(ctx context.Context, enumRef decl.Ref) ([]*decl.EnumValue, error) {
	return membersOf[*decl.EnumValue](p, "EnumValuesOf", enumRef)
}

// membersOf lists the members of one concrete kind owned by typeRef.
func membersOf[T decl.Decl](p *Program, op string, typeRef decl.Ref) ([]T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	owner, err := p.declByRef(op, typeRef)
	if err != nil {
		return nil, err
	}
	if !owner.Kind().IsType() {
		return nil, macro.Failf(op, "%s is not a type declaration", typeRef)
	}
	var out []T
	for _, id := range p.members[typeRef.ID] {
		if m, ok := p.decls[id].(T); ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// TopLevelDeclarationsOf returns every non-member declaration of a
// library in insertion order, the library declaration itself excluded.
func (p *Program) TopLevelDeclarationsOf(ctx context.Context, library string) ([]decl.Decl, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	libID, ok := p.names.Get(library)
	if !ok || p.libs[libID] == decl.NoID {
		return nil, macro.Failf("TopLevelDeclarationsOf", "unknown library %q", library)
	}
	uri := p.decls[p.libs[libID]].(*decl.Library).URI()
	var out []decl.Decl
	for _, id := range p.order {
		d := p.decls[id]
		if d.Library() != uri || d.Kind() == decl.KindLibrary {
			continue
		}
		if _, member := d.(decl.Member); member {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// InferType returns the recorded annotation of a declaration. The model
// carries no expressions, so a declaration without an annotation has
// nothing to infer from and the query fails.
func (p *Program) InferType(ctx context.Context, ref decl.Ref) (decl.TypeAnn, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	d, err := p.declByRef("InferType", ref)
	if err != nil {
		return decl.TypeAnn{}, err
	}
	var ann decl.TypeAnn
	switch v := d.(type) {
	case *decl.Field:
		ann = v.Type()
	case *decl.Variable:
		ann = v.Type()
	case *decl.Method:
		ann = v.Returns()
	case *decl.Function:
		ann = v.Returns()
	default:
		return decl.TypeAnn{}, macro.Failf("InferType", "%s declarations carry no type annotation", d.Kind())
	}
	if ann.IsZero() {
		return decl.TypeAnn{}, macro.Failf("InferType", "no annotation recorded for %s", ref)
	}
	return ann, nil
}
