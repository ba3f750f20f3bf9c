package program

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"fortio.org/safecast"

	"loom/internal/decl"
)

// nameKey is an interned (library, name) pair.
type nameKey struct {
	lib  NameID
	name NameID
}

// Program is a set of declarations forming the expansion target model.
// The zero value is not usable; construct with New.
type Program struct {
	mu      sync.RWMutex
	names   *Interner
	decls   map[decl.ID]decl.Decl
	order   []decl.ID
	members map[decl.ID][]decl.ID
	libs    map[NameID]decl.ID
	idents  map[nameKey]decl.Ident
}

// New allocates an empty program.
func New() *Program {
	return &Program{
		names:   NewInterner(),
		decls:   make(map[decl.ID]decl.Decl),
		members: make(map[decl.ID][]decl.ID),
		libs:    make(map[NameID]decl.ID),
		idents:  make(map[nameKey]decl.Ident),
	}
}

// allocID hands out the next declaration ID. Callers hold the write lock.
func (p *Program) allocID() decl.ID {
	value, err := safecast.Conv[uint32](len(p.order) + 1)
	if err != nil {
		panic(fmt.Errorf("declaration count overflow: %w", err))
	}
	return decl.ID(value)
}

// AddLibrary registers a library and returns its declaration. Adding a
// URI twice returns the existing declaration.
func (p *Program) AddLibrary(uri string) *decl.Library {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := p.names.Intern(uri)
	if id, ok := p.libs[key]; ok {
		return p.decls[id].(*decl.Library)
	}
	lib := decl.NewLibrary(p.allocID(), p.names.Canonical(uri))
	p.decls[lib.ID()] = lib
	p.order = append(p.order, lib.ID())
	p.libs[key] = lib.ID()
	p.idents[nameKey{lib: key, name: NoNameID}] = lib.Ident()
	return lib
}

// AddDecl stores the declaration produced by build against a fresh ID.
// Everything but libraries goes through here; the declaring library must
// already exist, and member owners must already be present and able to
// own the new member.
func (p *Program) AddDecl(build func(id decl.ID) decl.Decl) (decl.Decl, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.allocID()
	d := build(id)
	if d == nil {
		return nil, errors.New("program: build returned no declaration")
	}
	if d.ID() != id {
		return nil, fmt.Errorf("program: declaration %q kept ID %d instead of the assigned %d", d.Name(), d.ID(), id)
	}
	if d.Kind() == decl.KindLibrary {
		return nil, errors.New("program: libraries are added with AddLibrary")
	}
	libKey, ok := p.names.Get(d.Library())
	if !ok || p.libs[libKey] == decl.NoID {
		return nil, fmt.Errorf("program: declaration %q names unknown library %q", d.Name(), d.Library())
	}

	if m, isMember := d.(decl.Member); isMember {
		owner := m.Owner()
		od, ok := p.decls[owner.ID]
		if !ok {
			return nil, fmt.Errorf("program: %s %q names unknown owner %s", d.Kind(), d.Name(), owner)
		}
		if od.Kind() != owner.Kind {
			return nil, fmt.Errorf("program: %s %q owner %s is a %s", d.Kind(), d.Name(), owner, od.Kind())
		}
		if err := canOwn(od.Kind(), d.Kind()); err != nil {
			return nil, fmt.Errorf("program: %s %q: %w", d.Kind(), d.Name(), err)
		}
		p.members[owner.ID] = append(p.members[owner.ID], d.ID())
	}

	p.decls[d.ID()] = d
	p.order = append(p.order, d.ID())
	p.idents[nameKey{lib: libKey, name: p.names.Intern(d.Name())}] = d.Ident()
	return d, nil
}

// canOwn checks the owner/member kind pairing.
func canOwn(owner, member decl.Kind) error {
	if member == decl.KindEnumValue {
		if owner != decl.KindEnum {
			return fmt.Errorf("enum values belong to enums, not %s declarations", owner)
		}
		return nil
	}
	if !owner.IsType() {
		return fmt.Errorf("%s declarations cannot own members", owner)
	}
	return nil
}

// RegisterType makes a types-phase type name resolvable in later phases.
// The name joins the identifier table only; no declaration is created for
// it. Returns the canonical identifier.
func (p *Program) RegisterType(library, name string) decl.Ident {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := nameKey{lib: p.names.Intern(library), name: p.names.Intern(name)}
	ident := decl.Ident{Library: p.names.Canonical(library), Name: p.names.Canonical(name)}
	p.idents[key] = ident
	return ident
}

// Len returns the number of declarations, libraries included.
func (p *Program) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Libraries returns the URIs of every registered library, sorted.
func (p *Program) Libraries() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, 0, len(p.libs))
	for _, id := range p.libs {
		out = append(out, p.decls[id].(*decl.Library).URI())
	}
	slices.Sort(out)
	return out
}

// Decls returns every declaration in insertion order.
func (p *Program) Decls() []decl.Decl {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]decl.Decl, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.decls[id])
	}
	return out
}

// Decl returns the declaration the ref points at. The ref's kind tag must
// match the stored declaration.
func (p *Program) Decl(ref decl.Ref) (decl.Decl, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	d, ok := p.decls[ref.ID]
	if !ok || d.Kind() != ref.Kind {
		return nil, false
	}
	return d, true
}
