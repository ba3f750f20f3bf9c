package program

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"loom/internal/decl"
)

// Application binds one macro name to one target declaration.
type Application struct {
	MacroName string
	Target    decl.Ref
}

// Snapshot is a loaded host model: the program, the macro applications to
// run against it, and a content digest for caching.
type Snapshot struct {
	Program      *Program
	Library      string
	Applications []Application
	Digest       string
}

// snapshotDoc is the on-disk JSON shape.
type snapshotDoc struct {
	Library      string             `json:"library"`
	Declarations []declEntry        `json:"declarations"`
	Applications []applicationEntry `json:"applications"`
}

type declEntry struct {
	Kind           string       `json:"kind"`
	Name           string       `json:"name"`
	Owner          string       `json:"owner,omitempty"`
	Type           string       `json:"type,omitempty"`
	Returns        string       `json:"returns,omitempty"`
	Aliased        string       `json:"aliased,omitempty"`
	Superclass     string       `json:"superclass,omitempty"`
	Repr           string       `json:"repr,omitempty"`
	On             []string     `json:"on,omitempty"`
	Interfaces     []string     `json:"interfaces,omitempty"`
	Mixins         []string     `json:"mixins,omitempty"`
	TypeParams     []string     `json:"type_params,omitempty"`
	Params         []paramEntry `json:"params,omitempty"`
	Abstract       bool         `json:"abstract,omitempty"`
	Final          bool         `json:"final,omitempty"`
	Static         bool         `json:"static,omitempty"`
	Factory        bool         `json:"factory,omitempty"`
	Const          bool         `json:"const,omitempty"`
	Getter         bool         `json:"getter,omitempty"`
	Setter         bool         `json:"setter,omitempty"`
	HasInitializer bool         `json:"has_initializer,omitempty"`
}

type paramEntry struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type applicationEntry struct {
	Macro  string `json:"macro"`
	Target string `json:"target"`
}

// LoadSnapshot reads and parses a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return snap, nil
}

// ParseSnapshot parses a snapshot document. Member declarations must
// appear after their owner; macro targets name declarations either by
// their plain name (top level), "Owner.name" (members, with "Owner.new"
// for an unnamed constructor), or the library URI.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc snapshotDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if doc.Library == "" {
		return nil, errors.New(`missing "library"`)
	}

	p := New()
	lib := p.AddLibrary(doc.Library)
	targets := map[string]decl.Ref{lib.URI(): lib.Ref()}

	for i, e := range doc.Declarations {
		ref, key, err := addEntry(p, lib.URI(), e, targets)
		if err != nil {
			return nil, fmt.Errorf("declarations[%d] (%s %q): %w", i, e.Kind, e.Name, err)
		}
		if _, dup := targets[key]; dup {
			return nil, fmt.Errorf("declarations[%d]: duplicate declaration %q", i, key)
		}
		targets[key] = ref
	}

	apps := make([]Application, 0, len(doc.Applications))
	for i, a := range doc.Applications {
		if a.Macro == "" {
			return nil, fmt.Errorf(`applications[%d]: missing "macro"`, i)
		}
		ref, ok := targets[a.Target]
		if !ok {
			return nil, fmt.Errorf("applications[%d]: unknown target %q", i, a.Target)
		}
		apps = append(apps, Application{MacroName: a.Macro, Target: ref})
	}

	sum := sha256.Sum256(data)
	return &Snapshot{
		Program:      p,
		Library:      lib.URI(),
		Applications: apps,
		Digest:       hex.EncodeToString(sum[:]),
	}, nil
}

// addEntry constructs and stores one declaration, returning its reference
// and the key macro applications use to address it.
func addEntry(p *Program, lib string, e declEntry, targets map[string]decl.Ref) (decl.Ref, string, error) {
	kind, err := decl.ParseKind(e.Kind)
	if err != nil {
		return decl.NoRef, "", err
	}
	if kind == decl.KindLibrary {
		return decl.NoRef, "", errors.New(`nested "library" entries are not allowed`)
	}
	if e.Name == "" && kind != decl.KindConstructor {
		return decl.NoRef, "", errors.New(`missing "name"`)
	}

	var owner decl.Ref
	if kind.IsMember() {
		if e.Owner == "" {
			return decl.NoRef, "", errors.New(`missing "owner"`)
		}
		ref, ok := targets[e.Owner]
		if !ok {
			return decl.NoRef, "", fmt.Errorf("unknown owner %q (owners must precede members)", e.Owner)
		}
		owner = ref
	} else if e.Owner != "" {
		return decl.NoRef, "", fmt.Errorf("%s declarations carry no owner", kind)
	}

	build, err := entryBuilder(lib, kind, owner, e)
	if err != nil {
		return decl.NoRef, "", err
	}
	d, err := p.AddDecl(build)
	if err != nil {
		return decl.NoRef, "", err
	}

	key := e.Name
	if kind.IsMember() {
		name := e.Name
		if name == "" {
			name = "new"
		}
		key = e.Owner + "." + name
	}
	return d.Ref(), key, nil
}

// entryBuilder translates one JSON entry into a declaration constructor.
func entryBuilder(lib string, kind decl.Kind, owner decl.Ref, e declEntry) (func(decl.ID) decl.Decl, error) {
	switch kind {
	case decl.KindClass:
		superclass, err := ParseTypeAnn(e.Superclass)
		if err != nil {
			return nil, err
		}
		interfaces, err := parseAnnList(e.Interfaces)
		if err != nil {
			return nil, err
		}
		mixins, err := parseAnnList(e.Mixins)
		if err != nil {
			return nil, err
		}
		spec := decl.ClassSpec{
			Abstract:   e.Abstract,
			Final:      e.Final,
			TypeParams: e.TypeParams,
			Superclass: superclass,
			Interfaces: interfaces,
			Mixins:     mixins,
		}
		return func(id decl.ID) decl.Decl { return decl.NewClass(id, lib, e.Name, spec) }, nil

	case decl.KindMixin:
		on, err := parseAnnList(e.On)
		if err != nil {
			return nil, err
		}
		interfaces, err := parseAnnList(e.Interfaces)
		if err != nil {
			return nil, err
		}
		spec := decl.MixinSpec{TypeParams: e.TypeParams, On: on, Interfaces: interfaces}
		return func(id decl.ID) decl.Decl { return decl.NewMixin(id, lib, e.Name, spec) }, nil

	case decl.KindEnum:
		interfaces, err := parseAnnList(e.Interfaces)
		if err != nil {
			return nil, err
		}
		return func(id decl.ID) decl.Decl { return decl.NewEnum(id, lib, e.Name, interfaces...) }, nil

	case decl.KindEnumValue:
		return func(id decl.ID) decl.Decl { return decl.NewEnumValue(id, lib, e.Name, owner) }, nil

	case decl.KindExtension:
		if len(e.On) != 1 {
			return nil, fmt.Errorf(`extensions take exactly one "on" type, got %d`, len(e.On))
		}
		onType, err := ParseTypeAnn(e.On[0])
		if err != nil {
			return nil, err
		}
		return func(id decl.ID) decl.Decl { return decl.NewExtension(id, lib, e.Name, onType) }, nil

	case decl.KindExtensionType:
		if e.Repr == "" {
			return nil, errors.New(`missing "repr"`)
		}
		reprType, err := ParseTypeAnn(e.Type)
		if err != nil {
			return nil, err
		}
		return func(id decl.ID) decl.Decl {
			return decl.NewExtensionType(id, lib, e.Name, e.Repr, reprType)
		}, nil

	case decl.KindTypeAlias:
		if e.Aliased == "" {
			return nil, errors.New(`missing "aliased"`)
		}
		aliased, err := ParseTypeAnn(e.Aliased)
		if err != nil {
			return nil, err
		}
		return func(id decl.ID) decl.Decl { return decl.NewTypeAlias(id, lib, e.Name, aliased) }, nil

	case decl.KindFunction:
		params, err := parseParams(e.Params)
		if err != nil {
			return nil, err
		}
		returns, err := ParseTypeAnn(e.Returns)
		if err != nil {
			return nil, err
		}
		spec := decl.FunctionSpec{Params: params, Returns: returns}
		return func(id decl.ID) decl.Decl { return decl.NewFunction(id, lib, e.Name, spec) }, nil

	case decl.KindVariable:
		typ, err := ParseTypeAnn(e.Type)
		if err != nil {
			return nil, err
		}
		spec := decl.VariableSpec{Type: typ, Final: e.Final, HasInitializer: e.HasInitializer}
		return func(id decl.ID) decl.Decl { return decl.NewVariable(id, lib, e.Name, spec) }, nil

	case decl.KindConstructor:
		params, err := parseParams(e.Params)
		if err != nil {
			return nil, err
		}
		spec := decl.ConstructorSpec{Params: params, Factory: e.Factory, Const: e.Const}
		return func(id decl.ID) decl.Decl { return decl.NewConstructor(id, lib, e.Name, owner, spec) }, nil

	case decl.KindMethod:
		params, err := parseParams(e.Params)
		if err != nil {
			return nil, err
		}
		returns, err := ParseTypeAnn(e.Returns)
		if err != nil {
			return nil, err
		}
		spec := decl.MethodSpec{
			Params:  params,
			Returns: returns,
			Static:  e.Static,
			Getter:  e.Getter,
			Setter:  e.Setter,
		}
		return func(id decl.ID) decl.Decl { return decl.NewMethod(id, lib, e.Name, owner, spec) }, nil

	case decl.KindField:
		typ, err := ParseTypeAnn(e.Type)
		if err != nil {
			return nil, err
		}
		spec := decl.FieldSpec{
			Type:           typ,
			Static:         e.Static,
			Final:          e.Final,
			HasInitializer: e.HasInitializer,
		}
		return func(id decl.ID) decl.Decl { return decl.NewField(id, lib, e.Name, owner, spec) }, nil
	}
	return nil, fmt.Errorf("unhandled declaration kind %s", kind)
}

func parseAnnList(entries []string) ([]decl.TypeAnn, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]decl.TypeAnn, 0, len(entries))
	for _, s := range entries {
		ann, err := ParseTypeAnn(s)
		if err != nil {
			return nil, err
		}
		if ann.IsZero() {
			return nil, fmt.Errorf("empty type in list %v", entries)
		}
		out = append(out, ann)
	}
	return out, nil
}

func parseParams(entries []paramEntry) ([]decl.Param, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make([]decl.Param, 0, len(entries))
	for _, p := range entries {
		if p.Name == "" {
			return nil, errors.New(`parameter missing "name"`)
		}
		typ, err := ParseTypeAnn(p.Type)
		if err != nil {
			return nil, err
		}
		out = append(out, decl.Param{Name: p.Name, Type: typ})
	}
	return out, nil
}
