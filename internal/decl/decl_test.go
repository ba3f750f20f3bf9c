package decl

import (
	"strings"
	"testing"
)

func TestRefString(t *testing.T) {
	cases := []struct {
		ref  Ref
		want string
	}{
		{NoRef, "<none>"},
		{Ref{ID: 7, Kind: KindClass}, "class#7"},
		{Ref{ID: 12, Kind: KindEnumValue}, "enum_value#12"},
	}
	for _, tc := range cases {
		if got := tc.ref.String(); got != tc.want {
			t.Errorf("Ref%+v.String() = %q, want %q", tc.ref, got, tc.want)
		}
	}
	if NoRef.IsValid() {
		t.Error("NoRef must not be valid")
	}
	if !(Ref{ID: 1, Kind: KindLibrary}).IsValid() {
		t.Error("assigned ref must be valid")
	}
}

func TestIdentString(t *testing.T) {
	cases := []struct {
		ident Ident
		want  string
	}{
		{Ident{}, ""},
		{Ident{Library: "app:paint"}, "app:paint"},
		{Ident{Name: "Point"}, "Point"},
		{Ident{Library: "app:paint", Name: "Point"}, "app:paint::Point"},
	}
	for _, tc := range cases {
		if got := tc.ident.String(); got != tc.want {
			t.Errorf("Ident%+v.String() = %q, want %q", tc.ident, got, tc.want)
		}
	}
	if !(Ident{}).IsZero() {
		t.Error("zero Ident must report IsZero")
	}
	if (Ident{Name: "x"}).IsZero() {
		t.Error("named Ident must not report IsZero")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		s := k.String()
		if s == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
		back, err := ParseKind(s)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", s, err)
		}
		if back != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", s, back, k)
		}
	}
	if _, err := ParseKind("gadget"); err == nil {
		t.Fatal("expected error for unknown kind name")
	}
}

func TestKindPredicates(t *testing.T) {
	members := map[Kind]bool{
		KindConstructor: true, KindMethod: true, KindField: true, KindEnumValue: true,
	}
	types := map[Kind]bool{
		KindClass: true, KindMixin: true, KindEnum: true,
		KindExtension: true, KindExtensionType: true,
	}
	for _, k := range Kinds() {
		if got := k.IsMember(); got != members[k] {
			t.Errorf("%s.IsMember() = %t, want %t", k, got, members[k])
		}
		if got := k.IsType(); got != types[k] {
			t.Errorf("%s.IsType() = %t, want %t", k, got, types[k])
		}
	}
}

func TestTypeAnnString(t *testing.T) {
	cases := []struct {
		ann  TypeAnn
		want string
	}{
		{TypeAnn{}, ""},
		{Ann("int"), "int"},
		{TypeAnn{Name: "String", Nullable: true}, "String?"},
		{Ann("List", Ann("int")), "List<int>"},
		{Ann("Map", Ann("String"), TypeAnn{Name: "Point", Nullable: true}), "Map<String, Point?>"},
	}
	for _, tc := range cases {
		if got := tc.ann.String(); got != tc.want {
			t.Errorf("TypeAnn.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestParamString(t *testing.T) {
	if got := (Param{Name: "dx"}).String(); got != "dx" {
		t.Errorf("untyped param = %q", got)
	}
	if got := (Param{Name: "dx", Type: Ann("int")}).String(); got != "int dx" {
		t.Errorf("typed param = %q", got)
	}
}

func TestDeclIdentity(t *testing.T) {
	c := NewClass(3, "app:paint", "Point", ClassSpec{Abstract: true})
	if c.ID() != 3 || c.Kind() != KindClass || c.Name() != "Point" || c.Library() != "app:paint" {
		t.Fatalf("class identity wrong: %v %v %q %q", c.ID(), c.Kind(), c.Name(), c.Library())
	}
	if got := c.Ref(); got != (Ref{ID: 3, Kind: KindClass}) {
		t.Fatalf("Ref() = %v", got)
	}
	if got := c.Ident(); got != (Ident{Library: "app:paint", Name: "Point"}) {
		t.Fatalf("Ident() = %v", got)
	}
	if !c.Abstract() || c.Final() {
		t.Fatal("spec flags lost")
	}
}

func TestMemberOwner(t *testing.T) {
	owner := Ref{ID: 3, Kind: KindClass}
	f := NewField(4, "app:paint", "_x", owner, FieldSpec{Type: Ann("int"), Final: true})
	if f.Owner() != owner {
		t.Fatalf("Owner() = %v, want %v", f.Owner(), owner)
	}
	if f.Kind() != KindField || !f.Final() || f.Static() {
		t.Fatal("field spec lost")
	}

	// Unnamed constructors keep the empty name; addressing falls back to
	// the owner plus "new".
	ctor := NewConstructor(5, "app:paint", "", owner, ConstructorSpec{Const: true})
	if ctor.Name() != "" || !ctor.Const() {
		t.Fatalf("constructor = %q const=%t", ctor.Name(), ctor.Const())
	}

	var m Member = f
	if m.Owner() != owner {
		t.Fatal("Member interface lost the owner")
	}
}

func TestLibraryIdent(t *testing.T) {
	lib := NewLibrary(1, "app:paint")
	if lib.Kind() != KindLibrary {
		t.Fatalf("Kind = %v", lib.Kind())
	}
	if lib.URI() != "app:paint" || lib.Name() != "app:paint" {
		t.Fatalf("URI = %q, Name = %q", lib.URI(), lib.Name())
	}
	// Library idents carry the URI only so attribution lines read as the
	// library itself, not a member of it.
	if got := lib.Ident().String(); got != "app:paint" {
		t.Fatalf("Ident() = %q", got)
	}
}

func TestExtensionTypeRepr(t *testing.T) {
	et := NewExtensionType(9, "app:units", "Meters", "value", Ann("double"))
	if et.ReprName() != "value" {
		t.Fatalf("ReprName = %q", et.ReprName())
	}
	if got := et.ReprType().String(); got != "double" {
		t.Fatalf("ReprType = %q", got)
	}
	if strings.Contains(et.Ident().String(), "value") {
		t.Fatal("repr field must not leak into the ident")
	}
}
