package code

import (
	"testing"

	"loom/internal/decl"
)

func TestRawAndString(t *testing.T) {
	if got := Raw("=> _x;").String(); got != "=> _x;" {
		t.Errorf("Raw().String() = %q", got)
	}
	if !Raw("").IsEmpty() {
		t.Error("Raw(\"\") must be empty")
	}
	if got := Rawf("get %s;", "x").String(); got != "get x;" {
		t.Errorf("Rawf().String() = %q", got)
	}
}

func TestIdRendersByName(t *testing.T) {
	c := Id(decl.Ident{Library: "app:paint", Name: "PointData"})
	if got := c.String(); got != "PointData" {
		t.Errorf("Id().String() = %q", got)
	}
	parts := c.Parts()
	if len(parts) != 1 || !parts[0].IsIdent() {
		t.Fatalf("Id() parts = %+v", parts)
	}
	if parts[0].Ident.Library != "app:paint" {
		t.Errorf("ident library = %q", parts[0].Ident.Library)
	}
}

func TestJoinPreservesOrder(t *testing.T) {
	c := Join(
		Raw("implements "),
		Id(decl.Ident{Name: "PointData"}),
		Raw(" {}"),
	)
	if got := c.String(); got != "implements PointData {}" {
		t.Errorf("Join().String() = %q", got)
	}
	if got := len(c.Parts()); got != 3 {
		t.Errorf("Join() kept %d parts, want 3", got)
	}
}

func TestJoinSepSkipsEmpty(t *testing.T) {
	c := JoinSep(", ", Raw("a = 1"), Code{}, Raw("b = 2"))
	if got := c.String(); got != "a = 1, b = 2" {
		t.Errorf("JoinSep().String() = %q", got)
	}
	if got := JoinSep(", ").String(); got != "" {
		t.Errorf("JoinSep of nothing = %q", got)
	}
	// A lone fragment takes no separator.
	if got := JoinSep(", ", Raw("solo")).String(); got != "solo" {
		t.Errorf("JoinSep(solo) = %q", got)
	}
}

func TestPartsAreCopies(t *testing.T) {
	c := Join(Raw("a"), Raw("b"))
	parts := c.Parts()
	parts[0].Text = "mutated"
	if got := c.String(); got != "ab" {
		t.Errorf("mutation through Parts() leaked into fragment: %q", got)
	}

	src := []Part{{Text: "x"}}
	rebuilt := FromParts(src)
	src[0].Text = "y"
	if got := rebuilt.String(); got != "x" {
		t.Errorf("FromParts aliased its input: %q", got)
	}
}
