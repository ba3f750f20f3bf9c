package decl

import "fmt"

// Kind tags the concrete variant of a declaration.
type Kind uint8

const (
	// KindLibrary is a whole library (compilation unit).
	KindLibrary Kind = iota
	// KindClass is a class declaration.
	KindClass
	// KindMixin is a mixin declaration.
	KindMixin
	// KindEnum is an enum declaration.
	KindEnum
	// KindEnumValue is a single value inside an enum.
	KindEnumValue
	// KindExtension is an extension declaration.
	KindExtension
	// KindExtensionType is an extension type declaration.
	KindExtensionType
	// KindTypeAlias is a type alias declaration.
	KindTypeAlias
	// KindFunction is a top-level function.
	KindFunction
	// KindVariable is a top-level variable.
	KindVariable
	// KindConstructor is a constructor member.
	KindConstructor
	// KindMethod is a method member.
	KindMethod
	// KindField is a field member.
	KindField

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindLibrary:
		return "library"
	case KindClass:
		return "class"
	case KindMixin:
		return "mixin"
	case KindEnum:
		return "enum"
	case KindEnumValue:
		return "enum_value"
	case KindExtension:
		return "extension"
	case KindExtensionType:
		return "extension_type"
	case KindTypeAlias:
		return "type_alias"
	case KindFunction:
		return "function"
	case KindVariable:
		return "variable"
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	}
	return "unknown"
}

// ParseKind converts a snapshot kind string to a Kind.
func ParseKind(s string) (Kind, error) {
	for k := KindLibrary; k < kindCount; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return kindCount, fmt.Errorf("unknown declaration kind: %q", s)
}

// IsMember reports whether declarations of this kind are owned by an
// enclosing type declaration.
func (k Kind) IsMember() bool {
	switch k {
	case KindConstructor, KindMethod, KindField, KindEnumValue:
		return true
	}
	return false
}

// IsType reports whether declarations of this kind introduce a type that
// can own members.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindMixin, KindEnum, KindExtension, KindExtensionType:
		return true
	}
	return false
}

// Kinds returns every declaration kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := KindLibrary; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
