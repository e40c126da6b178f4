package gen

import (
	"strings"

	"deriv-generator/internal/layout"
)

// signature is the parameter list shape of an emitted function.
type signature struct {
	fieldType string
	flux      bool
	selectors bool
	trailing  string
}

// publicSignature is the entry point signature: the primary field kind and
// every flux-like operator take the location and method selectors.
func publicSignature(l layout.Layout, fam layout.Family, field layout.FieldKind, dir string) signature {
	return signature{
		fieldType: field.Name,
		flux:      fam.FluxLike,
		selectors: field.Name == l.Primary().Name || fam.FluxLike,
		trailing:  fam.Trailing[dir],
	}
}

// shimSignature accepts the field supertype and has no trailing parameter.
func shimSignature(fam layout.Family, field layout.FieldKind) signature {
	return signature{
		fieldType: field.Supertype,
		flux:      fam.FluxLike,
		selectors: true,
	}
}

func (s signature) params() string {
	var p []string
	if s.flux {
		p = append(p, "const "+s.fieldType+" &v")
	}

	p = append(p, "const "+s.fieldType+" &f")

	if s.selectors {
		p = append(p, "CELL_LOC outloc", "DIFF_METHOD method")
	}

	if s.trailing != "" {
		p = append(p, s.trailing)
	}

	return strings.Join(p, ", ")
}

// operands returns the field arguments forwarded to a dispatcher.
func operands(flux bool) string {
	if flux {
		return "v, f"
	}

	return "f"
}
