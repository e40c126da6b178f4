package layout

import (
	"errors"
	"fmt"
	"strings"

	"deriv-generator/internal/common"
)

var ErrInvalidLayout = errors.New("invalid layout")

// FieldKind is a runtime field type and the directions it can be
// differentiated in.
type FieldKind struct {
	// Name is the C++ type, e.g. Field3D.
	Name string `mapstructure:"name"`
	// Directions are lower case axis labels in declaration order.
	Directions []string `mapstructure:"directions"`
	// Supertype is the base field type accepted by covariance shims. Empty
	// means the field kind never gets a shim.
	Supertype string `mapstructure:"supertype"`
}

// Variant is one of the two method tables of a family.
type Variant struct {
	Staggered bool
	Table     string
	// Preseed is assigned to the scheme name before the option lookups.
	Preseed string
}

// Family groups the operators sharing one public entry point.
type Family struct {
	// Kind is the option key and variable stem: First, Second, Upwind, Flux.
	Kind string
	// Template builds the entry point name from the upper case direction.
	Template string
	// FluxLike operators take a velocity v as well as the field f.
	FluxLike bool
	// Fallback is the scheme used when no option key is set.
	Fallback string
	// Trailing maps a direction to an extra, ignored parameter of the
	// public signature.
	Trailing map[string]string
	// ShimDirections lists the directions that get a covariance shim.
	ShimDirections []string
	Variants       []Variant
}

// FuncName returns the entry point name for dir, e.g. indexDDX.
func (f Family) FuncName(dir string) string {
	return fmt.Sprintf(f.Template, strings.ToUpper(dir))
}

// HasShim reports whether dir gets a covariance shim for this family.
func (f Family) HasShim(dir string) bool {
	for _, d := range f.ShimDirections {
		if d == dir {
			return true
		}
	}

	return false
}

// Operator is a family paired with one of its variants.
type Operator struct {
	Family
	Variant
}

// Label is the option key for this operator, e.g. FirstStag.
func (o Operator) Label() string {
	if o.Staggered {
		return o.Kind + "Stag"
	}

	return o.Kind
}

// DefaultVar names the variable holding the configured default method.
func (o Operator) DefaultVar(dir string) string {
	return fmt.Sprintf("default_%s_%sDeriv", dir, o.Label())
}

// Layout is the full catalogue driving generation.
type Layout struct {
	// MeshClass owns the generated member functions.
	MeshClass string
	Fields    []FieldKind
	Families  []Family
}

// Primary returns the field kind whose directions drive the initializer.
func (l Layout) Primary() FieldKind {
	f, _ := common.First(l.Fields)
	return f
}

// Operators returns every operator, family by family, plain before staggered.
func (l Layout) Operators() []Operator {
	var ops []Operator

	for _, f := range l.Families {
		for _, v := range f.Variants {
			ops = append(ops, Operator{Family: f, Variant: v})
		}
	}

	return ops
}

// Operator finds the operator whose method table is called table.
func (l Layout) Operator(table string) (Operator, bool) {
	for _, op := range l.Operators() {
		if op.Table == table {
			return op, true
		}
	}

	return Operator{}, false
}

// StaggerLocation is the cell location staggered along dir.
func StaggerLocation(dir string) string {
	return "CELL_" + strings.ToUpper(dir) + "LOW"
}

// Validate checks names and direction sets are usable.
func (l Layout) Validate() error {
	if l.MeshClass == "" {
		return fmt.Errorf("%w: mesh class is empty", ErrInvalidLayout)
	}

	if common.IsEmpty(l.Fields) {
		return fmt.Errorf("%w: no field kinds", ErrInvalidLayout)
	}

	var names []string

	for _, f := range l.Fields {
		if f.Name == "" || common.IsEmpty(f.Directions) {
			return fmt.Errorf("%w: field kind %q needs a name and directions", ErrInvalidLayout, f.Name)
		}

		if dups := common.Duplicates(f.Directions); len(dups) > 0 {
			return fmt.Errorf("%w: field kind %s repeats directions %v", ErrInvalidLayout, f.Name, dups)
		}

		names = append(names, f.Name)
	}

	if dups := common.Duplicates(names); len(dups) > 0 {
		return fmt.Errorf("%w: duplicate field kinds %v", ErrInvalidLayout, dups)
	}

	var tables []string

	for _, f := range l.Families {
		if strings.Count(f.Template, "%s") != 1 {
			return fmt.Errorf("%w: template %q must hold one %%s", ErrInvalidLayout, f.Template)
		}

		for _, v := range f.Variants {
			tables = append(tables, v.Table)
		}
	}

	if dups := common.Duplicates(tables); len(dups) > 0 {
		return fmt.Errorf("%w: tables used twice %v", ErrInvalidLayout, dups)
	}

	return nil
}
