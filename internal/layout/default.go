package layout

// DefaultMeshClass is the class the generated members belong to.
const DefaultMeshClass = "AiolosMesh"

// DefaultFields returns the 3D and 2D field kinds.
func DefaultFields() []FieldKind {
	return []FieldKind{
		{Name: "Field3D", Directions: []string{"x", "y", "z"}, Supertype: "Field"},
		{Name: "Field2D", Directions: []string{"x", "y"}},
	}
}

// DefaultFamilies returns the four operator families over their eight tables.
func DefaultFamilies() []Family {
	derivTrailing := map[string]string{"z": "bool ignored"}
	fluxTrailing := map[string]string{"x": "REGION ignored", "y": "REGION ignored"}

	return []Family{
		{
			Kind:     "First",
			Template: "indexDD%s",
			Fallback: "C2",
			Trailing: derivTrailing,
			Variants: []Variant{
				{Table: "FirstDerivTable"},
				{Table: "FirstStagDerivTable", Staggered: true},
			},
		},
		{
			Kind:     "Second",
			Template: "indexD2D%s2",
			Fallback: "C2",
			Trailing: derivTrailing,
			Variants: []Variant{
				{Table: "SecondDerivTable"},
				// FIXME: the lookups below always overwrite this, so it has
				// no effect; confirm what the staggered second derivative
				// is meant to default to.
				{Table: "SecondStagDerivTable", Staggered: true, Preseed: "C2"},
			},
		},
		{
			Kind:           "Upwind",
			Template:       "indexVDD%s",
			FluxLike:       true,
			Fallback:       "U1",
			Trailing:       fluxTrailing,
			ShimDirections: []string{"z"},
			Variants: []Variant{
				{Table: "UpwindTable"},
				{Table: "UpwindStagTable", Staggered: true},
			},
		},
		{
			Kind:     "Flux",
			Template: "indexFDD%s",
			FluxLike: true,
			Fallback: "U1",
			Trailing: fluxTrailing,
			Variants: []Variant{
				{Table: "FluxTable"},
				{Table: "FluxStagTable", Staggered: true},
			},
		},
	}
}

// Default returns the catalogue used when nothing is configured.
func Default() Layout {
	return Layout{
		MeshClass: DefaultMeshClass,
		Fields:    DefaultFields(),
		Families:  DefaultFamilies(),
	}
}
