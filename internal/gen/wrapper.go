package gen

import (
	"fmt"

	"deriv-generator/internal/layout"
)

type wrapperData struct {
	Mesh             string
	Field            string
	Name             string
	Params           string
	DeclareSelectors bool
	Flux             bool
	Mismatch         string
	StagLoc          string
	Stag             string
	NonStag          string
	Args             string
}

func buildWrapper(l layout.Layout, fam layout.Family, field layout.FieldKind, dir string) wrapperData {
	sig := publicSignature(l, fam, field, dir)
	name := fam.FuncName(dir)

	return wrapperData{
		Mesh:             l.MeshClass,
		Field:            field.Name,
		Name:             name,
		Params:           sig.params(),
		DeclareSelectors: !sig.selectors,
		Flux:             fam.FluxLike,
		Mismatch: cString(fmt.Sprintf("%s::%s: Unhandled case for shifting.\n"+
			"f.getLocation()==outloc is required!", l.MeshClass, name)),
		StagLoc: layout.StaggerLocation(dir),
		Stag:    DispatcherName(name, true),
		NonStag: DispatcherName(name, false),
		Args:    operands(fam.FluxLike),
	}
}
