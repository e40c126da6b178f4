package gen

import (
	"strings"

	"deriv-generator/internal/layout"
)

type headerData struct {
	Field      string
	Name       string
	Params     string
	Shim       bool
	ShimParams string
	ShimArgs   string
}

func buildHeader(l layout.Layout, fam layout.Family, field layout.FieldKind, dir string) headerData {
	data := headerData{
		Field:  field.Name,
		Name:   fam.FuncName(dir),
		Params: publicSignature(l, fam, field, dir).params(),
		Shim:   field.Supertype != "" && fam.HasShim(dir),
	}

	if data.Shim {
		data.ShimParams = shimSignature(fam, field).params()

		var args []string
		if fam.FluxLike {
			args = append(args, "dynamic_cast<const "+field.Name+" &>(v)")
		}

		args = append(args, "dynamic_cast<const "+field.Name+" &>(f)", "outloc", "method")
		data.ShimArgs = strings.Join(args, ", ")
	}

	return data
}
