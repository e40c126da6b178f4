package gen

import (
	"fmt"

	"deriv-generator/internal/layout"
	"deriv-generator/internal/table"
)

const (
	stagSuffix    = "_stag"
	nonStagSuffix = "_non_stag"
)

// DispatcherName is the name of the per-table dispatcher behind an entry
// point, e.g. indexDDZ_non_stag.
func DispatcherName(entry string, staggered bool) string {
	if staggered {
		return entry + stagSuffix
	}

	return entry + nonStagSuffix
}

// StencilName is the callee for one method and branch, e.g.
// indexDDX_norm_DIFF_C2.
func StencilName(entry string, b Branch, method string) string {
	return fmt.Sprintf("%s_%s_%s", entry, b, method)
}

type dispatchCase struct {
	Method string
	Norm   string
	On     string
	Off    string
}

type dispatchData struct {
	Field      string
	Name       string
	Params     string
	DefaultVar string
	StagLoc    string
	Flux       bool
	Staggered  bool
	Cases      []dispatchCase
	Unknown    string
}

// buildDispatch prepares one dispatcher and the stencil specs it calls.
func buildDispatch(mesh string, t *table.MethodTable, op layout.Operator, field layout.FieldKind, dir string,
) (dispatchData, []GeneratedFunctionSpec) {
	flags := t.Flags()
	entry := op.FuncName(dir)
	name := DispatcherName(entry, flags.Staggered)

	data := dispatchData{
		Field:      field.Name,
		Name:       name,
		Params:     signature{fieldType: field.Name, flux: flags.FluxLike, selectors: true}.params(),
		DefaultVar: op.DefaultVar(dir),
		StagLoc:    layout.StaggerLocation(dir),
		Flux:       flags.FluxLike,
		Staggered:  flags.Staggered,
		Unknown: cString(fmt.Sprintf("%s %s::%s: unknown method %%d.\n"+
			"Methods are chosen per direction in the [dd%s] options section.\n"+
			"Note FFTs are not (yet) supported.", field.Name, mesh, name, dir)),
	}

	var specs []GeneratedFunctionSpec

	for _, e := range t.Entries() {
		c := dispatchCase{Method: e.Method}

		for _, b := range branchesFor(flags.Staggered) {
			callee := StencilName(entry, b, e.Method)

			switch b {
			case BranchNorm:
				c.Norm = callee
			case BranchOn:
				c.On = callee
			case BranchOff:
				c.Off = callee
			}

			specs = append(specs, GeneratedFunctionSpec{
				Name:      callee,
				Field:     field.Name,
				Direction: dir,
				Branch:    b,
				Stencil:   e.Stencil(),
				Flux:      flags.FluxLike,
			})
		}

		data.Cases = append(data.Cases, c)
	}

	return data, specs
}
