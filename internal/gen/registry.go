package gen

import (
	"errors"
	"fmt"
)

var ErrDuplicateFunction = errors.New("duplicate generated function")

// GeneratedFunctionSpec describes one stencil function the emitted code
// calls. The stencil kernel generator must provide one callable per spec.
type GeneratedFunctionSpec struct {
	// Name is the emitted callee, e.g. indexDDX_norm_DIFF_C2.
	Name      string
	Field     string
	Direction string
	Branch    Branch
	// Stencil is the table's reference for the underlying kernel.
	Stencil string
	// Flux callees take (v, f) instead of (f).
	Flux bool
}

type specKey struct {
	name  string
	field string
}

// Registry collects specs in emission order, rejecting repeats.
type Registry struct {
	specs []GeneratedFunctionSpec
	seen  map[specKey]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[specKey]struct{})}
}

// Register appends spec. A name already registered for the same field means
// two methods collapsed onto one callee, which is fatal.
func (r *Registry) Register(spec GeneratedFunctionSpec) error {
	key := specKey{spec.Name, spec.Field}
	if _, dup := r.seen[key]; dup {
		return fmt.Errorf("%w: %s for %s", ErrDuplicateFunction, spec.Name, spec.Field)
	}

	r.seen[key] = struct{}{}
	r.specs = append(r.specs, spec)

	return nil
}

// Specs returns the registered specs in order.
func (r *Registry) Specs() []GeneratedFunctionSpec {
	return r.specs
}

// Len returns the number of registered specs.
func (r *Registry) Len() int {
	return len(r.specs)
}
