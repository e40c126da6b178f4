package manifest

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"deriv-generator/internal/gen"
)

// CurrentVersion is written into new manifests.
const CurrentVersion = "1"

var (
	ErrInvalidManifest = errors.New("invalid manifest")
	ErrStale           = errors.New("manifest is out of date")
)

// Manifest is the file form of the stencil registry.
type Manifest struct {
	Version string `yaml:"version"`
	// Source is the table file the stencils were read from.
	Source   string    `yaml:"source,omitempty"`
	Stencils []Stencil `yaml:"stencils"`
}

// Stencil is one callee, keyed by name and field.
type Stencil struct {
	Name      string `yaml:"name"`
	Field     string `yaml:"field"`
	Direction string `yaml:"direction"`
	Branch    string `yaml:"branch"`
	Stencil   string `yaml:"stencil"`
	Flux      bool   `yaml:"flux,omitempty"`
}

// FromSpecs builds a manifest keeping the order of specs.
func FromSpecs(source string, specs []gen.GeneratedFunctionSpec) *Manifest {
	m := &Manifest{
		Version:  CurrentVersion,
		Source:   source,
		Stencils: make([]Stencil, len(specs)),
	}

	for i, s := range specs {
		m.Stencils[i] = Stencil{
			Name:      s.Name,
			Field:     s.Field,
			Direction: s.Direction,
			Branch:    s.Branch.String(),
			Stencil:   s.Stencil,
			Flux:      s.Flux,
		}
	}

	return m
}

// Specs converts the manifest back to registry records.
func (m *Manifest) Specs() ([]gen.GeneratedFunctionSpec, error) {
	specs := make([]gen.GeneratedFunctionSpec, len(m.Stencils))

	for i, s := range m.Stencils {
		b, err := gen.ParseBranch(s.Branch)
		if err != nil {
			return nil, fmt.Errorf("%w: stencil %s: %w", ErrInvalidManifest, s.Name, err)
		}

		specs[i] = gen.GeneratedFunctionSpec{
			Name:      s.Name,
			Field:     s.Field,
			Direction: s.Direction,
			Branch:    b,
			Stencil:   s.Stencil,
			Flux:      s.Flux,
		}
	}

	return specs, nil
}

// Check compares the manifest with freshly generated specs and reports the
// first difference.
func (m *Manifest) Check(specs []gen.GeneratedFunctionSpec) error {
	have, err := m.Specs()
	if err != nil {
		return err
	}

	for i := range min(len(have), len(specs)) {
		if have[i] != specs[i] {
			return fmt.Errorf("%w: stencil %d is %s, want %s", ErrStale, i, describe(have[i]), describe(specs[i]))
		}
	}

	switch {
	case len(have) < len(specs):
		return fmt.Errorf("%w: %d stencils missing, starting with %s",
			ErrStale, len(specs)-len(have), describe(specs[len(have)]))
	case len(have) > len(specs):
		return fmt.Errorf("%w: %d stencils no longer generated, starting with %s",
			ErrStale, len(have)-len(specs), describe(have[len(specs)]))
	}

	return nil
}

func describe(s gen.GeneratedFunctionSpec) string {
	return fmt.Sprintf("%s (%s, %s, %s)", s.Name, s.Field, s.Branch, s.Stencil)
}

// Validate checks every stencil is complete and unique per field.
func (m *Manifest) Validate() error {
	reg := gen.NewRegistry()

	specs, err := m.Specs()
	if err != nil {
		return err
	}

	for i, s := range specs {
		if s.Name == "" || s.Field == "" || s.Stencil == "" {
			return fmt.Errorf("%w: stencil %d needs name, field and stencil", ErrInvalidManifest, i)
		}

		if err := reg.Register(s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
		}
	}

	return nil
}

// LoadFile loads and validates a manifest from path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if m.Version == "" {
		m.Version = CurrentVersion
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Marshal serializes a manifest to YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

// File renders the manifest as a generated file called name.
func (m *Manifest) File(name string) (gen.GeneratedFile, error) {
	data, err := Marshal(m)
	if err != nil {
		return gen.GeneratedFile{}, fmt.Errorf("failed to marshal manifest: %w", err)
	}

	return gen.GeneratedFile{Filename: name, Content: data}, nil
}
