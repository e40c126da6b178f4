package gen

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	log "github.com/sirupsen/logrus"

	"deriv-generator/internal/layout"
	"deriv-generator/internal/table"
)

var (
	ErrUnknownTable   = errors.New("table not in layout")
	ErrFamilyMismatch = errors.New("table shape does not match its operator family")
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Layout is the catalogue of fields, directions and operators.
	Layout layout.Layout
	// Source names the table file in the generated banners.
	Source string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Layout: layout.Default()}
}

// Generator turns a table model into C++ fragments.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// Output holds the emitted fragments of one run.
type Output struct {
	Header string
	Source string
	Init   string
	// Stencils are the callees the kernel generator has to provide.
	Stencils []GeneratedFunctionSpec
	// Selections are the initializer's resolution rules.
	Selections []Selection
}

// OutputNames are the file names the fragments are written to.
type OutputNames struct {
	Header string
	Source string
	Init   string
}

// DefaultOutputNames returns the conventional fragment file names.
func DefaultOutputNames() OutputNames {
	return OutputNames{
		Header: "generated_header.hxx",
		Source: "generated_derivs.cxx",
		Init:   "generated_init.cxx",
	}
}

// Files returns the fragments as files named by names.
func (o *Output) Files(names OutputNames) []GeneratedFile {
	return []GeneratedFile{
		{Filename: names.Header, Content: []byte(o.Header)},
		{Filename: names.Source, Content: []byte(o.Source)},
		{Filename: names.Init, Content: []byte(o.Init)},
	}
}

// Generate emits all fragments for m. Nothing is returned on error.
func (g *Generator) Generate(m *table.Model) (*Output, error) {
	l := g.config.Layout
	if err := l.Validate(); err != nil {
		return nil, err
	}

	if err := m.Err(); err != nil {
		return nil, err
	}

	if err := g.checkTables(m); err != nil {
		return nil, err
	}

	reg := NewRegistry()

	var src bytes.Buffer
	if err := g.banner(&src); err != nil {
		return nil, err
	}

	if err := g.writeDispatchers(&src, m, reg); err != nil {
		return nil, err
	}

	if err := g.writeWrappers(&src); err != nil {
		return nil, err
	}

	header, err := g.header()
	if err != nil {
		return nil, err
	}

	sels, err := BuildSelections(l, m)
	if err != nil {
		return nil, err
	}

	var init bytes.Buffer
	if err := g.banner(&init); err != nil {
		return nil, err
	}

	if err := initTemplate.Execute(&init, buildInit(l.MeshClass, sels)); err != nil {
		return nil, fmt.Errorf("executing init template: %w", err)
	}

	log.Debugf("generated %d stencil callees and %d selections from %d tables",
		reg.Len(), len(sels), len(m.Tables))

	return &Output{
		Header:     header,
		Source:     src.String(),
		Init:       init.String(),
		Stencils:   reg.Specs(),
		Selections: sels,
	}, nil
}

// checkTables requires the model and the layout to name the same tables,
// with each table shaped like its family.
func (g *Generator) checkTables(m *table.Model) error {
	l := g.config.Layout

	for _, t := range m.Tables {
		op, ok := l.Operator(t.Name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTable, t.Name)
		}

		if t.Flags().FluxLike != op.FluxLike {
			return fmt.Errorf("%w: %s has flux-like=%t, %s operators need %t",
				ErrFamilyMismatch, t.Name, t.Flags().FluxLike, op.Kind, op.FluxLike)
		}
	}

	for _, op := range l.Operators() {
		if _, ok := m.Table(op.Table); !ok {
			return fmt.Errorf("%w: %s", ErrMissingTable, op.Table)
		}
	}

	return nil
}

func (g *Generator) banner(buf *bytes.Buffer) error {
	if err := bannerTemplate.Execute(buf, g.config.Source); err != nil {
		return fmt.Errorf("executing banner template: %w", err)
	}

	return nil
}

// writeDispatchers walks table, field kind, direction in that order.
func (g *Generator) writeDispatchers(buf *bytes.Buffer, m *table.Model, reg *Registry) error {
	l := g.config.Layout
	names := make(map[specKey]struct{})

	for _, t := range m.Tables {
		op, _ := l.Operator(t.Name)

		for _, field := range l.Fields {
			for _, dir := range field.Directions {
				data, specs := buildDispatch(l.MeshClass, t, op, field, dir)

				key := specKey{data.Name, field.Name}
				if _, dup := names[key]; dup {
					return fmt.Errorf("%w: dispatcher %s for %s (from %s)", ErrDuplicateFunction, data.Name, field.Name, t.Name)
				}

				names[key] = struct{}{}

				for _, spec := range specs {
					if err := reg.Register(spec); err != nil {
						return fmt.Errorf("%s: %w", t.Name, err)
					}
				}

				if err := dispatchTemplate.Execute(buf, data); err != nil {
					return fmt.Errorf("executing dispatch template for %s: %w", data.Name, err)
				}
			}
		}
	}

	return nil
}

// forEachEntry visits family, field kind, direction in that order.
func (g *Generator) forEachEntry(visit func(fam layout.Family, field layout.FieldKind, dir string) error) error {
	l := g.config.Layout

	for _, fam := range l.Families {
		for _, field := range l.Fields {
			for _, dir := range field.Directions {
				if err := visit(fam, field, dir); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (g *Generator) writeWrappers(buf *bytes.Buffer) error {
	return g.forEachEntry(func(fam layout.Family, field layout.FieldKind, dir string) error {
		return execute(wrapperTemplate, buf, buildWrapper(g.config.Layout, fam, field, dir))
	})
}

func (g *Generator) header() (string, error) {
	var buf bytes.Buffer
	if err := g.banner(&buf); err != nil {
		return "", err
	}

	err := g.forEachEntry(func(fam layout.Family, field layout.FieldKind, dir string) error {
		return execute(headerTemplate, &buf, buildHeader(g.config.Layout, fam, field, dir))
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

func execute(tmpl *template.Template, buf *bytes.Buffer, data any) error {
	if err := tmpl.Execute(buf, data); err != nil {
		return fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return nil
}
