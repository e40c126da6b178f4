package gen

import (
	"errors"
	"fmt"
	"strings"

	"deriv-generator/internal/layout"
	"deriv-generator/internal/match"
	"deriv-generator/internal/table"
)

var (
	ErrMissingTable       = errors.New("missing method table")
	ErrMissingDescription = errors.New("method has no description")
)

const (
	// schemePrefixLen is the length of the DIFF_ prefix of method names.
	schemePrefixLen = 5
	allKey          = "all"
	maxSuggestions  = 3
)

// SchemeName strips the namespace prefix from a method, DIFF_C2 -> C2.
func SchemeName(method string) string {
	return method[min(schemePrefixLen, len(method)):]
}

// SchemeOption is one method selectable by name.
type SchemeOption struct {
	Scheme      string
	Method      string
	Description string
}

// Selection is how the initializer picks the default method of one
// operator in one direction.
type Selection struct {
	Direction string
	// Section is the option section read, e.g. ddx.
	Section string
	// Label is the operator's option key, e.g. FirstStag.
	Label    string
	Variable string
	// Keys are tried in order; the first one set wins.
	Keys     []string
	Fallback string
	// Preseed is written before the key chain. Every path of the chain
	// assigns the name again, so it never reaches the result.
	Preseed string
	Options []SchemeOption
}

// OptionSection is the part of a configuration section the initializer
// reads. *viper.Viper satisfies it.
type OptionSection interface {
	IsSet(key string) bool
	GetString(key string) string
}

// Resolve returns the scheme name the emitted initializer picks when given
// sec. A nil section has no keys set.
func (s Selection) Resolve(sec OptionSection) string {
	if sec != nil {
		for _, key := range s.Keys {
			if sec.IsSet(key) {
				return sec.GetString(key)
			}
		}
	}

	return s.Fallback
}

// Match finds the option whose scheme equals name, ignoring case.
func (s Selection) Match(name string) (SchemeOption, error) {
	for _, o := range s.Options {
		if strings.EqualFold(name, o.Scheme) {
			return o, nil
		}
	}

	schemes := s.Schemes()

	return SchemeOption{}, &UnknownSchemeError{
		Scheme:      name,
		Direction:   s.Direction,
		Label:       s.Label,
		Options:     schemes,
		Suggestions: match.Suggest(name, schemes, maxSuggestions),
	}
}

// Schemes lists the selectable scheme names in table order.
func (s Selection) Schemes() []string {
	names := make([]string, len(s.Options))
	for i, o := range s.Options {
		names[i] = o.Scheme
	}

	return names
}

// UnknownSchemeError reports a configured scheme missing from the table.
type UnknownSchemeError struct {
	Scheme      string
	Direction   string
	Label       string
	Options     []string
	Suggestions []string
}

func (e *UnknownSchemeError) Error() string {
	msg := fmt.Sprintf("don't know what diff method to use for %s (direction %s, tried to use %s); options are: %s",
		e.Label, e.Direction, e.Scheme, strings.Join(e.Options, ", "))
	if len(e.Suggestions) > 0 {
		msg += "; did you mean " + strings.Join(e.Suggestions, " or ") + "?"
	}

	return msg
}

func selectionKeys(op layout.Operator) []string {
	if op.Staggered {
		return []string{op.Label(), op.Kind, allKey}
	}

	return []string{op.Kind, allKey}
}

// BuildSelections returns one selection per primary direction and operator,
// direction by direction.
func BuildSelections(l layout.Layout, m *table.Model) ([]Selection, error) {
	var sels []Selection

	for _, dir := range l.Primary().Directions {
		for _, op := range l.Operators() {
			t, ok := m.Table(op.Table)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrMissingTable, op.Table)
			}

			sel := Selection{
				Direction: dir,
				Section:   "dd" + dir,
				Label:     op.Label(),
				Variable:  op.DefaultVar(dir),
				Keys:      selectionKeys(op),
				Fallback:  op.Fallback,
				Preseed:   op.Preseed,
			}

			for _, e := range t.Entries() {
				desc, ok := m.Descriptions.Describe(e.Method)
				if !ok {
					return nil, fmt.Errorf("%w: %s (used by %s)", ErrMissingDescription, e.Method, t.Name)
				}

				sel.Options = append(sel.Options, SchemeOption{
					Scheme:      SchemeName(e.Method),
					Method:      e.Method,
					Description: desc,
				})
			}

			sels = append(sels, sel)
		}
	}

	return sels, nil
}
