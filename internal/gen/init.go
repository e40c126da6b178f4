package gen

import (
	"fmt"
	"strings"
)

type initKey struct {
	Lead string
	Key  string
}

type initOption struct {
	Lead   string
	Scheme string
	Method string
	Log    string
}

type initSelection struct {
	Section  string
	Label    string
	Variable string
	Preseed  string
	Fallback string
	Keys     []initKey
	Options  []initOption
	Unknown  string
}

type initDirection struct {
	Dir        string
	Section    string
	Banner     string
	Selections []initSelection
}

type initData struct {
	Mesh         string
	Declarations []string
	Directions   []initDirection
}

func chainLead(i int) string {
	if i == 0 {
		return "if"
	}

	return "} else if"
}

func buildInitSelection(s Selection) initSelection {
	out := initSelection{
		Section:  s.Section,
		Label:    s.Label,
		Variable: s.Variable,
		Preseed:  s.Preseed,
		Fallback: s.Fallback,
	}

	for i, k := range s.Keys {
		out.Keys = append(out.Keys, initKey{Lead: chainLead(i), Key: k})
	}

	var list strings.Builder

	for i, o := range s.Options {
		out.Options = append(out.Options, initOption{
			Lead:   chainLead(i),
			Scheme: o.Scheme,
			Method: o.Method,
			Log:    cString(fmt.Sprintf("\t%15s : %s\n", s.Label, literalPercent(o.Description))),
		})
		list.WriteString("\n * " + o.Scheme)
	}

	out.Unknown = cString(fmt.Sprintf("Don't know what diff method to use for %s (direction %s, tried to use %%s)!\nOptions are:%s",
		s.Label, s.Direction, list.String()))

	return out
}

// buildInit groups the selections by direction, keeping their order.
func buildInit(mesh string, sels []Selection) initData {
	data := initData{Mesh: mesh}

	for _, s := range sels {
		data.Declarations = append(data.Declarations, s.Variable)

		n := len(data.Directions)
		if n == 0 || data.Directions[n-1].Dir != s.Direction {
			data.Directions = append(data.Directions, initDirection{
				Dir:     s.Direction,
				Section: s.Section,
				Banner:  cString(fmt.Sprintf("\tSetting derivatives for direction %s:\n", s.Direction)),
			})
			n++
		}

		data.Directions[n-1].Selections = append(data.Directions[n-1].Selections, buildInitSelection(s))
	}

	return data
}
