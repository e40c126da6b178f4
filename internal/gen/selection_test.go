package gen

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deriv-generator/internal/layout"
)

type mapSection map[string]string

func (m mapSection) IsSet(key string) bool {
	_, ok := m[key]
	return ok
}

func (m mapSection) GetString(key string) string {
	return m[key]
}

func fixtureSelections(t *testing.T) []Selection {
	t.Helper()

	sels, err := BuildSelections(layout.Default(), parseFixture(t))
	require.NoError(t, err)

	return sels
}

func TestBuildSelections_Order(t *testing.T) {
	sels := fixtureSelections(t)
	require.Len(t, sels, 24)

	first := sels[0]
	assert.Equal(t, "x", first.Direction)
	assert.Equal(t, "ddx", first.Section)
	assert.Equal(t, "First", first.Label)
	assert.Equal(t, "default_x_FirstDeriv", first.Variable)
	assert.Equal(t, []string{"First", "all"}, first.Keys)
	assert.Equal(t, "C2", first.Fallback)
	assert.Equal(t, []string{"C2", "W2", "C4", "S2"}, first.Schemes())

	upwindStag := sels[5]
	assert.Equal(t, "UpwindStag", upwindStag.Label)
	assert.Equal(t, []string{"UpwindStag", "Upwind", "all"}, upwindStag.Keys)
	assert.Equal(t, "U1", upwindStag.Fallback)

	secondStag := sels[3]
	assert.Equal(t, "C2", secondStag.Preseed)

	assert.Equal(t, "y", sels[8].Direction)
	assert.Equal(t, "default_z_FluxStagDeriv", sels[23].Variable)
}

func TestSelection_Resolve(t *testing.T) {
	sel := fixtureSelections(t)[1] // x FirstStag

	tests := []struct {
		name    string
		section OptionSection
		want    string
	}{
		{name: "nothing set", section: nil, want: "C2"},
		{name: "empty section", section: mapSection{}, want: "C2"},
		{name: "all", section: mapSection{"all": "C4"}, want: "C4"},
		{name: "kind beats all", section: mapSection{"all": "C4", "First": "W2"}, want: "W2"},
		{
			name:    "staggered key first",
			section: mapSection{"all": "C4", "First": "W2", "FirstStag": "c2"},
			want:    "c2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sel.Resolve(tt.section))
		})
	}
}

func TestSelection_ResolveViper(t *testing.T) {
	v := viper.New()
	v.Set("Upwind", "U3")

	sels := fixtureSelections(t)
	assert.Equal(t, "U3", sels[4].Resolve(v))
	assert.Equal(t, "U3", sels[5].Resolve(v))
	assert.Equal(t, "U1", sels[6].Resolve(v))
}

func TestSelection_Match(t *testing.T) {
	sel := fixtureSelections(t)[0]

	opt, err := sel.Match("c4")
	require.NoError(t, err)
	assert.Equal(t, "DIFF_C4", opt.Method)
	assert.Equal(t, "Fourth order central", opt.Description)

	_, err = sel.Match("C3")
	require.Error(t, err)

	var unknown *UnknownSchemeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "C3", unknown.Scheme)
	assert.Equal(t, "x", unknown.Direction)
	assert.Equal(t, "First", unknown.Label)
	assert.Equal(t, []string{"C2", "W2", "C4", "S2"}, unknown.Options)
	assert.Contains(t, unknown.Suggestions, "C2")
	assert.Contains(t, err.Error(), "options are: C2, W2, C4, S2")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestSelection_MatchNoSuggestion(t *testing.T) {
	_, err := fixtureSelections(t)[0].Match("spectral")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestSchemeName(t *testing.T) {
	assert.Equal(t, "C2", SchemeName("DIFF_C2"))
	assert.Equal(t, "", SchemeName("DIF"))
}
