package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const householdYAML = `
scenario: retirement
endYear: 2040
items:
  - type: person
    name: spouse1
    start: 2025-01-01
    birth: 1967-03-15
    sex: female
  - type: asset
    name: Brokerage
    start: 2025-01-01
    value: 250000
    rate: 1.06
  - type: income
    name: Salary
    start: 2025-01-01
    value: 8500
    frequency: monthly
  - type: transfer
    name: Paycheck
    start: 2025-01-01
    spec: Salary
  - type: expense
    name: Living
    start: 2025-01-01
    value: 6000
    frequency: monthly
    from: Paycheck
`

func TestLoadHousehold(t *testing.T) {
	sc, f, err := NewLoader().Load([]byte(householdYAML))
	require.NoError(t, err)

	assert.Equal(t, "retirement", f.Scenario)
	assert.Equal(t, 2040, f.EndYear)
	require.Len(t, f.Items, 5)

	require.NotNil(t, sc.Spouse1)
	assert.Equal(t, "spouse1", sc.Spouse1.Name)
	assert.NotNil(t, sc.Item("asset:Brokerage"))
	assert.NotNil(t, sc.Item("transfer:Paycheck"))
	assert.Equal(t, time.Date(2041, time.January, 1, 0, 0, 0, 0, time.UTC), sc.Range.End)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "household.yaml")
	require.NoError(t, os.WriteFile(path, []byte(householdYAML), 0o644))

	sc, _, err := NewLoader().LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, sc.Item("income:Salary"))

	_, _, err = NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadDefaultsScenarioName(t *testing.T) {
	doc := `
endYear: 2030
items:
  - type: person
    name: spouse1
    start: 2025-01-01
    birth: 1967-03-15
    sex: female
`
	_, f, err := NewLoader().Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "base", f.Scenario)
}

func TestLoadEndYearFromEndDate(t *testing.T) {
	doc := `
end: 2035-06-30
items:
  - type: person
    name: spouse1
    start: 2025-01-01
    birth: 1967-03-15
    sex: female
`
	_, f, err := NewLoader().Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 2035, f.EndYear)
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no horizon",
			doc:  "items:\n  - type: person\n    name: a\n    start: 2025-01-01\n    birth: 1960-01-01\n    sex: male\n",
			want: "endYear or end date",
		},
		{
			name: "no items",
			doc:  "endYear: 2030\n",
			want: "at least one item",
		},
		{
			name: "unknown type",
			doc:  "endYear: 2030\nitems:\n  - type: gadget\n    name: a\n    start: 2025-01-01\n",
			want: "gadget",
		},
		{
			name: "missing name",
			doc:  "endYear: 2030\nitems:\n  - type: asset\n    start: 2025-01-01\n",
			want: "name is required",
		},
		{
			name: "missing start",
			doc:  "endYear: 2030\nitems:\n  - type: asset\n    name: a\n",
			want: "start date is required",
		},
		{
			name: "person without birth",
			doc:  "endYear: 2030\nitems:\n  - type: person\n    name: spouse1\n    start: 2025-01-01\n    sex: male\n",
			want: "birth date is required",
		},
		{
			name: "person without sex",
			doc:  "endYear: 2030\nitems:\n  - type: person\n    name: spouse1\n    start: 2025-01-01\n    birth: 1960-01-01\n",
			want: "sex is required",
		},
		{
			name: "no person",
			doc:  "endYear: 2030\nitems:\n  - type: asset\n    name: a\n    start: 2025-01-01\n    value: 1\n",
			want: "at least one person",
		},
		{
			name: "bad yaml",
			doc:  "items: [",
			want: "failed to parse YAML",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := NewLoader().Load([]byte(tc.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
