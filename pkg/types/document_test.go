// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMap_Keys(t *testing.T) {
	tests := []struct {
		name string
		m    SectionMap
		want []string
	}{
		{
			name: "unique headers unchanged",
			m:    SectionMap{{Header: "Introduction"}, {Header: "Methods"}},
			want: []string{"Introduction", "Methods"},
		},
		{
			name: "repeats numbered from two",
			m:    SectionMap{{Header: "A"}, {Header: "B"}, {Header: "A"}, {Header: "A"}},
			want: []string{"A", "B", "A (2)", "A (3)"},
		},
		{
			name: "suffix already taken by a real header",
			m:    SectionMap{{Header: "A (2)"}, {Header: "A"}, {Header: "A"}},
			want: []string{"A (2)", "A", "A (3)"},
		},
		{
			name: "real header collides with an earlier suffix",
			m:    SectionMap{{Header: "A"}, {Header: "A"}, {Header: "A (2)"}},
			want: []string{"A", "A (2)", "A (2) (2)"},
		},
		{
			name: "empty",
			m:    SectionMap{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.m.Keys())
		})
	}
}

func TestSectionMap_Lookup(t *testing.T) {
	m := SectionMap{
		{Header: "Methods", Body: "first"},
		{Header: "Results", Body: "r"},
		{Header: "Methods", Body: "second"},
	}

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, []string{"Methods", "Results", "Methods"}, m.Headers())

	body, ok := m.Get("Methods")
	assert.True(t, ok)
	assert.Equal(t, "first", body)

	_, ok = m.Get("Discussion")
	assert.False(t, ok)
}

func TestSectionMap_MarshalJSON(t *testing.T) {
	m := SectionMap{
		{Header: "Methods", Body: "a < b & c"},
		{Header: "Methods", Body: "Ω"},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]string{"Methods": "a < b & c", "Methods (2)": "Ω"}, decoded)

	raw, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"Methods":"a < b & c","Methods (2)":"Ω"}`, string(raw))
}

func TestPreprocessConfig_WantsSections(t *testing.T) {
	assert.False(t, PreprocessConfig{}.WantsSections())
	assert.True(t, PreprocessConfig{SectionsPath: "out.json"}.WantsSections())
}
