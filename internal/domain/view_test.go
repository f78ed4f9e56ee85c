package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadState_CanTransition(t *testing.T) {
	states := []LoadState{StateIdle, StateLoading, StateReady, StateError}
	allowed := map[LoadState][]LoadState{
		StateIdle:    {StateLoading},
		StateLoading: {StateReady, StateError},
		StateReady:   {StateLoading},
		StateError:   {StateLoading},
	}

	for _, from := range states {
		for _, to := range states {
			want := contains(allowed[from], to)
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func contains(list []LoadState, s LoadState) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestSection(t *testing.T) {
	for _, s := range AllSections {
		assert.True(t, s.Valid(), s)
		assert.NotEmpty(t, s.Title(), s)
		assert.Contains(t, s.Datasets(), DatasetPoles, "каждый раздел зависит от полюсов")
	}

	// Дополнительный набор не дублирует обязательный.
	for _, s := range AllSections {
		for _, name := range s.OptionalDatasets() {
			assert.NotContains(t, s.Datasets(), name, s)
		}
	}
	assert.Equal(t, []DatasetName{DatasetPoles, DatasetPopulation}, SectionOpportunities.Datasets())
	assert.Equal(t, []DatasetName{DatasetMunicipalities}, SectionOpportunities.OptionalDatasets())
	assert.Equal(t, []DatasetName{DatasetMunicipalities}, SectionStudents.OptionalDatasets())
	assert.Nil(t, SectionSales.OptionalDatasets())

	unknown := Section("finance")
	assert.False(t, unknown.Valid())
	assert.Nil(t, unknown.Datasets())
	assert.Nil(t, unknown.OptionalDatasets())
	assert.Empty(t, unknown.Title())
}

func TestDatasetName(t *testing.T) {
	n, err := ParseDatasetName("municipalities")
	assert.NoError(t, err)
	assert.Equal(t, DatasetMunicipalities, n)

	_, err = ParseDatasetName("finance")
	assert.ErrorIs(t, err, ErrUnknownDataset)

	ds := &Dataset{Name: DatasetStudents, Students: []Student{{CPF: "1"}, {CPF: "2"}}}
	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, 0, (*Dataset)(nil).Rows())
}

func TestRegionOf(t *testing.T) {
	tests := map[string]string{
		"SP":  "Sudeste",
		" ba": "Nordeste",
		"df":  "Centro-Oeste",
		"RS":  "Sul",
		"AM":  "Norte",
		"":    RegionUnknown,
		"XX":  RegionUnknown,
	}
	for uf, want := range tests {
		assert.Equal(t, want, RegionOf(uf), uf)
	}
}

func TestPoleKey(t *testing.T) {
	assert.Equal(t, "POLO CENTRO SP", PoleKey("  polo   Centro sp "))
}
