package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
)

func TestLocateStudents(t *testing.T) {
	ms := []domain.Municipality{
		{Name: "São Paulo", UF: "SP", Lat: km(-23.55), Lng: km(-46.63)},
		{Name: "Campinas", UF: "SP", Lat: km(-22.9), Lng: km(-47.06)},
		// одноимённый город в другом штате
		{Name: "Campinas", UF: "GO", Lat: km(-16.6), Lng: km(-49.2)},
		{Name: "Sem Coordenadas", UF: "SP"},
	}
	students := []domain.Student{
		{CPF: "1", City: " são paulo ", UF: "sp"},
		{CPF: "2", City: "Campinas", UF: "SP"},
		{CPF: "3", City: "Campinas", UF: "SP"},
		{CPF: "4", City: "Campinas", UF: "GO"},
		{CPF: "5", City: "Sem Coordenadas", UF: "SP"},
		{CPF: "6", City: "Santos", UF: "SP"},
	}

	located := LocateStudents(students, ms)

	require.Len(t, located, len(students))
	assert.Nil(t, students[0].Lat, "исходный срез не меняется")
	require.NotNil(t, located[0].Lat)
	assert.InDelta(t, -23.55, *located[0].Lat, 1e-9)
	assert.InDelta(t, -16.6, *located[3].Lat, 1e-9)
	assert.Nil(t, located[4].Lat)
	assert.Nil(t, located[5].Lng)

	got := ComputeStudentLocations(located)
	assert.Equal(t, 4, got.Located)
	assert.Equal(t, 2, got.Unlocated)
	require.Len(t, got.Points, 3)
	assert.Equal(t, StudentPoint{City: "Campinas", UF: "SP", Lat: -22.9, Lng: -47.06, Students: 2}, got.Points[0])
	// при равном числе учеников — по UF
	assert.Equal(t, "GO", got.Points[1].UF)
	assert.Equal(t, "SP", got.Points[2].UF)
}

func TestComputeStudentLocations_NoMunicipalities(t *testing.T) {
	got := ComputeStudentLocations(LocateStudents([]domain.Student{{CPF: "1", City: "Recife", UF: "PE"}}, nil))

	assert.Zero(t, got.Located)
	assert.Equal(t, 1, got.Unlocated)
	assert.Empty(t, got.Points)
}
