package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
)

func TestComputeSalesAlignment(t *testing.T) {
	poles := []domain.Pole{{ID: "P1", Name: "Um"}, {ID: "P2", Name: "Dois"}, {ID: "P3", Name: "Três"}}
	sales := []domain.Sale{
		{PoleID: "P1", Partnership: "Parceiro Polo"},
		{PoleID: "P1", Partnership: "Comercial Interno"},
		{PoleID: "P1", Partnership: "Parceiro Polo"},
		{PoleID: "P2", Partnership: "Parceiro Comercial"},
		{PoleID: "", Partnership: "Parceiro Polo"},
		{PoleID: "P9", Partnership: "Parceiro Polo"},
	}

	got := ComputeSalesAlignment(poles, sales)

	assert.Equal(t, 4, got.Matched)
	assert.Equal(t, 2, got.Unmatched)
	assert.Equal(t, 1, got.PolesWithoutSales)
	require.Len(t, got.Poles, 3)
	assert.Equal(t, "P1", got.Poles[0].PoleID)
	assert.Equal(t, 3, got.Poles[0].Sales)
	assert.InDelta(t, 75, got.Poles[0].Share.Value, 1e-9)
	assert.Equal(t, []Count{
		{Key: "Parceiro Polo", Count: 2, Share: domain.NewRatio(2, 3).Percent()},
		{Key: "Comercial Interno", Count: 1, Share: domain.NewRatio(1, 3).Percent()},
	}, got.Poles[0].ByPartnership)

	keys := []string{got.UnmatchedByKey[0].Key, got.UnmatchedByKey[1].Key}
	assert.ElementsMatch(t, []string{MissingKey, "P9"}, keys)
}

// Без связанных продаж доля не определена.
func TestComputeSalesAlignment_NoMatches(t *testing.T) {
	got := ComputeSalesAlignment([]domain.Pole{{ID: "P1"}}, []domain.Sale{{PoleID: "X"}})

	require.Len(t, got.Poles, 1)
	assert.False(t, got.Poles[0].Share.Defined)
	assert.Equal(t, 1, got.Unmatched)
}

func TestComputeStudentAlignment(t *testing.T) {
	students := []domain.Student{
		{PoleID: "A", NearestPoleID: "A", UF: "SP"},
		{PoleID: "A", NearestPoleID: "B", UF: "SP"},
		{PoleID: "A", NearestPoleID: "B", UF: "RJ"},
		{PoleID: "C", NearestPoleID: "B", UF: "SP"},
		{PoleID: "C", NearestPoleID: ""},
	}

	got := ComputeStudentAlignment(students)

	assert.Equal(t, 4, got.Compared)
	assert.Equal(t, 1, got.Incomplete)
	assert.Equal(t, 1, got.Aligned)
	assert.Equal(t, 3, got.Misaligned)
	assert.InDelta(t, 25, got.AlignmentRate.Value, 1e-9)
	assert.Equal(t, []Migration{{From: "A", To: "B", Count: 2}, {From: "C", To: "B", Count: 1}}, got.Migrations)
	assert.Equal(t, "SP", got.MisalignedByUF[0].Key)
	assert.Equal(t, 2, got.MisalignedByUF[0].Count)
}

func TestComputeStudentAlignment_Empty(t *testing.T) {
	got := ComputeStudentAlignment(nil)

	assert.False(t, got.AlignmentRate.Defined)
	assert.Empty(t, got.Migrations)
}
