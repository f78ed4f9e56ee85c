package processor

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
)

// Полюс "1" получает двух учеников, ученик полюса "2" уходит в unmatched.
func TestComputeCoverage_Scenario(t *testing.T) {
	poles := []domain.Pole{{ID: "1", Name: "A"}}
	students := []domain.Student{{PoleID: "1"}, {PoleID: "1"}, {PoleID: "2"}}

	got := ComputeCoverage(poles, students)

	require.Len(t, got.Poles, 1)
	assert.Equal(t, "1", got.Poles[0].PoleID)
	assert.Equal(t, 2, got.Poles[0].Students)
	assert.Equal(t, 2, got.Matched)
	assert.Equal(t, 1, got.Unmatched)
	assert.Equal(t, []Count{{Key: "2", Count: 1, Share: domain.NewRatio(1, 1).Percent()}}, got.UnmatchedByKey)
	// вместимость не задана — отношение не определено
	assert.False(t, got.Poles[0].Coverage.Defined)
	assert.Equal(t, 1, got.UndefinedRatios)
}

func TestComputeCoverage(t *testing.T) {
	tests := []struct {
		name          string
		poles         []domain.Pole
		students      []domain.Student
		wantStudents  map[string]int
		wantUnmatched int
		wantCoverage  map[string]domain.Ratio
	}{
		{
			name:          "пусто",
			wantStudents:  map[string]int{},
			wantCoverage:  map[string]domain.Ratio{},
			wantUnmatched: 0,
		},
		{
			name:          "полюс без учеников остаётся в таблице",
			poles:         []domain.Pole{{ID: "P1", Capacity: 10}, {ID: "P2", Capacity: 4}},
			students:      []domain.Student{{PoleID: "p1"}, {PoleID: " P1 "}},
			wantStudents:  map[string]int{"P1": 2, "P2": 0},
			wantCoverage:  map[string]domain.Ratio{"P1": {Value: 0.2, Defined: true}, "P2": {Value: 0, Defined: true}},
			wantUnmatched: 0,
		},
		{
			name:          "ученики без полюса считаются отдельно",
			poles:         []domain.Pole{{ID: "P1", Capacity: 1}},
			students:      []domain.Student{{PoleID: ""}, {PoleID: "X"}, {PoleID: "P1"}},
			wantStudents:  map[string]int{"P1": 1},
			wantCoverage:  map[string]domain.Ratio{"P1": {Value: 1, Defined: true}},
			wantUnmatched: 2,
		},
		{
			name:          "повторный полюс учитывается один раз",
			poles:         []domain.Pole{{ID: "P1", Capacity: 2}, {ID: "P1", Capacity: 99}},
			students:      []domain.Student{{PoleID: "P1"}},
			wantStudents:  map[string]int{"P1": 1},
			wantCoverage:  map[string]domain.Ratio{"P1": {Value: 0.5, Defined: true}},
			wantUnmatched: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCoverage(tt.poles, tt.students)

			students := map[string]int{}
			coverage := map[string]domain.Ratio{}
			for _, p := range got.Poles {
				students[p.PoleID] = p.Students
				coverage[p.PoleID] = p.Coverage
			}
			assert.Equal(t, tt.wantStudents, students)
			assert.Equal(t, tt.wantCoverage, coverage)
			assert.Equal(t, tt.wantUnmatched, got.Unmatched)
			assert.Equal(t, len(tt.students), got.Matched+got.Unmatched)
		})
	}
}

// Повторный вызов на тех же данных даёт тот же результат, входные данные не меняются.
func TestComputeCoverage_Deterministic(t *testing.T) {
	poles := []domain.Pole{{ID: "B", Capacity: 3}, {ID: "A", Capacity: 0}, {ID: "C", Capacity: 1}}
	students := []domain.Student{{PoleID: "A"}, {PoleID: "B"}, {PoleID: "Z"}, {PoleID: "Y"}, {PoleID: "Z"}, {PoleID: "C"}}
	polesCopy := slices.Clone(poles)
	studentsCopy := slices.Clone(students)

	first := ComputeCoverage(poles, students)
	second := ComputeCoverage(poles, students)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("ComputeCoverage is not deterministic (-first +second):\n%s", diff)
	}
	assert.Equal(t, polesCopy, poles)
	assert.Equal(t, studentsCopy, students)
	assert.Equal(t, []string{"A", "B", "C"}, []string{first.Poles[0].PoleID, first.Poles[1].PoleID, first.Poles[2].PoleID})
	assert.Equal(t, "Z", first.UnmatchedByKey[0].Key)
}

// Неопределённое отношение сериализуется маркером, а не NaN.
func TestComputeCoverage_UndefinedMarshalsAsMarker(t *testing.T) {
	got := ComputeCoverage([]domain.Pole{{ID: "A"}}, nil)

	b, err := json.Marshal(got.Poles[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"coverage":"undefined"`)
	assert.NotContains(t, string(b), "NaN")
}

func TestComputeMunicipalCoverage(t *testing.T) {
	poles := []domain.Pole{{ID: "P", City: "Recife"}}
	ms := []domain.Municipality{
		{Name: "Recife", Region: "Nordeste", DistanceKm: km(2), TotalStudents: 10},
		{Name: "Olinda", Region: "Nordeste", DistanceKm: km(40), TotalStudents: 5},
		{Name: "Caruaru", Region: "Nordeste", DistanceKm: km(130), TotalStudents: 3},
		{Name: "Campinas", Region: "Sudeste", DistanceKm: km(90), TotalStudents: 2},
		{Name: "Sem dado", Region: "Sudeste"},
	}

	got := ComputeMunicipalCoverage(poles, ms, CoverageRadiusKm)

	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 3, got.Covered)
	assert.Equal(t, 1, got.NoDistance)
	assert.InDelta(t, 75, got.Coverage.Value, 1e-9)
	assert.InDelta(t, 65.5, got.MeanDistanceKm.Value, 1e-9)
	assert.Equal(t, 17, got.StudentsCovered)
	assert.Equal(t, 20, got.StudentsTotal)

	require.Len(t, got.ByRegion, 2)
	assert.Equal(t, "Nordeste", got.ByRegion[0].Region)
	assert.Equal(t, 3, got.ByRegion[0].Municipalities)
	assert.Equal(t, 2, got.ByRegion[0].Covered)

	types := map[string]int{}
	for _, c := range got.ByType {
		types[c.Key] = c.Count
	}
	assert.Equal(t, map[string]int{
		string(CoverageWithPole): 1,
		string(CoverageNear):     1,
		string(CoverageExtended): 1,
		string(CoverageOutside):  1,
		string(CoverageNoData):   1,
	}, types)
}

func TestComputeMunicipalCoverage_Empty(t *testing.T) {
	got := ComputeMunicipalCoverage(nil, nil, CoverageRadiusKm)

	assert.False(t, got.Coverage.Defined)
	assert.False(t, got.MeanDistanceKm.Defined)
	assert.Empty(t, got.ByRegion)
}

func TestClassifyMunicipality(t *testing.T) {
	cities := map[string]bool{"RECIFE": true}
	tests := []struct {
		name string
		m    domain.Municipality
		want CoverageType
	}{
		{name: "полюс в городе", m: domain.Municipality{Name: "Recife"}, want: CoverageWithPole},
		{name: "нет расстояния", m: domain.Municipality{Name: "Olinda"}, want: CoverageNoData},
		{name: "ноль километров", m: domain.Municipality{Name: "Olinda", DistanceKm: km(0)}, want: CoverageNear},
		{name: "50 км", m: domain.Municipality{Name: "Olinda", DistanceKm: km(50)}, want: CoverageNear},
		{name: "100 км", m: domain.Municipality{Name: "Olinda", DistanceKm: km(100)}, want: CoverageExtended},
		{name: "дальше радиуса", m: domain.Municipality{Name: "Olinda", DistanceKm: km(100.1)}, want: CoverageOutside},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyMunicipality(tt.m, cities))
		})
	}
}

// Муниципалитет в 0 км от полюса покрыт и входит в среднее расстояние.
func TestComputeMunicipalCoverage_ZeroDistance(t *testing.T) {
	got := ComputeMunicipalCoverage(nil, []domain.Municipality{
		{Name: "Sede", Region: "Sul", DistanceKm: km(0), TotalStudents: 3},
		{Name: "Sem dado", Region: "Sul"},
	}, CoverageRadiusKm)

	assert.Equal(t, 1, got.Total)
	assert.Equal(t, 1, got.Covered)
	assert.Equal(t, 1, got.NoDistance)
	assert.True(t, got.MeanDistanceKm.Defined)
	assert.Zero(t, got.MeanDistanceKm.Value)
}

func TestCoverageTable_Within(t *testing.T) {
	poles := []domain.Pole{
		{ID: "RIO", UF: "RJ", Region: "Sudeste"},
		{ID: "SAMPA", UF: "SP", Region: "Sudeste", Capacity: 5},
		{ID: "BH", UF: "MG", Region: "Sudeste"},
	}
	students := []domain.Student{{UF: "SP", PoleID: "RIO"}}

	got := ComputeCoverage(poles, students).Within(domain.Filters{UF: "SP"})

	assert.Equal(t, 1, got.Matched)
	assert.Zero(t, got.Unmatched)
	require.Len(t, got.Poles, 2)
	assert.Equal(t, "RIO", got.Poles[0].PoleID)
	assert.Equal(t, "SAMPA", got.Poles[1].PoleID)
	assert.Equal(t, 1, got.UndefinedRatios, "у RIO вместимость не задана, BH отфильтрован")
}
