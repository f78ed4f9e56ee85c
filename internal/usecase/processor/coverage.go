package processor

import (
	"cmp"
	"slices"
	"strings"

	"macroDash/internal/domain"
)

// CoverageRadiusKm — муниципалитет считается покрытым, если ближайший полюс не дальше этого расстояния.
const CoverageRadiusKm = 100

// PoleCoverage — ученики полюса относительно его вместимости.
type PoleCoverage struct {
	PoleID   string       `json:"pole_id"`
	Name     string       `json:"name"`
	City     string       `json:"city,omitempty"`
	UF       string       `json:"uf,omitempty"`
	Region   string       `json:"region"`
	Students int          `json:"students"`
	Capacity int          `json:"capacity"`
	Coverage domain.Ratio `json:"coverage"`
}

// CoverageTable — результат связи учеников с полюсами.
type CoverageTable struct {
	Poles []PoleCoverage `json:"poles"`
	// Matched — ученики, чей полюс найден.
	Matched int `json:"matched"`
	// Unmatched — ученики без полюса или с неизвестным полюсом; в Poles не входят.
	Unmatched      int     `json:"unmatched"`
	UnmatchedByKey []Count `json:"unmatched_by_key,omitempty"`
	// UndefinedRatios — полюсы, у которых вместимость не задана.
	UndefinedRatios int `json:"undefined_ratios"`
}

// ComputeCoverage связывает учеников с полюсами по ключу полюса.
// Порядок полюсов: по убыванию числа учеников, затем по ключу.
func ComputeCoverage(poles []domain.Pole, students []domain.Student) CoverageTable {
	index := make(map[string]int, len(poles))
	rows := make([]PoleCoverage, 0, len(poles))
	for _, p := range poles {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, PoleCoverage{PoleID: p.ID, Name: p.Name, City: p.City, UF: p.UF, Region: p.Region, Capacity: p.Capacity})
	}

	var t CoverageTable
	unmatched := make(map[string]int)
	for _, s := range students {
		key := domain.PoleKey(s.PoleID)
		i, ok := index[key]
		if !ok || key == "" {
			t.Unmatched++
			unmatched[unmatchedKey(key)]++
			continue
		}
		rows[i].Students++
		t.Matched++
	}

	for i := range rows {
		rows[i].Coverage = domain.NewRatio(float64(rows[i].Students), float64(rows[i].Capacity))
		if !rows[i].Coverage.Defined {
			t.UndefinedRatios++
		}
	}
	slices.SortStableFunc(rows, func(a, b PoleCoverage) int {
		if c := cmp.Compare(b.Students, a.Students); c != 0 {
			return c
		}
		return cmp.Compare(a.PoleID, b.PoleID)
	})
	t.Poles = rows
	t.UnmatchedByKey = ranking(unmatched, t.Unmatched)
	return t
}

// MissingKey — ключ, под которым считаются записи без полюса.
const MissingKey = "(sem polo)"

func unmatchedKey(key string) string {
	if key == "" {
		return MissingKey
	}
	return key
}

// CoverageType — категория доступности муниципалитета.
type CoverageType string

// Категории доступности.
const (
	CoverageWithPole CoverageType = "Com Polo"
	CoverageNear     CoverageType = "Cobertura Próxima"
	CoverageExtended CoverageType = "Cobertura Estendida"
	CoverageOutside  CoverageType = "Fora da Cobertura"
	CoverageNoData   CoverageType = "Sem Dados"
)

// ClassifyMunicipality относит муниципалитет к категории: полюс в городе, до 50 км, до 100 км, дальше.
// Без расстояния — «Sem Dados»; 0 км — ближняя зона.
func ClassifyMunicipality(m domain.Municipality, poleCities map[string]bool) CoverageType {
	switch {
	case poleCities[cityKey(m.Name)]:
		return CoverageWithPole
	case m.DistanceKm == nil:
		return CoverageNoData
	case *m.DistanceKm <= 50:
		return CoverageNear
	case *m.DistanceKm <= CoverageRadiusKm:
		return CoverageExtended
	}
	return CoverageOutside
}

// RegionEfficiency — покрытие муниципалитетов внутри региона.
type RegionEfficiency struct {
	Region         string       `json:"region"`
	Municipalities int          `json:"municipalities"`
	Covered        int          `json:"covered"`
	Coverage       domain.Ratio `json:"coverage_pct"`
	MeanDistanceKm domain.Ratio `json:"mean_distance_km"`
	Students       int          `json:"students"`
}

// MunicipalCoverage — покрытие муниципалитетов полюсами в радиусе.
type MunicipalCoverage struct {
	RadiusKm float64 `json:"radius_km"`
	// Total — муниципалитеты с известным расстоянием; без него в расчёт не входят и считаются в NoDistance.
	Total           int                `json:"total"`
	Covered         int                `json:"covered"`
	NoDistance      int                `json:"no_distance"`
	Coverage        domain.Ratio       `json:"coverage_pct"`
	MeanDistanceKm  domain.Ratio       `json:"mean_distance_km"`
	StudentsCovered int                `json:"students_covered"`
	StudentsTotal   int                `json:"students_total"`
	ByType          []Count            `json:"by_type"`
	ByRegion        []RegionEfficiency `json:"by_region"`
}

// ComputeMunicipalCoverage считает покрытие муниципалитетов в радиусе radiusKm.
// poles нужны только для категории «Com Polo».
func ComputeMunicipalCoverage(poles []domain.Pole, ms []domain.Municipality, radiusKm float64) MunicipalCoverage {
	mc := MunicipalCoverage{RadiusKm: radiusKm}
	cities := poleCities(poles)

	type acc struct {
		total, covered, students int
		dist                     float64
	}
	regions := make(map[string]*acc)
	types := make(map[string]int)
	var dist float64

	for _, m := range ms {
		types[string(ClassifyMunicipality(m, cities))]++
		if m.DistanceKm == nil {
			mc.NoDistance++
			continue
		}
		d := *m.DistanceKm
		r := regions[m.Region]
		if r == nil {
			r = &acc{}
			regions[m.Region] = r
		}
		mc.Total++
		r.total++
		dist += d
		r.dist += d
		mc.StudentsTotal += m.TotalStudents
		r.students += m.TotalStudents
		if d <= radiusKm {
			mc.Covered++
			r.covered++
			mc.StudentsCovered += m.TotalStudents
		}
	}

	mc.Coverage = domain.NewRatio(float64(mc.Covered), float64(mc.Total)).Percent()
	mc.MeanDistanceKm = domain.NewRatio(dist, float64(mc.Total))
	mc.ByType = ranking(types, len(ms))
	for name, r := range regions {
		mc.ByRegion = append(mc.ByRegion, RegionEfficiency{
			Region:         name,
			Municipalities: r.total,
			Covered:        r.covered,
			Coverage:       domain.NewRatio(float64(r.covered), float64(r.total)).Percent(),
			MeanDistanceKm: domain.NewRatio(r.dist, float64(r.total)),
			Students:       r.students,
		})
	}
	slices.SortFunc(mc.ByRegion, func(a, b RegionEfficiency) int { return cmp.Compare(a.Region, b.Region) })
	return mc
}

func cityKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func poleCities(poles []domain.Pole) map[string]bool {
	cities := make(map[string]bool, len(poles))
	for _, p := range poles {
		if k := cityKey(p.City); k != "" {
			cities[k] = true
		}
	}
	return cities
}
