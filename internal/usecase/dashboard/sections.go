package dashboard

import (
	"cmp"
	"fmt"
	"slices"

	"macroDash/internal/domain"
	"macroDash/internal/usecase/processor"
)

// OverviewView — данные раздела «Visão geral».
type OverviewView struct {
	Overview  processor.Overview          `json:"overview"`
	Coverage  processor.CoverageTable     `json:"coverage"`
	Municipal processor.MunicipalCoverage `json:"municipal"`
}

// GeographicView — данные для карты полюсов и покрытия муниципалитетов.
type GeographicView struct {
	Poles          []domain.Pole               `json:"poles"`
	Municipalities []domain.Municipality       `json:"municipalities"`
	Municipal      processor.MunicipalCoverage `json:"municipal"`
}

// StudentsView — профиль учеников, их распределение по полюсам и выравнивание с ближайшим полюсом.
type StudentsView struct {
	Profile   processor.StudentProfile   `json:"profile"`
	Coverage  processor.CoverageTable    `json:"coverage"`
	Alignment processor.StudentAlignment `json:"alignment"`
	// Locations пуст, если таблица муниципалитетов недоступна.
	Locations processor.StudentLocations `json:"locations"`
}

// SalesView — сводка продаж и их связь с полюсами.
type SalesView struct {
	Summary   processor.SalesSummary   `json:"summary"`
	Alignment processor.AlignmentTable `json:"alignment"`
}

// OpportunitiesView — города без полюса, ранжированные по населению.
type OpportunitiesView struct {
	Opportunities processor.Opportunities `json:"opportunities"`
}

type snapshots map[domain.DatasetName]*domain.Snapshot

func (s snapshots) dataset(name domain.DatasetName) *domain.Dataset {
	if snap, ok := s[name]; ok && snap != nil && snap.Dataset != nil {
		return snap.Dataset
	}
	return &domain.Dataset{Name: name}
}

// build вычисляет данные раздела и нефатальные замечания к ним. Снимки не изменяются.
// Ученики и продажи связываются со всеми полюсами: ученик из SP, приписанный к полюсу в RJ,
// под фильтром uf=SP остаётся связанным.
func build(section domain.Section, snaps snapshots, f domain.Filters) (any, []domain.Warning) {
	allPoles := snaps.dataset(domain.DatasetPoles).Poles
	poles := processor.FilterPoles(allPoles, f)

	switch section {
	case domain.SectionOverview:
		ms := processor.FilterMunicipalities(snaps.dataset(domain.DatasetMunicipalities).Municipalities, f)
		students := processor.FilterStudents(snaps.dataset(domain.DatasetStudents).Students, f)
		v := OverviewView{
			Overview:  processor.ComputeOverview(poles, ms, students),
			Coverage:  processor.ComputeCoverage(allPoles, students).Within(f),
			Municipal: processor.ComputeMunicipalCoverage(poles, ms, processor.CoverageRadiusKm),
		}
		v.Coverage.Poles = topN(v.Coverage.Poles, f.TopN)
		return v, coverageWarnings(v.Coverage)

	case domain.SectionGeographic:
		ms := processor.FilterMunicipalities(snaps.dataset(domain.DatasetMunicipalities).Municipalities, f)
		v := GeographicView{
			Poles:     poles,
			Municipal: processor.ComputeMunicipalCoverage(poles, ms, processor.CoverageRadiusKm),
		}
		ranked := slices.Clone(ms)
		slices.SortStableFunc(ranked, func(a, b domain.Municipality) int {
			return cmp.Compare(b.TotalStudents, a.TotalStudents)
		})
		v.Municipalities = topN(ranked, f.TopN)
		return v, ratioWarnings(domain.DatasetMunicipalities, v.Municipal.Coverage)

	case domain.SectionStudents:
		students := processor.FilterStudents(snaps.dataset(domain.DatasetStudents).Students, f)
		students = processor.LocateStudents(students, snaps.dataset(domain.DatasetMunicipalities).Municipalities)
		v := StudentsView{
			Profile:   processor.ComputeStudentProfile(students, f.TopN),
			Coverage:  processor.ComputeCoverage(allPoles, students).Within(f),
			Alignment: processor.ComputeStudentAlignment(students),
			Locations: processor.ComputeStudentLocations(students),
		}
		v.Coverage.Poles = topN(v.Coverage.Poles, f.TopN)
		v.Locations.Points = topN(v.Locations.Points, f.TopN)
		v.Alignment.Migrations = topN(v.Alignment.Migrations, f.TopN)
		warnings := coverageWarnings(v.Coverage)
		if v.Alignment.Incomplete > 0 {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnJoinMismatch,
				Dataset: domain.DatasetStudents,
				Message: fmt.Sprintf("%d alunos sem polo atual ou polo mais próximo", v.Alignment.Incomplete),
				Count:   v.Alignment.Incomplete,
			})
		}
		return v, append(warnings, ratioWarnings(domain.DatasetStudents, v.Alignment.AlignmentRate)...)

	case domain.SectionSales:
		sales := processor.FilterSales(snaps.dataset(domain.DatasetSales).Sales, f)
		v := SalesView{
			Summary:   processor.ComputeSalesSummary(sales, f.TopN),
			Alignment: processor.ComputeSalesAlignment(allPoles, sales).Within(f),
		}
		v.Alignment.Poles = topN(v.Alignment.Poles, f.TopN)
		var warnings []domain.Warning
		if v.Alignment.Unmatched > 0 {
			warnings = append(warnings, domain.Warning{
				Code:    domain.WarnJoinMismatch,
				Dataset: domain.DatasetSales,
				Message: fmt.Sprintf("%d vendas sem polo correspondente", v.Alignment.Unmatched),
				Count:   v.Alignment.Unmatched,
			})
		}
		return v, append(warnings, ratioWarnings(domain.DatasetSales, v.Summary.MonthlyAverage)...)

	case domain.SectionOpportunities:
		ms := snaps.dataset(domain.DatasetMunicipalities).Municipalities
		population := snaps.dataset(domain.DatasetPopulation).Population
		v := OpportunitiesView{Opportunities: processor.ComputeOpportunities(allPoles, ms, population).Within(f)}
		v.Opportunities.Items = topN(v.Opportunities.Items, f.TopN)
		return v, ratioWarnings(domain.DatasetPopulation, v.Opportunities.PopulationShare)
	}
	return nil, nil
}

func coverageWarnings(t processor.CoverageTable) []domain.Warning {
	var out []domain.Warning
	if t.Unmatched > 0 {
		out = append(out, domain.Warning{
			Code:    domain.WarnJoinMismatch,
			Dataset: domain.DatasetStudents,
			Message: fmt.Sprintf("%d alunos sem polo correspondente", t.Unmatched),
			Count:   t.Unmatched,
		})
	}
	if t.UndefinedRatios > 0 {
		out = append(out, domain.Warning{
			Code:    domain.WarnUndefinedRatio,
			Dataset: domain.DatasetPoles,
			Message: fmt.Sprintf("%d polos sem capacidade definida: cobertura indefinida", t.UndefinedRatios),
			Count:   t.UndefinedRatios,
		})
	}
	return out
}

func ratioWarnings(name domain.DatasetName, ratios ...domain.Ratio) []domain.Warning {
	n := 0
	for _, r := range ratios {
		if !r.Defined {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return []domain.Warning{{
		Code:    domain.WarnUndefinedRatio,
		Dataset: name,
		Message: "sem dados suficientes para calcular o indicador",
		Count:   n,
	}}
}

// topN обрезает копию среза; исходный срез не меняется.
func topN[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return slices.Clone(items[:n])
}
