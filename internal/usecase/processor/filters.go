package processor

import (
	"strings"

	"macroDash/internal/domain"
)

// Фильтры возвращают новые срезы, входные данные не изменяются.

func matchPlace(f domain.Filters, uf, region string) bool {
	if f.UF != "" && !strings.EqualFold(f.UF, uf) {
		return false
	}
	if f.Region != "" && !strings.EqualFold(f.Region, region) {
		return false
	}
	return true
}

// FilterPoles оставляет полюсы по UF и региону.
func FilterPoles(poles []domain.Pole, f domain.Filters) []domain.Pole {
	return filter(poles, func(p domain.Pole) bool { return matchPlace(f, p.UF, p.Region) })
}

// FilterStudents оставляет учеников по UF и региону.
func FilterStudents(students []domain.Student, f domain.Filters) []domain.Student {
	return filter(students, func(s domain.Student) bool { return matchPlace(f, s.UF, s.Region) })
}

// FilterSales оставляет продажи по UF и региону. Продажи без UF при фильтре по месту отбрасываются.
func FilterSales(sales []domain.Sale, f domain.Filters) []domain.Sale {
	return filter(sales, func(s domain.Sale) bool { return matchPlace(f, s.UF, s.Region) })
}

// FilterMunicipalities оставляет муниципалитеты по UF, региону и минимальному числу учеников.
func FilterMunicipalities(ms []domain.Municipality, f domain.Filters) []domain.Municipality {
	return filter(ms, func(m domain.Municipality) bool {
		return matchPlace(f, m.UF, m.Region) && m.TotalStudents >= f.MinStudents
	})
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Within оставляет в таблице полюсы из фильтра и полюсы, к которым привязан хотя бы один ученик выборки.
// Matched и Unmatched не меняются: связь считается по всем полюсам, фильтр сужает только строки.
func (t CoverageTable) Within(f domain.Filters) CoverageTable {
	t.Poles = filter(t.Poles, func(p PoleCoverage) bool { return p.Students > 0 || matchPlace(f, p.UF, p.Region) })
	t.UndefinedRatios = 0
	for _, p := range t.Poles {
		if !p.Coverage.Defined {
			t.UndefinedRatios++
		}
	}
	return t
}

// Within — то же для продаж: полюсы из фильтра и полюсы с продажами выборки.
func (t AlignmentTable) Within(f domain.Filters) AlignmentTable {
	t.Poles = filter(t.Poles, func(p PoleSales) bool { return p.Sales > 0 || matchPlace(f, p.UF, p.Region) })
	t.PolesWithoutSales = 0
	for _, p := range t.Poles {
		if p.Sales == 0 {
			t.PolesWithoutSales++
		}
	}
	return t
}
