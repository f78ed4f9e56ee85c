package processor

import (
	"cmp"
	"slices"

	"macroDash/internal/domain"
)

// MonthSales — продажи за месяц (YYYY-MM).
type MonthSales struct {
	Month string `json:"month"`
	Name  string `json:"name"`
	Year  int    `json:"year"`
	Sales int    `json:"sales"`
}

// SalesSummary — сводка продаж.
type SalesSummary struct {
	Total            int          `json:"total"`
	DistinctStudents int          `json:"distinct_students"`
	MonthlyAverage   domain.Ratio `json:"monthly_average"`
	ByPartnership    []Count      `json:"by_partnership"`
	ByLevel          []Count      `json:"by_level"`
	Courses          []Count      `json:"courses"`
	ByUF             []Count      `json:"by_uf"`
	ByRegion         []Count      `json:"by_region"`
	ByMonth          []MonthSales `json:"by_month"`
	// Top5Concentration — доля пяти штатов с наибольшими продажами среди продаж с известным UF.
	Top5Concentration domain.Ratio `json:"top5_concentration_pct"`
}

// ComputeSalesSummary считает распределения продаж. topN ограничивает список курсов (0 — все).
func ComputeSalesSummary(sales []domain.Sale, topN int) SalesSummary {
	sum := SalesSummary{Total: len(sales)}
	students := make(map[string]struct{}, len(sales))
	partnership := make(map[string]int)
	level := make(map[string]int)
	course := make(map[string]int)
	uf := make(map[string]int)
	region := make(map[string]int)
	months := make(map[string]*MonthSales)

	for _, s := range sales {
		students[s.CPF] = struct{}{}
		partnership[s.Partnership]++
		level[s.Level]++
		course[s.Course]++
		uf[s.UF]++
		region[s.Region]++
		m := months[s.MonthYear]
		if m == nil {
			m = &MonthSales{Month: s.MonthYear, Name: s.MonthName, Year: s.Year}
			months[s.MonthYear] = m
		}
		m.Sales++
	}

	sum.DistinctStudents = len(students)
	sum.MonthlyAverage = domain.NewRatio(float64(len(sales)), float64(len(months)))
	sum.ByPartnership = ranking(partnership, len(sales))
	sum.ByLevel = ranking(level, len(sales))
	sum.Courses = top(ranking(course, len(sales)), topN)
	sum.ByUF = ranking(uf, len(sales))
	sum.ByRegion = ranking(region, len(sales))
	sum.Top5Concentration = domain.NewRatio(float64(sumCounts(top(sum.ByUF, 5))), float64(sumCounts(sum.ByUF))).Percent()

	sum.ByMonth = make([]MonthSales, 0, len(months))
	for _, m := range months {
		sum.ByMonth = append(sum.ByMonth, *m)
	}
	slices.SortFunc(sum.ByMonth, func(a, b MonthSales) int { return cmp.Compare(a.Month, b.Month) })
	return sum
}
