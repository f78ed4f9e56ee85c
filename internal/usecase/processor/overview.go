package processor

import "macroDash/internal/domain"

// Overview — ключевые показатели первой страницы.
type Overview struct {
	Poles            int          `json:"poles"`
	StatesServed     int          `json:"states_served"`
	Municipalities   int          `json:"municipalities"`
	Students         int          `json:"students"`
	DistinctStudents int          `json:"distinct_students"`
	PolesByRegion    []Count      `json:"poles_by_region"`
	PolesByUF        []Count      `json:"poles_by_uf"`
	StudentsPerPole  domain.Ratio `json:"students_per_pole"`
}

// ComputeOverview считает сводные показатели по полюсам, муниципалитетам и ученикам.
func ComputeOverview(poles []domain.Pole, ms []domain.Municipality, students []domain.Student) Overview {
	o := Overview{Poles: len(poles), Municipalities: len(ms), Students: len(students)}
	uf := make(map[string]int)
	region := make(map[string]int)
	for _, p := range poles {
		uf[p.UF]++
		region[p.Region]++
	}
	cpf := make(map[string]struct{}, len(students))
	for _, s := range students {
		cpf[s.CPF] = struct{}{}
	}
	o.PolesByUF = ranking(uf, len(poles))
	o.PolesByRegion = ranking(region, len(poles))
	o.StatesServed = len(o.PolesByUF)
	o.DistinctStudents = len(cpf)
	o.StudentsPerPole = domain.NewRatio(float64(len(students)), float64(len(poles)))
	return o
}
