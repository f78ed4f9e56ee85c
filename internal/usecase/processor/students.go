package processor

import (
	"cmp"
	"slices"

	"macroDash/internal/domain"
)

// StudentProfile — распределение учеников по курсам и территориям.
type StudentProfile struct {
	Total    int     `json:"total"`
	Distinct int     `json:"distinct"`
	Courses  []Count `json:"courses"`
	ByUF     []Count `json:"by_uf"`
	ByRegion []Count `json:"by_region"`
}

// ComputeStudentProfile считает распределения учеников. topN ограничивает список курсов (0 — все).
func ComputeStudentProfile(students []domain.Student, topN int) StudentProfile {
	p := StudentProfile{Total: len(students)}
	cpf := make(map[string]struct{}, len(students))
	course := make(map[string]int)
	uf := make(map[string]int)
	region := make(map[string]int)
	for _, s := range students {
		cpf[s.CPF] = struct{}{}
		course[s.Course]++
		uf[s.UF]++
		region[s.Region]++
	}
	p.Distinct = len(cpf)
	p.Courses = top(ranking(course, len(students)), topN)
	p.ByUF = ranking(uf, len(students))
	p.ByRegion = ranking(region, len(students))
	return p
}

// LocateStudents возвращает копии учеников с координатами их муниципалитета: связь по городу и UF.
// Ученики без совпадения или муниципалитеты без координат остаются без Lat/Lng.
func LocateStudents(students []domain.Student, ms []domain.Municipality) []domain.Student {
	coords := make(map[[2]string]domain.Municipality, len(ms))
	for _, m := range ms {
		if m.Lat == nil || m.Lng == nil {
			continue
		}
		k := [2]string{cityKey(m.Name), cityKey(m.UF)}
		if _, dup := coords[k]; !dup {
			coords[k] = m
		}
	}
	out := make([]domain.Student, len(students))
	for i, s := range students {
		if m, ok := coords[[2]string{cityKey(s.City), cityKey(s.UF)}]; ok {
			lat, lng := *m.Lat, *m.Lng
			s.Lat, s.Lng = &lat, &lng
		}
		out[i] = s
	}
	return out
}

// StudentPoint — город учеников на карте.
type StudentPoint struct {
	City     string  `json:"city"`
	UF       string  `json:"uf"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Students int     `json:"students"`
}

// StudentLocations — ученики, которых удалось разместить на карте.
type StudentLocations struct {
	Located   int            `json:"located"`
	Unlocated int            `json:"unlocated"`
	Points    []StudentPoint `json:"points"`
}

// ComputeStudentLocations группирует учеников с координатами по городам, крупные города первыми.
func ComputeStudentLocations(students []domain.Student) StudentLocations {
	var l StudentLocations
	index := make(map[[2]string]int)
	for _, s := range students {
		if s.Lat == nil || s.Lng == nil {
			l.Unlocated++
			continue
		}
		l.Located++
		k := [2]string{cityKey(s.City), cityKey(s.UF)}
		i, ok := index[k]
		if !ok {
			i = len(l.Points)
			index[k] = i
			l.Points = append(l.Points, StudentPoint{City: s.City, UF: s.UF, Lat: *s.Lat, Lng: *s.Lng})
		}
		l.Points[i].Students++
	}
	slices.SortStableFunc(l.Points, func(a, b StudentPoint) int {
		if c := cmp.Compare(b.Students, a.Students); c != 0 {
			return c
		}
		if c := cmp.Compare(a.UF, b.UF); c != 0 {
			return c
		}
		return cmp.Compare(a.City, b.City)
	})
	return l
}
