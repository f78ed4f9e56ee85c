package processor

import (
	"cmp"
	"slices"

	"macroDash/internal/domain"
)

// Opportunity — муниципалитет без полюса в городе.
type Opportunity struct {
	Municipality string `json:"municipality"`
	Code         string `json:"code,omitempty"`
	UF           string `json:"uf,omitempty"`
	Region       string `json:"region"`
	Population   int    `json:"population"`
	// Students, DistanceKm и NearestPoleID берутся из таблицы муниципалитетов, если город там есть.
	Students      int          `json:"students"`
	DistanceKm    *float64     `json:"distance_km,omitempty"`
	NearestPoleID string       `json:"nearest_pole_id,omitempty"`
	Coverage      CoverageType `json:"coverage"`
	// NationalRank — место по населению среди всех городов без полюса, до фильтров.
	NationalRank int `json:"national_rank"`
	// StateRank — плотный ранг по населению внутри UF.
	StateRank int `json:"state_rank"`
}

// StateOpportunities — итог возможностей по UF.
type StateOpportunities struct {
	UF             string `json:"uf"`
	Municipalities int    `json:"municipalities"`
	Population     int    `json:"population"`
	Students       int    `json:"students"`
}

// Opportunities — ранжированный список муниципалитетов без полюса.
type Opportunities struct {
	Items   []Opportunity        `json:"items"`
	ByState []StateOpportunities `json:"by_state"`
	// TotalPopulation — население всех муниципалитетов из оценки, с полюсом и без.
	TotalPopulation int `json:"total_population"`
	// PopulationWithoutPole — население городов из Items.
	PopulationWithoutPole int          `json:"population_without_pole"`
	PopulationShare       domain.Ratio `json:"population_share_pct"`
	// MeanPopulation — среднее население города без полюса.
	MeanPopulation domain.Ratio `json:"mean_population"`
}

// ComputeOpportunities отбирает города, в которых нет полюса, и ранжирует их по населению:
// больше жителей, затем больше учеников, затем по названию и UF.
// Данные о учениках и расстоянии подтягиваются из ms по названию и UF.
func ComputeOpportunities(poles []domain.Pole, ms []domain.Municipality, population []domain.CityPopulation) Opportunities {
	cities := poleCities(poles)
	known := make(map[[2]string]domain.Municipality, len(ms))
	for _, m := range ms {
		k := [2]string{cityKey(m.Name), cityKey(m.UF)}
		if _, dup := known[k]; !dup {
			known[k] = m
		}
	}

	var out Opportunities
	items := make([]Opportunity, 0, len(population))
	for _, p := range population {
		out.TotalPopulation += p.Population
		if cities[cityKey(p.Name)] {
			continue
		}
		it := Opportunity{
			Municipality: p.Name,
			Code:         p.Code,
			UF:           p.UF,
			Region:       p.Region,
			Population:   p.Population,
		}
		m, ok := known[[2]string{cityKey(p.Name), cityKey(p.UF)}]
		if !ok {
			m = domain.Municipality{Name: p.Name, UF: p.UF}
		}
		it.Students = m.TotalStudents
		it.DistanceKm = m.DistanceKm
		it.NearestPoleID = m.NearestPoleID
		it.Coverage = ClassifyMunicipality(m, cities)
		items = append(items, it)
	}
	slices.SortStableFunc(items, func(a, b Opportunity) int {
		if c := cmp.Compare(b.Population, a.Population); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Students, a.Students); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Municipality, b.Municipality); c != 0 {
			return c
		}
		return cmp.Compare(a.UF, b.UF)
	})

	type rankState struct{ rank, last int }
	states := make(map[string]*rankState)
	for i := range items {
		it := &items[i]
		it.NationalRank = i + 1
		st := states[it.UF]
		if st == nil {
			st = &rankState{last: -1}
			states[it.UF] = st
		}
		if it.Population != st.last {
			st.rank++
			st.last = it.Population
		}
		it.StateRank = st.rank
	}
	out.Items = items
	return out.summarize()
}

// Within применяет фильтры места, минимального населения и минимального числа учеников.
// Ранги остаются национальными и не пересчитываются; итоги по UF и доли считаются заново.
func (o Opportunities) Within(f domain.Filters) Opportunities {
	o.Items = filter(o.Items, func(it Opportunity) bool {
		return matchPlace(f, it.UF, it.Region) && it.Population >= f.MinPopulation && it.Students >= f.MinStudents
	})
	return o.summarize()
}

func (o Opportunities) summarize() Opportunities {
	totals := make(map[string]*StateOpportunities)
	o.PopulationWithoutPole = 0
	for _, it := range o.Items {
		o.PopulationWithoutPole += it.Population
		t := totals[it.UF]
		if t == nil {
			t = &StateOpportunities{UF: it.UF}
			totals[it.UF] = t
		}
		t.Municipalities++
		t.Population += it.Population
		t.Students += it.Students
	}
	o.PopulationShare = domain.NewRatio(float64(o.PopulationWithoutPole), float64(o.TotalPopulation)).Percent()
	o.MeanPopulation = domain.NewRatio(float64(o.PopulationWithoutPole), float64(len(o.Items)))

	o.ByState = make([]StateOpportunities, 0, len(totals))
	for _, t := range totals {
		o.ByState = append(o.ByState, *t)
	}
	slices.SortFunc(o.ByState, func(a, b StateOpportunities) int {
		if c := cmp.Compare(b.Population, a.Population); c != 0 {
			return c
		}
		return cmp.Compare(a.UF, b.UF)
	})
	return o
}
