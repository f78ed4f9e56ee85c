package processor

import (
	"cmp"
	"slices"

	"macroDash/internal/domain"
)

// PoleSales — продажи, связанные с полюсом.
type PoleSales struct {
	PoleID        string       `json:"pole_id"`
	Name          string       `json:"name"`
	UF            string       `json:"uf,omitempty"`
	Region        string       `json:"region"`
	Sales         int          `json:"sales"`
	Share         domain.Ratio `json:"share_pct"`
	ByPartnership []Count      `json:"by_partnership"`
}

// AlignmentTable — результат связи продаж с полюсами.
type AlignmentTable struct {
	Poles          []PoleSales `json:"poles"`
	Matched        int         `json:"matched"`
	Unmatched      int         `json:"unmatched"`
	UnmatchedByKey []Count     `json:"unmatched_by_key,omitempty"`
	// PolesWithoutSales — полюсы, которым не сопоставлено ни одной продажи.
	PolesWithoutSales int `json:"poles_without_sales"`
}

// ComputeSalesAlignment связывает продажи с полюсами по ключу полюса.
// Доля считается от связанных продаж; без связанных продаж доля не определена.
func ComputeSalesAlignment(poles []domain.Pole, sales []domain.Sale) AlignmentTable {
	index := make(map[string]int, len(poles))
	rows := make([]PoleSales, 0, len(poles))
	partnerships := make([]map[string]int, 0, len(poles))
	for _, p := range poles {
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(rows)
		rows = append(rows, PoleSales{PoleID: p.ID, Name: p.Name, UF: p.UF, Region: p.Region})
		partnerships = append(partnerships, make(map[string]int))
	}

	var t AlignmentTable
	unmatched := make(map[string]int)
	for _, s := range sales {
		key := domain.PoleKey(s.PoleID)
		i, ok := index[key]
		if !ok || key == "" {
			t.Unmatched++
			unmatched[unmatchedKey(key)]++
			continue
		}
		rows[i].Sales++
		partnerships[i][s.Partnership]++
		t.Matched++
	}

	for i := range rows {
		rows[i].Share = domain.NewRatio(float64(rows[i].Sales), float64(t.Matched)).Percent()
		rows[i].ByPartnership = ranking(partnerships[i], rows[i].Sales)
		if rows[i].Sales == 0 {
			t.PolesWithoutSales++
		}
	}
	slices.SortStableFunc(rows, func(a, b PoleSales) int {
		if c := cmp.Compare(b.Sales, a.Sales); c != 0 {
			return c
		}
		return cmp.Compare(a.PoleID, b.PoleID)
	})
	t.Poles = rows
	t.UnmatchedByKey = ranking(unmatched, t.Unmatched)
	return t
}

// Migration — ученики, приписанные к одному полюсу, при том что ближе другой.
type Migration struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// StudentAlignment — совпадение текущего и ближайшего полюса учеников.
type StudentAlignment struct {
	// Compared — ученики, у которых известны оба полюса. Остальные считаются в Incomplete.
	Compared       int          `json:"compared"`
	Incomplete     int          `json:"incomplete"`
	Aligned        int          `json:"aligned"`
	Misaligned     int          `json:"misaligned"`
	AlignmentRate  domain.Ratio `json:"alignment_rate_pct"`
	Migrations     []Migration  `json:"migrations"`
	MisalignedByUF []Count      `json:"misaligned_by_uf"`
}

// ComputeStudentAlignment сравнивает полюс ученика с ближайшим полюсом.
func ComputeStudentAlignment(students []domain.Student) StudentAlignment {
	var a StudentAlignment
	moves := make(map[[2]string]int)
	byUF := make(map[string]int)
	for _, s := range students {
		from, to := domain.PoleKey(s.PoleID), domain.PoleKey(s.NearestPoleID)
		if from == "" || to == "" {
			a.Incomplete++
			continue
		}
		a.Compared++
		if from == to {
			a.Aligned++
			continue
		}
		a.Misaligned++
		moves[[2]string{from, to}]++
		byUF[s.UF]++
	}
	a.AlignmentRate = domain.NewRatio(float64(a.Aligned), float64(a.Compared)).Percent()

	a.Migrations = make([]Migration, 0, len(moves))
	for k, n := range moves {
		a.Migrations = append(a.Migrations, Migration{From: k[0], To: k[1], Count: n})
	}
	slices.SortFunc(a.Migrations, func(x, y Migration) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(x.From, y.From); c != 0 {
			return c
		}
		return cmp.Compare(x.To, y.To)
	})
	a.MisalignedByUF = ranking(byUF, a.Misaligned)
	return a
}
