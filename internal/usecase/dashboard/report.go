package dashboard

import (
	"macroDash/internal/domain"
	"macroDash/internal/usecase/processor"
)

// report раскладывает данные раздела по листам. Неопределённые отношения выводятся маркером undefined.
func report(section domain.Section, data any) domain.Report {
	rep := domain.Report{Title: section.Title()}
	switch v := data.(type) {
	case OverviewView:
		rep.Sheets = append(rep.Sheets,
			domain.ReportSheet{
				Name:   "Indicadores",
				Header: []string{"Indicador", "Valor"},
				Rows: [][]any{
					{"Polos", v.Overview.Poles},
					{"Estados atendidos", v.Overview.StatesServed},
					{"Municípios mapeados", v.Overview.Municipalities},
					{"Alunos", v.Overview.Students},
					{"Alunos distintos", v.Overview.DistinctStudents},
					{"Alunos por polo", v.Overview.StudentsPerPole.Cell()},
					{"Cobertura municipal (%)", v.Municipal.Coverage.Cell()},
					{"Distância média (km)", v.Municipal.MeanDistanceKm.Cell()},
					{"Alunos sem polo", v.Coverage.Unmatched},
				},
			},
			coverageSheet(v.Coverage),
			countSheet("Polos por UF", "UF", v.Overview.PolesByUF),
		)
	case GeographicView:
		municipalities := domain.ReportSheet{
			Name:   "Municípios",
			Header: []string{"Município", "UF", "Região", "Alunos", "Distância (km)", "Polo mais próximo"},
		}
		for _, m := range v.Municipalities {
			municipalities.Rows = append(municipalities.Rows, []any{m.Name, m.UF, m.Region, m.TotalStudents, distanceCell(m.DistanceKm), m.NearestPoleID})
		}
		regions := domain.ReportSheet{
			Name:   "Regiões",
			Header: []string{"Região", "Municípios", "Cobertos", "Cobertura (%)", "Distância média (km)", "Alunos"},
		}
		for _, r := range v.Municipal.ByRegion {
			regions.Rows = append(regions.Rows, []any{r.Region, r.Municipalities, r.Covered, r.Coverage.Cell(), r.MeanDistanceKm.Cell(), r.Students})
		}
		rep.Sheets = append(rep.Sheets, municipalities, regions, countSheet("Tipos de cobertura", "Tipo", v.Municipal.ByType))
	case StudentsView:
		migrations := domain.ReportSheet{
			Name:   "Migrações",
			Header: []string{"Polo atual", "Polo mais próximo", "Alunos"},
		}
		for _, m := range v.Alignment.Migrations {
			migrations.Rows = append(migrations.Rows, []any{m.From, m.To, m.Count})
		}
		rep.Sheets = append(rep.Sheets,
			coverageSheet(v.Coverage),
			countSheet("Cursos", "Curso", v.Profile.Courses),
			countSheet("Alunos por UF", "UF", v.Profile.ByUF),
			migrations,
			locationsSheet(v.Locations),
		)
	case SalesView:
		poles := domain.ReportSheet{
			Name:   "Vendas por polo",
			Header: []string{"Polo", "Nome", "UF", "Vendas", "Participação (%)"},
		}
		for _, p := range v.Alignment.Poles {
			poles.Rows = append(poles.Rows, []any{p.PoleID, p.Name, p.UF, p.Sales, p.Share.Cell()})
		}
		months := domain.ReportSheet{
			Name:   "Vendas por mês",
			Header: []string{"Mês", "Nome", "Vendas"},
		}
		for _, m := range v.Summary.ByMonth {
			months.Rows = append(months.Rows, []any{m.Month, m.Name, m.Sales})
		}
		rep.Sheets = append(rep.Sheets,
			countSheet("Parcerias", "Tipo de parceria", v.Summary.ByPartnership),
			countSheet("Modalidades", "Modalidade", v.Summary.ByLevel),
			countSheet("Cursos", "Curso", v.Summary.Courses),
			months,
			poles,
		)
	case OpportunitiesView:
		items := domain.ReportSheet{
			Name:   "Oportunidades",
			Header: []string{"Ranking nacional", "Ranking estadual", "Município", "Código IBGE", "UF", "Região", "População", "Alunos", "Distância (km)", "Cobertura"},
		}
		for _, o := range v.Opportunities.Items {
			items.Rows = append(items.Rows, []any{o.NationalRank, o.StateRank, o.Municipality, o.Code, o.UF, o.Region, o.Population, o.Students, distanceCell(o.DistanceKm), string(o.Coverage)})
		}
		states := domain.ReportSheet{
			Name:   "Por estado",
			Header: []string{"UF", "Municípios", "População", "Alunos"},
		}
		for _, s := range v.Opportunities.ByState {
			states.Rows = append(states.Rows, []any{s.UF, s.Municipalities, s.Population, s.Students})
		}
		summary := domain.ReportSheet{
			Name:   "Resumo",
			Header: []string{"Indicador", "Valor"},
			Rows: [][]any{
				{"Cidades sem polo", len(v.Opportunities.Items)},
				{"População sem polo", v.Opportunities.PopulationWithoutPole},
				{"População sem polo (%)", v.Opportunities.PopulationShare.Cell()},
				{"População média", v.Opportunities.MeanPopulation.Cell()},
			},
		}
		rep.Sheets = append(rep.Sheets, summary, items, states)
	}
	return rep
}

func locationsSheet(l processor.StudentLocations) domain.ReportSheet {
	sheet := domain.ReportSheet{
		Name:   "Alunos no mapa",
		Header: []string{"Cidade", "UF", "Latitude", "Longitude", "Alunos"},
	}
	for _, p := range l.Points {
		sheet.Rows = append(sheet.Rows, []any{p.City, p.UF, p.Lat, p.Lng, p.Students})
	}
	return sheet
}

// distanceCell — расстояние или пустая ячейка, если его нет.
func distanceCell(d *float64) any {
	if d == nil {
		return ""
	}
	return *d
}

func coverageSheet(t processor.CoverageTable) domain.ReportSheet {
	sheet := domain.ReportSheet{
		Name:   "Cobertura por polo",
		Header: []string{"Polo", "Nome", "UF", "Região", "Alunos", "Capacidade", "Cobertura"},
	}
	for _, p := range t.Poles {
		sheet.Rows = append(sheet.Rows, []any{p.PoleID, p.Name, p.UF, p.Region, p.Students, p.Capacity, p.Coverage.Cell()})
	}
	return sheet
}

func countSheet(name, key string, counts []processor.Count) domain.ReportSheet {
	sheet := domain.ReportSheet{Name: name, Header: []string{key, "Quantidade", "Percentual"}}
	for _, c := range counts {
		sheet.Rows = append(sheet.Rows, []any{c.Key, c.Count, c.Share.Cell()})
	}
	return sheet
}
