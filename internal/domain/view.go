package domain

import "time"

// Section — раздел дашборда.
type Section string

// Разделы дашборда.
const (
	SectionOverview      Section = "overview"
	SectionGeographic    Section = "geographic"
	SectionStudents      Section = "students"
	SectionSales         Section = "sales"
	SectionOpportunities Section = "opportunities"
)

// AllSections — разделы в порядке навигации.
var AllSections = []Section{SectionOverview, SectionGeographic, SectionStudents, SectionSales, SectionOpportunities}

// Datasets возвращает наборы, от которых зависит раздел. nil для неизвестного раздела.
func (s Section) Datasets() []DatasetName {
	switch s {
	case SectionOverview:
		return []DatasetName{DatasetPoles, DatasetMunicipalities, DatasetStudents}
	case SectionGeographic:
		return []DatasetName{DatasetPoles, DatasetMunicipalities}
	case SectionOpportunities:
		return []DatasetName{DatasetPoles, DatasetPopulation}
	case SectionStudents:
		return []DatasetName{DatasetPoles, DatasetStudents}
	case SectionSales:
		return []DatasetName{DatasetPoles, DatasetSales}
	}
	return nil
}

// OptionalDatasets — наборы, которые дополняют раздел. Без них раздел строится с предупреждением.
func (s Section) OptionalDatasets() []DatasetName {
	switch s {
	case SectionStudents, SectionOpportunities:
		return []DatasetName{DatasetMunicipalities}
	}
	return nil
}

// Valid сообщает, известен ли раздел.
func (s Section) Valid() bool { return s.Datasets() != nil }

var sectionTitles = map[Section]string{
	SectionOverview:      "Visão geral",
	SectionGeographic:    "Análise geográfica",
	SectionStudents:      "Alunos",
	SectionSales:         "Vendas",
	SectionOpportunities: "Oportunidades",
}

// Title — заголовок раздела для навигации и отчётов.
func (s Section) Title() string { return sectionTitles[s] }

// Filters — фильтры, общие для разделов. Нулевые значения означают «без фильтра».
type Filters struct {
	UF          string `json:"uf,omitempty"`
	Region      string `json:"region,omitempty"`
	TopN        int    `json:"top,omitempty"`
	MinStudents int    `json:"min_students,omitempty"`
	// MinPopulation — нижняя граница населения для возможностей расширения.
	MinPopulation int `json:"min_population,omitempty"`
}

// ViewRequest — какой раздел нужен и с какими фильтрами. Не сохраняется.
type ViewRequest struct {
	Section Section
	Filters Filters
}

// WarningCode — вид нефатального замечания к данным раздела.
type WarningCode string

// Коды замечаний.
const (
	WarnStaleData      WarningCode = "stale_data"
	WarnQuarantined    WarningCode = "quarantined_rows"
	WarnJoinMismatch   WarningCode = "join_mismatch"
	WarnUndefinedRatio WarningCode = "undefined_ratio"
	WarnMissingData    WarningCode = "dataset_unavailable"
)

// Warning — аннотация к данным раздела, отображается рядом с графиками.
type Warning struct {
	Code    WarningCode `json:"code"`
	Dataset DatasetName `json:"dataset,omitempty"`
	Message string      `json:"message"`
	Count   int         `json:"count,omitempty"`
}

// SectionResult — данные раздела для отрисовки.
type SectionResult struct {
	Section     Section                   `json:"section"`
	GeneratedAt time.Time                 `json:"generated_at"`
	DataAsOf    map[DatasetName]time.Time `json:"data_as_of"`
	Data        any                       `json:"data"`
	Warnings    []Warning                 `json:"warnings,omitempty"`
}

// LoadState — состояние загрузки набора в оркестраторе.
type LoadState string

// Состояния загрузки.
const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// CanTransition проверяет переход Idle -> Loading -> Ready | Error; из Ready и Error — снова в Loading.
func (s LoadState) CanTransition(to LoadState) bool {
	switch s {
	case StateIdle, StateReady, StateError:
		return to == StateLoading
	case StateLoading:
		return to == StateReady || to == StateError
	}
	return false
}

// DatasetStatus — состояние набора для API.
type DatasetStatus struct {
	EntryStatus
	State     LoadState `json:"state"`
	Stale     bool      `json:"stale"`
	Message   string    `json:"message,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// ReportSheet — одна таблица отчёта.
type ReportSheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Report — выгрузка раздела в табличном виде.
type Report struct {
	Title  string
	Sheets []ReportSheet
}
