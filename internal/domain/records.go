package domain

import (
	"strings"
	"time"
)

// Pole — учебный полюс (региональное представительство).
type Pole struct {
	// ID — нормализованное название подразделения, ключ связи с учениками и продажами.
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Company  string   `json:"company,omitempty"`
	Address  string   `json:"address,omitempty"`
	City     string   `json:"city,omitempty"`
	UF       string   `json:"uf,omitempty" validate:"omitempty,len=2,alpha"`
	CEP      string   `json:"cep,omitempty"`
	Lat      *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng      *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	Capacity int      `json:"capacity" validate:"gte=0"`
	Region   string   `json:"region"`
}

// Student — ученик и полюс, к которому он приписан.
type Student struct {
	CPF    string `json:"cpf" validate:"required"`
	CEP    string `json:"cep,omitempty"`
	City   string `json:"city,omitempty"`
	UF     string `json:"uf,omitempty" validate:"omitempty,len=2,alpha"`
	Course string `json:"course,omitempty"`
	// PoleID пустой, если в таблице полюс не указан.
	PoleID        string `json:"pole_id,omitempty"`
	NearestPoleID string `json:"nearest_pole_id,omitempty"`
	Region        string `json:"region"`
	// Lat и Lng берутся из муниципалитета ученика (город + UF), в таблице учеников их нет.
	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`
}

// Sale — оплаченная продажа курса.
type Sale struct {
	CPF         string    `json:"cpf" validate:"required"`
	Student     string    `json:"student,omitempty"`
	Level       string    `json:"level" validate:"required,modality"`
	Course      string    `json:"course,omitempty"`
	PaidAt      time.Time `json:"paid_at" validate:"required"`
	Partnership string    `json:"partnership" validate:"required,partnership"`
	PoleID      string    `json:"pole_id,omitempty"`
	City        string    `json:"city,omitempty"`
	UF          string    `json:"uf,omitempty" validate:"omitempty,len=2,alpha"`
	Region      string    `json:"region"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	MonthName   string    `json:"month_name"`
	MonthYear   string    `json:"month_year"`
	Quarter     int       `json:"quarter"`
	Semester    int       `json:"semester"`
}

// Municipality — муниципалитет и ближайший к нему полюс.
type Municipality struct {
	Name               string   `json:"name" validate:"required"`
	UF                 string   `json:"uf,omitempty" validate:"omitempty,len=2,alpha"`
	Lat                *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng                *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
	NearestPoleAddress string   `json:"nearest_pole_address,omitempty"`
	NearestPoleID      string   `json:"nearest_pole_id,omitempty"`
	// DistanceKm — расстояние до ближайшего полюса; nil, если в таблице его нет.
	DistanceKm    *float64 `json:"distance_km,omitempty" validate:"omitempty,gte=0"`
	TotalStudents int      `json:"total_students" validate:"gte=0"`
	Region        string   `json:"region"`
}

// CityPopulation — население муниципалитета по оценке IBGE.
type CityPopulation struct {
	// Code — код муниципалитета IBGE (7 цифр).
	Code       string `json:"code" validate:"required,numeric"`
	Name       string `json:"name" validate:"required"`
	UF         string `json:"uf" validate:"len=2,alpha"`
	Region     string `json:"region"`
	Population int    `json:"population" validate:"gt=0"`
	// Year — год оценки; последний доступный, если за запрошенный данных нет.
	Year string `json:"year"`
}

// Modalities — допустимые уровни обучения в продажах.
var Modalities = []string{
	"Aperfeiçoamento", "Curso Técnico", "Disciplina Isolada",
	"Disciplinas Eletivas", "Ensino fundamental (EJA)",
	"Ensino Médio (EJA)", "Extensão", "Graduação",
	"Pós-Graduação", "Segunda Graduação", "Tecnólogo",
}

// Partnerships — допустимые типы партнёрства в продажах.
var Partnerships = []string{"Parceiro Comercial", "Parceiro Polo", "Comercial Interno"}

// RegionUnknown — регион для пустого или неизвестного UF.
const RegionUnknown = "Não identificado"

var regions = map[string][]string{
	"Norte":        {"AC", "AP", "AM", "PA", "RO", "RR", "TO"},
	"Nordeste":     {"AL", "BA", "CE", "MA", "PB", "PE", "PI", "RN", "SE"},
	"Centro-Oeste": {"DF", "GO", "MT", "MS"},
	"Sudeste":      {"ES", "MG", "RJ", "SP"},
	"Sul":          {"PR", "RS", "SC"},
}

// RegionOf возвращает макрорегион Бразилии по UF.
func RegionOf(uf string) string {
	uf = strings.ToUpper(strings.TrimSpace(uf))
	if uf == "" {
		return RegionUnknown
	}
	for region, states := range regions {
		for _, s := range states {
			if s == uf {
				return region
			}
		}
	}
	return RegionUnknown
}

// PoleKey нормализует название полюса для сравнения: верхний регистр, без лишних пробелов.
func PoleKey(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
