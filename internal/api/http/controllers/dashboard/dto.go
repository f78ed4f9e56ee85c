package dashboard

import (
	"time"

	"macroDash/internal/domain"
)

// FiltersQuery — фильтры раздела из query-строки (GET /api/v1/sections/:section?uf=SP&top=10).
type FiltersQuery struct {
	UF            string `form:"uf" binding:"omitempty,len=2,alpha"`
	Region        string `form:"region" binding:"omitempty,max=32"`
	Top           int    `form:"top" binding:"omitempty,min=1,max=500"`
	MinStudents   int    `form:"min_students" binding:"omitempty,min=0"`
	MinPopulation int    `form:"min_population" binding:"omitempty,min=0"`
}

// SectionItem — раздел в навигации.
type SectionItem struct {
	ID       domain.Section       `json:"id"`
	Title    string               `json:"title"`
	Datasets []domain.DatasetName `json:"datasets"`
}

// SectionsResponse — список разделов (GET /api/v1/sections).
type SectionsResponse struct {
	Items []SectionItem `json:"items"`
}

// DatasetsResponse — состояние наборов (GET /api/v1/datasets).
type DatasetsResponse struct {
	Items []domain.DatasetStatus `json:"items"`
}

// RefreshResponse — результат принудительной загрузки набора.
type RefreshResponse struct {
	Dataset domain.DatasetStatus `json:"dataset"`
	Message string               `json:"message,omitempty"`
}

// RefreshItem — одна загрузка в истории (GET /api/v1/refreshes).
type RefreshItem struct {
	ID          string             `json:"id"`
	Dataset     domain.DatasetName `json:"dataset"`
	Status      string             `json:"status"`
	Rows        int                `json:"rows"`
	Quarantined int                `json:"quarantined"`
	DurationMs  int64              `json:"duration_ms"`
	Error       string             `json:"error,omitempty"`
	At          time.Time          `json:"at"`
}

// HistoryResponse — ответ со списком загрузок.
type HistoryResponse struct {
	Items []RefreshItem `json:"items"`
}

// ErrorResponse — ответ с ошибкой. Message показывается пользователю.
type ErrorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Section domain.Section     `json:"section,omitempty"`
	Dataset domain.DatasetName `json:"dataset,omitempty"`
}
