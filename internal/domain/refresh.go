package domain

import "time"

// RefreshStatus — итог попытки загрузки набора.
type RefreshStatus string

// Итоги загрузки.
const (
	RefreshOK     RefreshStatus = "ok"
	RefreshFailed RefreshStatus = "failed"
)

// RefreshEvent — запись об одной загрузке набора из источника.
type RefreshEvent struct {
	ID          string        `json:"id"`
	Dataset     DatasetName   `json:"dataset"`
	Status      RefreshStatus `json:"status"`
	Rows        int           `json:"rows"`
	Quarantined int           `json:"quarantined"`
	Duration    time.Duration `json:"duration"`
	Error       string        `json:"error,omitempty"`
	At          time.Time     `json:"at"`
}
