package domain

import "time"

// DatasetName — идентификатор источника данных.
type DatasetName string

// Известные наборы данных. Муниципалитеты лежат во второй вкладке таблицы полюсов,
// население муниципалитетов приходит из API IBGE.
const (
	DatasetPoles          DatasetName = "poles"
	DatasetStudents       DatasetName = "students"
	DatasetSales          DatasetName = "sales"
	DatasetMunicipalities DatasetName = "municipalities"
	DatasetPopulation     DatasetName = "population"
)

// AllDatasets — все наборы в порядке загрузки при старте.
var AllDatasets = []DatasetName{DatasetPoles, DatasetMunicipalities, DatasetStudents, DatasetSales, DatasetPopulation}

// Valid сообщает, известен ли набор.
func (n DatasetName) Valid() bool {
	switch n {
	case DatasetPoles, DatasetStudents, DatasetSales, DatasetMunicipalities, DatasetPopulation:
		return true
	}
	return false
}

func (n DatasetName) String() string { return string(n) }

// ParseDatasetName разбирает имя набора из строки (URL, конфиг).
func ParseDatasetName(s string) (DatasetName, error) {
	n := DatasetName(s)
	if !n.Valid() {
		return "", ErrUnknownDataset
	}
	return n, nil
}

// QuarantinedRow — строка таблицы, не прошедшая проверку схемы. В записи набора не попадает.
type QuarantinedRow struct {
	Row    int      `json:"row"`
	Reason string   `json:"reason"`
	Values []string `json:"values,omitempty"`
}

// Dataset — типизированный снимок одной таблицы. После загрузки только читается.
// Заполнен ровно один срез записей, соответствующий Name.
type Dataset struct {
	Name           DatasetName      `json:"name"`
	FetchedAt      time.Time        `json:"fetched_at"`
	Poles          []Pole           `json:"poles,omitempty"`
	Students       []Student        `json:"students,omitempty"`
	Sales          []Sale           `json:"sales,omitempty"`
	Municipalities []Municipality   `json:"municipalities,omitempty"`
	Population     []CityPopulation `json:"population,omitempty"`
	Quarantined    []QuarantinedRow `json:"quarantined,omitempty"`
}

// Rows возвращает число принятых записей.
func (d *Dataset) Rows() int {
	if d == nil {
		return 0
	}
	switch d.Name {
	case DatasetPoles:
		return len(d.Poles)
	case DatasetStudents:
		return len(d.Students)
	case DatasetSales:
		return len(d.Sales)
	case DatasetMunicipalities:
		return len(d.Municipalities)
	case DatasetPopulation:
		return len(d.Population)
	}
	return 0
}

// Snapshot — результат обращения к кэшу: набор и признак устаревания.
type Snapshot struct {
	Dataset *Dataset
	// Stale == true, если свежие данные получить не удалось и отдан прошлый снимок.
	Stale bool
	// Cause — ошибка обновления, из-за которой снимок устарел.
	Cause error
}

// EntryStatus — состояние записи кэша для диагностики.
type EntryStatus struct {
	Dataset   DatasetName   `json:"dataset"`
	Cached    bool          `json:"cached"`
	FetchedAt time.Time     `json:"fetched_at,omitempty"`
	TTL       time.Duration `json:"ttl,omitempty"`
	Expired   bool          `json:"expired"`
	Rows      int           `json:"rows"`
	LastError string        `json:"last_error,omitempty"`
}
