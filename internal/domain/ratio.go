package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// UndefinedMarker — JSON-представление отношения с нулевым знаменателем.
const UndefinedMarker = "undefined"

// Ratio — результат деления. При нулевом знаменателе Defined == false, NaN и Inf не появляются.
type Ratio struct {
	Value   float64
	Defined bool
}

// NewRatio делит num на den.
func NewRatio(num, den float64) Ratio {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return Ratio{}
	}
	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Ratio{}
	}
	return Ratio{Value: v, Defined: true}
}

// Percent — отношение в процентах (undefined остаётся undefined).
func (r Ratio) Percent() Ratio {
	if !r.Defined {
		return r
	}
	return Ratio{Value: r.Value * 100, Defined: true}
}

func (r Ratio) String() string {
	if !r.Defined {
		return UndefinedMarker
	}
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}

// Cell — значение для табличных отчётов: число или маркер undefined.
func (r Ratio) Cell() any {
	if !r.Defined {
		return UndefinedMarker
	}
	return r.Value
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined {
		return json.Marshal(UndefinedMarker)
	}
	return json.Marshal(r.Value)
}

func (r *Ratio) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if s != UndefinedMarker {
			return fmt.Errorf("ratio: unexpected string %q", s)
		}
		*r = Ratio{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ratio{Value: v, Defined: true}
	return nil
}
