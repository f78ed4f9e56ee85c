package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRatio(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     Ratio
	}{
		{name: "обычное деление", num: 1, den: 4, want: Ratio{Value: 0.25, Defined: true}},
		{name: "ноль в числителе", num: 0, den: 5, want: Ratio{Value: 0, Defined: true}},
		{name: "ноль в знаменателе", num: 3, den: 0, want: Ratio{}},
		{name: "ноль на ноль", num: 0, den: 0, want: Ratio{}},
		{name: "NaN", num: math.NaN(), den: 2, want: Ratio{}},
		{name: "переполнение", num: math.MaxFloat64, den: 1e-300, want: Ratio{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRatio(tt.num, tt.den))
		})
	}
}

func TestRatio_Percent(t *testing.T) {
	assert.Equal(t, Ratio{Value: 50, Defined: true}, NewRatio(1, 2).Percent())
	assert.False(t, NewRatio(1, 0).Percent().Defined, "undefined остаётся undefined")
}

func TestRatio_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Ratio `json:"a"`
		B Ratio `json:"b"`
	}{A: NewRatio(3, 4), B: NewRatio(1, 0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.75,"b":"undefined"}`, string(b))

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte(`"undefined"`), &r))
	assert.False(t, r.Defined)
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &r))
	assert.Equal(t, Ratio{Value: 12.5, Defined: true}, r)
	assert.Error(t, json.Unmarshal([]byte(`"n/a"`), &r))
}

func TestRatio_Cell(t *testing.T) {
	assert.Equal(t, 0.5, NewRatio(1, 2).Cell())
	assert.Equal(t, UndefinedMarker, NewRatio(1, 0).Cell())
	assert.Equal(t, "undefined", NewRatio(1, 0).String())
	assert.Equal(t, "0.5", NewRatio(1, 2).String())
}
