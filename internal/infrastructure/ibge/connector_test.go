package ibge

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"macroDash/internal/domain"
)

const aggregateBody = `[{"id":"9340","variavel":"População residente","resultados":[{"classificacoes":[],"series":[
	{"localidade":{"id":"2611606","nivel":{"id":"N6"},"nome":"Recife (PE)"},"serie":{"2022":"1488920"}},
	{"localidade":{"id":"3550308","nivel":{"id":"N6"},"nome":"São Paulo (SP)"},"serie":{"2021":"12396372","2020":"12325232"}},
	{"localidade":{"id":"9999999","nivel":{"id":"N6"},"nome":"Sem UF"},"serie":{"2022":"10"}},
	{"localidade":{"id":"2609600","nivel":{"id":"N6"},"nome":"Olinda (PE)"},"serie":{"2022":"..."}}
]}]}]`

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(urls ...string) *Client {
	return New(Config{URLs: urls, Period: "2022", Timeout: 2 * time.Second}, newTestLogger())
}

func serve(t *testing.T, status int, body string, hits *atomic.Int32) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/api/agregados/6579"
}

func TestFetch_Decode(t *testing.T) {
	c := newTestClient(serve(t, http.StatusOK, aggregateBody, nil))

	ds, err := c.Fetch(context.Background(), domain.DatasetPopulation)

	require.NoError(t, err)
	assert.Equal(t, domain.DatasetPopulation, ds.Name)
	require.Len(t, ds.Population, 2)
	assert.Equal(t, domain.CityPopulation{
		Code: "2611606", Name: "Recife", UF: "PE", Region: "Nordeste", Population: 1488920, Year: "2022",
	}, ds.Population[0])

	// Нет 2022 — берётся последний год.
	assert.Equal(t, "São Paulo", ds.Population[1].Name)
	assert.Equal(t, "2021", ds.Population[1].Year)
	assert.Equal(t, 12396372, ds.Population[1].Population)

	require.Len(t, ds.Quarantined, 2)
	assert.Equal(t, 3, ds.Quarantined[0].Row)
	assert.Contains(t, ds.Quarantined[0].Reason, "UF")
	assert.Equal(t, 4, ds.Quarantined[1].Row)
	assert.Contains(t, ds.Quarantined[1].Reason, "Population")
}

// Ошибка сервера v3 — загрузка идёт из v2.
func TestFetch_FallbackToSecondURL(t *testing.T) {
	var v3, v2 atomic.Int32
	c := newTestClient(
		serve(t, http.StatusInternalServerError, `{"message":"erro"}`, &v3),
		serve(t, http.StatusOK, aggregateBody, &v2),
	)

	ds, err := c.Fetch(context.Background(), domain.DatasetPopulation)

	require.NoError(t, err)
	assert.Len(t, ds.Population, 2)
	assert.EqualValues(t, 1, v3.Load())
	assert.EqualValues(t, 1, v2.Load())
}

func TestFetch_FirstURLWins(t *testing.T) {
	var second atomic.Int32
	c := newTestClient(serve(t, http.StatusOK, aggregateBody, nil), serve(t, http.StatusOK, aggregateBody, &second))

	_, err := c.Fetch(context.Background(), domain.DatasetPopulation)

	require.NoError(t, err)
	assert.Zero(t, second.Load())
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "Сервер недоступен", status: http.StatusServiceUnavailable, body: "", want: domain.ErrTransient},
		{name: "Нет агрегата", status: http.StatusNotFound, body: "[]", want: domain.ErrNotFound},
		{name: "Пустой ответ", status: http.StatusOK, body: "[]", want: domain.ErrNotFound},
		{name: "Нет результатов", status: http.StatusOK, body: `[{"resultados":[]}]`, want: domain.ErrNotFound},
		{name: "Запрет", status: http.StatusForbidden, body: "", want: domain.ErrAuth},
		{name: "Битый JSON", status: http.StatusOK, body: "{", want: domain.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(serve(t, tt.status, tt.body, nil), serve(t, tt.status, tt.body, nil))

			ds, err := c.Fetch(context.Background(), domain.DatasetPopulation)

			assert.Nil(t, ds)
			assert.ErrorIs(t, err, tt.want)
			var se *domain.SourceError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, domain.DatasetPopulation, se.Dataset)
		})
	}
}

func TestFetch_UnknownDataset(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0")

	_, err := c.Fetch(context.Background(), domain.DatasetPoles)

	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

func TestFetch_NoURLs(t *testing.T) {
	_, err := newTestClient().Fetch(context.Background(), domain.DatasetPopulation)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
