package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"macroDash/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSheets отвечает как Sheets API v4 на GET /v4/spreadsheets/{id}/values/{range}.
func fakeSheets(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return srv.URL + "/"
}

func newTestClient(t *testing.T, endpoint string, src Sources) *Client {
	t.Helper()
	c, err := New(context.Background(), Config{Timeout: 2 * time.Second, MunicipalitiesTab: "Sheet3", Endpoint: endpoint}, src, newTestLogger())
	require.NoError(t, err)
	return c
}

func TestFetch_Success(t *testing.T) {
	var gotPath, gotKey string
	endpoint := fakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"range":"POLOS ATIVOS!A1:F3","majorDimension":"ROWS","values":[
			["UNIDADE","RAZAO","X","ENDERECO","CIDADE","UF"],
			["Polo 1","ACME","","Rua 1","Recife","PE"],
			[""],
			["","sem nome"]
		]}`)
	})
	c := newTestClient(t, endpoint, Sources{Poles: Source{APIKey: "k1", SheetID: "sheet-1"}})

	ds, err := c.Fetch(context.Background(), domain.DatasetPoles)

	require.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/POLOS ATIVOS", gotPath)
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, domain.DatasetPoles, ds.Name)
	assert.True(t, ds.FetchedAt.IsZero())
	require.Len(t, ds.Poles, 1)
	assert.Equal(t, "POLO 1", ds.Poles[0].ID)
	assert.Equal(t, "Nordeste", ds.Poles[0].Region)
	require.Len(t, ds.Quarantined, 1)
	assert.Equal(t, 4, ds.Quarantined[0].Row)
}

// Муниципалитеты читаются из таблицы полюсов, вкладка своя.
func TestFetch_MunicipalitiesUsePolesSheet(t *testing.T) {
	var gotPath string
	endpoint := fakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"values":[["MUNICIPIO - IBGE","UF"],["Olinda","PE"]]}`)
	})
	c := newTestClient(t, endpoint, Sources{Poles: Source{APIKey: "k1", SheetID: "sheet-1"}})

	ds, err := c.Fetch(context.Background(), domain.DatasetMunicipalities)

	require.NoError(t, err)
	assert.Equal(t, "/v4/spreadsheets/sheet-1/values/Sheet3", gotPath)
	require.Len(t, ds.Municipalities, 1)
	assert.Equal(t, "Olinda", ds.Municipalities[0].Name)
}

func TestFetch_EmptySheet(t *testing.T) {
	endpoint := fakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"range":"lista_alunos!A1:Z1000"}`)
	})
	c := newTestClient(t, endpoint, Sources{Students: Source{APIKey: "k", SheetID: "s"}})

	ds, err := c.Fetch(context.Background(), domain.DatasetStudents)

	require.NoError(t, err)
	assert.Zero(t, ds.Rows())
	assert.Empty(t, ds.Quarantined)
}

func TestFetch_HTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{"forbidden", http.StatusForbidden, "The caller does not have permission", domain.ErrAuth},
		{"unauthorized", http.StatusUnauthorized, "Login required", domain.ErrAuth},
		{"bad api key", http.StatusBadRequest, "API key not valid. Please pass a valid API key.", domain.ErrAuth},
		{"not found", http.StatusNotFound, "Requested entity was not found.", domain.ErrNotFound},
		{"bad range", http.StatusBadRequest, "Unable to parse range: Nope", domain.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, "Quota exceeded", domain.ErrTransient},
		{"server error", http.StatusServiceUnavailable, "backend", domain.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := fakeSheets(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprintf(w, `{"error":{"code":%d,"message":%q}}`, tt.status, tt.message)
			})
			c := newTestClient(t, endpoint, Sources{Sales: Source{APIKey: "k", SheetID: "s"}})

			ds, err := c.Fetch(context.Background(), domain.DatasetSales)

			assert.Nil(t, ds)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var serr *domain.SourceError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, domain.DatasetSales, serr.Dataset)
		})
	}
}

func TestFetch_Misconfigured(t *testing.T) {
	c := newTestClient(t, "", Sources{
		Poles:    Source{SheetID: "s"},
		Students: Source{APIKey: "k"},
	})

	_, err := c.Fetch(context.Background(), domain.DatasetPoles)
	assert.ErrorIs(t, err, domain.ErrAuth)

	_, err = c.Fetch(context.Background(), domain.DatasetStudents)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.Fetch(context.Background(), domain.DatasetName("nope"))
	assert.ErrorIs(t, err, domain.ErrUnknownDataset)
}

// Отменённый контекст — временная ошибка, запрос в сеть не уходит.
func TestFetch_CanceledContext(t *testing.T) {
	called := false
	endpoint := fakeSheets(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	c := newTestClient(t, endpoint, Sources{Poles: Source{APIKey: "k", SheetID: "s"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, domain.DatasetPoles)

	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.True(t, domain.IsRetryable(err))
	assert.False(t, called)
}

func TestClassify(t *testing.T) {
	err := classify(domain.DatasetPoles, &googleapi.Error{Code: http.StatusBadGateway})
	assert.ErrorIs(t, err, domain.ErrTransient)

	err = classify(domain.DatasetPoles, errors.New("dial tcp: connection refused"))
	assert.ErrorIs(t, err, domain.ErrTransient)
	assert.True(t, strings.Contains(err.Error(), "connection refused"))

	err = classify(domain.DatasetPoles, &googleapi.Error{Code: http.StatusConflict})
	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestCells(t *testing.T) {
	got := cells([][]interface{}{{"a", 1.5, nil, true}})
	assert.Equal(t, [][]string{{"a", "1.5", "", "true"}}, got)
}
