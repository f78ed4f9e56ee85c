package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"macroDash/internal/domain"
	"macroDash/internal/ports"
)

var _ ports.ISourceConnector = (*Client)(nil)

// Fetch загружает вкладку набора, нормализует таблицу и приводит строки к записям.
// Один запрос к API на вызов, без повторов. Строки с ошибками схемы уходят в Dataset.Quarantined.
func (c *Client) Fetch(ctx context.Context, name domain.DatasetName) (*domain.Dataset, error) {
	src, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	if src.svc == nil {
		return nil, domain.NewSourceError(name, domain.ErrAuth, errors.New("api key is not configured"))
	}
	if src.sheetID == "" {
		return nil, domain.NewSourceError(name, domain.ErrNotFound, errors.New("sheet id is not configured"))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, domain.NewSourceError(name, domain.ErrTransient, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := src.svc.Spreadsheets.Values.Get(src.sheetID, src.tab).Context(ctx).Do()
	if err != nil {
		c.log.Debug("sheets fetch failed", "dataset", name, "tab", src.tab, "error", err)
		return nil, classify(name, err)
	}

	t := normalize(cells(resp.Values))
	ds := c.decoder.decode(name, t)
	c.log.Debug("sheets fetched", "dataset", name, "rows", ds.Rows(), "quarantined", len(ds.Quarantined))
	return ds, nil
}

// classify переводит ошибку API в один из видов domain.
func classify(name domain.DatasetName, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		msg := strings.ToLower(gerr.Message)
		switch {
		case gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden:
			return domain.NewSourceError(name, domain.ErrAuth, err)
		case gerr.Code == http.StatusNotFound:
			return domain.NewSourceError(name, domain.ErrNotFound, err)
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return domain.NewSourceError(name, domain.ErrTransient, err)
		case gerr.Code == http.StatusBadRequest && strings.Contains(msg, "api key"):
			return domain.NewSourceError(name, domain.ErrAuth, err)
		case gerr.Code == http.StatusBadRequest:
			// "Unable to parse range" — вкладки нет.
			return domain.NewSourceError(name, domain.ErrNotFound, err)
		}
		return domain.NewSourceError(name, domain.ErrTransient, err)
	}

	// Сеть, таймаут, отмена контекста.
	return domain.NewSourceError(name, domain.ErrTransient, err)
}

// cells приводит значения API к строкам.
func cells(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		r := make([]string, len(row))
		for j, v := range row {
			switch s := v.(type) {
			case nil:
			case string:
				r[j] = s
			default:
				r[j] = fmt.Sprint(s)
			}
		}
		out[i] = r
	}
	return out
}
