package ibge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"macroDash/internal/domain"
)

// "São Paulo (SP)" -> "São Paulo", "SP"
var placeName = regexp.MustCompile(`^(.*?)\s*\(([A-Za-z]{2})\)\s*$`)

type aggregate struct {
	Resultados []struct {
		Series []series `json:"series"`
	} `json:"resultados"`
}

type series struct {
	Localidade struct {
		ID   string `json:"id"`
		Nome string `json:"nome"`
	} `json:"localidade"`
	Serie map[string]string `json:"serie"`
}

// statusError — ответ API с кодом не 2xx.
type statusError struct {
	url  string
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.url, e.code)
}

var errEmpty = errors.New("empty aggregate")

// Fetch загружает набор population. Адреса из конфига пробуются по очереди; ошибка возвращается,
// только если не ответил ни один.
func (c *Client) Fetch(ctx context.Context, name domain.DatasetName) (*domain.Dataset, error) {
	if name != domain.DatasetPopulation {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDataset, name)
	}
	if len(c.cfg.URLs) == 0 {
		return nil, domain.NewSourceError(name, domain.ErrNotFound, errors.New("ibge urls are not configured"))
	}

	var errs []error
	for _, url := range c.cfg.URLs {
		agg, err := c.get(ctx, url)
		if err == nil {
			ds := c.decode(agg)
			c.log.Debug("ibge fetched", "url", url, "rows", ds.Rows(), "quarantined", len(ds.Quarantined))
			return ds, nil
		}
		c.log.Warn("ibge fetch failed", "url", url, "error", err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, domain.NewSourceError(name, kind(errs[len(errs)-1]), errors.Join(errs...))
}

func (c *Client) get(ctx context.Context, url string) (*aggregate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &statusError{url: url, code: resp.StatusCode}
	}
	var body []aggregate
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	if len(body) == 0 || len(body[0].Resultados) == 0 {
		return nil, errEmpty
	}
	return &body[0], nil
}

// kind — вид ошибки последней попытки.
func kind(err error) error {
	var se *statusError
	switch {
	case errors.As(err, &se) && (se.code == http.StatusUnauthorized || se.code == http.StatusForbidden):
		return domain.ErrAuth
	case errors.As(err, &se) && se.code == http.StatusNotFound, errors.Is(err, errEmpty):
		return domain.ErrNotFound
	}
	return domain.ErrTransient
}

// decode строит набор из первой серии результатов. Строки без UF или с пустым населением уходят в Quarantined.
func (c *Client) decode(agg *aggregate) *domain.Dataset {
	ds := &domain.Dataset{Name: domain.DatasetPopulation}
	for i, s := range agg.Resultados[0].Series {
		p, err := c.city(s)
		if err != nil {
			ds.Quarantined = append(ds.Quarantined, domain.QuarantinedRow{
				Row:    i + 1,
				Reason: err.Error(),
				Values: []string{s.Localidade.ID, s.Localidade.Nome},
			})
			continue
		}
		ds.Population = append(ds.Population, p)
	}
	return ds
}

func (c *Client) city(s series) (domain.CityPopulation, error) {
	p := domain.CityPopulation{Code: s.Localidade.ID, Name: strings.TrimSpace(s.Localidade.Nome)}
	if m := placeName.FindStringSubmatch(p.Name); m != nil {
		p.Name, p.UF = m[1], strings.ToUpper(m[2])
	}
	p.Region = domain.RegionOf(p.UF)

	year, value := c.pick(s.Serie)
	p.Year = year
	if value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return p, fmt.Errorf("invalid Population: %q", value)
		}
		p.Population = n
	}

	if err := c.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return p, err
		}
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
		return p, errors.New("invalid " + strings.Join(parts, ", "))
	}
	return p, nil
}

// pick — значение за настроенный период, иначе за последний год серии.
func (c *Client) pick(serie map[string]string) (string, string) {
	if v, ok := serie[c.cfg.Period]; ok {
		return c.cfg.Period, strings.TrimSpace(v)
	}
	if len(serie) == 0 {
		return "", ""
	}
	years := make([]string, 0, len(serie))
	for y := range serie {
		years = append(years, y)
	}
	last := slices.Max(years)
	return last, strings.TrimSpace(serie[last])
}
