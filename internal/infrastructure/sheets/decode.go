package sheets

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"macroDash/internal/domain"
)

// minSalesYear — продажи раньше этого года считаются ошибкой ввода.
const minSalesYear = 2020

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// column — колонка набора: допустимые заголовки и позиция в исходной раскладке таблицы (-1 — нет).
type column struct {
	aliases  []string
	fallback int
}

func col(fallback int, aliases ...string) column {
	return column{aliases: aliases, fallback: fallback}
}

// Раскладки таблиц. Позиции совпадают с исходными таблицами, заголовки проверяются первыми.
var (
	poleColumns = struct{ unit, company, address, city, uf, cep, lat, lng, capacity column }{
		unit:     col(0, "UNIDADE", "UNIDADE/POLO", "POLO"),
		company:  col(1, "RAZAO", "RAZAO SOCIAL"),
		address:  col(3, "ENDERECO"),
		city:     col(4, "CIDADE"),
		uf:       col(5, "UF"),
		cep:      col(6, "CEP"),
		lat:      col(12, "LAT", "LATITUDE"),
		lng:      col(13, "LONG", "LNG", "LONGITUDE"),
		capacity: col(-1, "CAPACIDADE", "META", "META ALUNOS"),
	}
	municipalityColumns = struct{ name, uf, lat, lng, poleAddress, pole, distance, students column }{
		name:        col(0, "MUNICIPIO - IBGE", "MUNICIPIO IBGE", "MUNICIPIO"),
		uf:          col(1, "UF"),
		lat:         col(3, "LAT", "LATITUDE"),
		lng:         col(4, "LNG", "LONG", "LONGITUDE"),
		poleAddress: col(5, "POLO MAIS PROXIMO - ENDERECO COMPLETO"),
		pole:        col(9, "UNIDADE/POLO", "UNIDADE"),
		distance:    col(10, "DISTANCIA KM", "DISTANCIA"),
		students:    col(14, "TOTAL DE ALUNOS", "TOTAL ALUNOS"),
	}
	studentColumns = struct{ cpf, cep, city, uf, course, pole, nearest column }{
		cpf:     col(2, "CPF"),
		cep:     col(3, "CEP"),
		city:    col(4, "CIDADE"),
		uf:      col(5, "UF"),
		course:  col(10, "CURSO"),
		pole:    col(11, "POLO"),
		nearest: col(12, "POLO MAIS PROXIMO"),
	}
	saleColumns = struct{ cpf, student, level, course, paidAt, partnership, pole, city, uf column }{
		cpf:         col(2, "CPF"),
		student:     col(3, "ALUNO"),
		level:       col(4, "NIVEL"),
		course:      col(5, "CURSO"),
		paidAt:      col(9, "DT PAGTO", "DATA PAGAMENTO"),
		partnership: col(13, "TIPO PARCERIA", "TIPO DE PARCERIA"),
		pole:        col(-1, "POLO", "UNIDADE"),
		city:        col(-1, "CIDADE"),
		uf:          col(-1, "UF"),
	}
)

// decoder приводит строки таблицы к записям набора и проверяет их.
type decoder struct {
	validate *validator.Validate
	now      func() time.Time
}

func newDecoder(now func() time.Time) *decoder {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("modality", oneOf(domain.Modalities))
	_ = v.RegisterValidation("partnership", oneOf(domain.Partnerships))
	return &decoder{validate: v, now: now}
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// decode строит набор; строки, не прошедшие приведение или проверку, попадают в Quarantined.
func (d *decoder) decode(name domain.DatasetName, t table) *domain.Dataset {
	ds := &domain.Dataset{Name: name}
	idx := newIndex(t.headers)
	for _, r := range t.rows {
		var err error
		switch name {
		case domain.DatasetPoles:
			var p domain.Pole
			if p, err = d.pole(idx, r); err == nil {
				ds.Poles = append(ds.Poles, p)
			}
		case domain.DatasetMunicipalities:
			var m domain.Municipality
			if m, err = d.municipality(idx, r); err == nil {
				ds.Municipalities = append(ds.Municipalities, m)
			}
		case domain.DatasetStudents:
			var s domain.Student
			if s, err = d.student(idx, r); err == nil {
				ds.Students = append(ds.Students, s)
			}
		case domain.DatasetSales:
			var s domain.Sale
			if s, err = d.sale(idx, r); err == nil {
				ds.Sales = append(ds.Sales, s)
			}
		}
		if err != nil {
			ds.Quarantined = append(ds.Quarantined, domain.QuarantinedRow{Row: r.num, Reason: err.Error(), Values: r.cells})
		}
	}
	return ds
}

func (d *decoder) pole(idx index, r row) (domain.Pole, error) {
	c := poleColumns
	name := idx.text(r, c.unit)
	uf := strings.ToUpper(idx.text(r, c.uf))
	p := domain.Pole{
		ID:       domain.PoleKey(name),
		Name:     name,
		Company:  idx.text(r, c.company),
		Address:  idx.text(r, c.address),
		City:     idx.text(r, c.city),
		UF:       uf,
		CEP:      idx.text(r, c.cep),
		Lat:      coordinate(idx.text(r, c.lat), 90),
		Lng:      coordinate(idx.text(r, c.lng), 180),
		Capacity: int(math.Round(number(idx.text(r, c.capacity)))),
		Region:   domain.RegionOf(uf),
	}
	return p, d.check(p)
}

func (d *decoder) municipality(idx index, r row) (domain.Municipality, error) {
	c := municipalityColumns
	uf := strings.ToUpper(idx.text(r, c.uf))
	m := domain.Municipality{
		Name:               idx.text(r, c.name),
		UF:                 uf,
		Lat:                coordinate(idx.text(r, c.lat), 90),
		Lng:                coordinate(idx.text(r, c.lng), 180),
		NearestPoleAddress: idx.text(r, c.poleAddress),
		NearestPoleID:      domain.PoleKey(idx.text(r, c.pole)),
		DistanceKm:         optionalNumber(idx.text(r, c.distance)),
		TotalStudents:      int(math.Round(number(idx.text(r, c.students)))),
		Region:             domain.RegionOf(uf),
	}
	return m, d.check(m)
}

func (d *decoder) student(idx index, r row) (domain.Student, error) {
	c := studentColumns
	uf := strings.ToUpper(idx.text(r, c.uf))
	s := domain.Student{
		CPF:           idx.text(r, c.cpf),
		CEP:           idx.text(r, c.cep),
		City:          idx.text(r, c.city),
		UF:            uf,
		Course:        idx.text(r, c.course),
		PoleID:        domain.PoleKey(idx.text(r, c.pole)),
		NearestPoleID: domain.PoleKey(idx.text(r, c.nearest)),
		Region:        domain.RegionOf(uf),
	}
	return s, d.check(s)
}

func (d *decoder) sale(idx index, r row) (domain.Sale, error) {
	c := saleColumns
	raw := idx.text(r, c.paidAt)
	paidAt, err := time.Parse("2/1/2006", raw)
	if err != nil {
		return domain.Sale{}, fmt.Errorf("invalid payment date %q", raw)
	}
	if y := paidAt.Year(); y < minSalesYear || y > d.now().Year() {
		return domain.Sale{}, fmt.Errorf("payment year %d out of range", y)
	}
	uf := strings.ToUpper(idx.text(r, c.uf))
	month := int(paidAt.Month())
	s := domain.Sale{
		CPF:         idx.text(r, c.cpf),
		Student:     idx.text(r, c.student),
		Level:       idx.text(r, c.level),
		Course:      idx.text(r, c.course),
		PaidAt:      paidAt,
		Partnership: idx.text(r, c.partnership),
		PoleID:      domain.PoleKey(idx.text(r, c.pole)),
		City:        idx.text(r, c.city),
		UF:          uf,
		Region:      domain.RegionOf(uf),
		Year:        paidAt.Year(),
		Month:       month,
		MonthName:   monthNames[month-1],
		MonthYear:   paidAt.Format("2006-01"),
		Quarter:     (month-1)/3 + 1,
		Semester:    1,
	}
	if month > 6 {
		s.Semester = 2
	}
	return s, d.check(s)
}

// check проверяет запись по тегам validate и формирует короткую причину отказа.
func (d *decoder) check(v any) error {
	err := d.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return errors.New("invalid " + strings.Join(parts, ", "))
}

// index — позиции заголовков после нормализации имён.
type index struct {
	pos   map[string]int
	width int
}

func newIndex(headers []string) index {
	idx := index{pos: make(map[string]int, len(headers)), width: len(headers)}
	for i, h := range headers {
		key := headerKey(h)
		if _, ok := idx.pos[key]; !ok {
			idx.pos[key] = i
		}
	}
	return idx
}

func (idx index) position(c column) int {
	for _, a := range c.aliases {
		if i, ok := idx.pos[a]; ok {
			return i
		}
	}
	if c.fallback >= 0 && c.fallback < idx.width {
		return c.fallback
	}
	return -1
}

// text возвращает очищенное значение колонки; "nan" считается пустым, как в исходных выгрузках.
func (idx index) text(r row, c column) string {
	i := idx.position(c)
	if i < 0 || i >= len(r.cells) {
		return ""
	}
	s := strings.TrimSpace(r.cells[i])
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

var accents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// headerKey — имя заголовка без диакритики, в верхнем регистре, с одиночными пробелами.
func headerKey(h string) string {
	s, _, err := transform.String(accents, h)
	if err != nil {
		s = h
	}
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// coordinate разбирает координату: запятая как десятичный разделитель, посторонние символы убираются.
// Значение вне [-limit, limit] считается отсутствующим.
func coordinate(s string, limit float64) *float64 {
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.Abs(v) > limit {
		return nil
	}
	return &v
}

// thousands — целое с точками-разделителями групп: "1.000", "12.345.678".
var thousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// number разбирает неотрицательное число; пустое или нечитаемое значение даёт 0.
func number(s string) float64 {
	v, _ := parseNumber(s)
	return v
}

// optionalNumber — как number, но пустое или нечитаемое значение даёт nil.
func optionalNumber(s string) *float64 {
	v, ok := parseNumber(s)
	if !ok {
		return nil
	}
	return &v
}

// parseNumber понимает запись pt-BR ("1.234,5", "1.000") и десятичную точку ("12.5").
func parseNumber(s string) (float64, bool) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	switch {
	case s == "":
		return 0, false
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case thousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
