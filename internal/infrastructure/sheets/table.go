package sheets

import (
	"strconv"
	"strings"
)

// row — строка данных и её номер в таблице (заголовок — строка 1).
type row struct {
	num   int
	cells []string
}

// table — прямоугольная таблица с уникальными заголовками.
type table struct {
	headers []string
	rows    []row
}

// normalize превращает ответ API в прямоугольную таблицу: первая строка — заголовок,
// недостающие заголовки получают имена Col_<n>, повторы — суффиксы _1, _2,
// строки дополняются пустыми ячейками или обрезаются, полностью пустые строки отбрасываются.
func normalize(values [][]string) table {
	if len(values) == 0 {
		return table{}
	}
	headers := append([]string(nil), values[0]...)
	width := len(headers)
	for _, r := range values[1:] {
		if len(r) > width {
			width = len(r)
		}
	}
	for len(headers) < width {
		headers = append(headers, "Col_"+strconv.Itoa(len(headers)))
	}

	seen := make(map[string]int, width)
	for i, h := range headers {
		if n, ok := seen[h]; ok {
			seen[h] = n + 1
			headers[i] = h + "_" + strconv.Itoa(n+1)
			continue
		}
		seen[h] = 0
	}

	t := table{headers: headers}
	for i, r := range values[1:] {
		cells := make([]string, width)
		copy(cells, r)
		if blank(cells) {
			continue
		}
		t.rows = append(t.rows, row{num: i + 2, cells: cells})
	}
	return t
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
