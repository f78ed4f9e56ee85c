package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок источника данных.
var (
	// ErrAuth — ключ API отсутствует или отклонён.
	ErrAuth = errors.New("source authentication failed")
	// ErrNotFound — таблица или вкладка не найдены.
	ErrNotFound = errors.New("source sheet not found")
	// ErrTransient — сеть, лимиты, таймаут; вызывающий может повторить.
	ErrTransient = errors.New("source temporarily unavailable")
)

// ErrUnknownDataset возвращается для имени набора вне перечисления.
var ErrUnknownDataset = errors.New("unknown dataset")

// ErrUnknownSection возвращается для неизвестного раздела дашборда.
var ErrUnknownSection = errors.New("unknown section")

// ErrHistoryDisabled — хранилище истории загрузок не настроено.
var ErrHistoryDisabled = errors.New("refresh history is disabled")

// SourceError — ошибка загрузки набора. errors.Is срабатывает и на Kind, и на исходную ошибку.
type SourceError struct {
	Dataset DatasetName
	Kind    error
	Err     error
}

// NewSourceError создаёт ошибку источника указанного вида.
func NewSourceError(dataset DatasetName, kind, err error) *SourceError {
	return &SourceError{Dataset: dataset, Kind: kind, Err: err}
}

func (e *SourceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Dataset, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Dataset, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsRetryable сообщает, имеет ли смысл повторять загрузку.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}

// UnavailableError — раздел не может быть построен, потому что набор недоступен.
// Показывается пользователю сообщением, остальные разделы продолжают работать.
type UnavailableError struct {
	Section Section
	Dataset DatasetName
	Err     error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("section %s: dataset %s unavailable: %v", e.Section, e.Dataset, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Message — текст для пользователя (на португальском) без внутренних подробностей.
func (e *UnavailableError) Message() string {
	switch {
	case errors.Is(e.Err, ErrAuth):
		return fmt.Sprintf("Sem acesso à planilha %q: verifique a chave de API e o ID da planilha.", e.Dataset)
	case errors.Is(e.Err, ErrNotFound):
		return fmt.Sprintf("Planilha %q não encontrada.", e.Dataset)
	case errors.Is(e.Err, ErrTransient):
		return fmt.Sprintf("Fonte %q temporariamente indisponível, tente novamente mais tarde.", e.Dataset)
	default:
		return fmt.Sprintf("Não foi possível carregar os dados de %q.", e.Dataset)
	}
}
