// checkpoint — файловый маркер возобновления обхода.
//
// Хранит единственное значение: спецификацию запроса, на котором обход
// остановился досрочно. Формат — версионированная текстовая запись:
// первая строка «v1», дальше спецификация байт-в-байт (без изменений,
// включая хвостовые пробелы). Обход однопоточный, параллельные запуски
// исключены внешней блокировкой, поэтому файловых локов здесь нет.
package checkpoint

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const version = "v1"

// ErrUnknownVersion — файл чекпоинта записан неизвестной версией формата.
// Неожиданная ситуация: наверх уходит как фатальная.
var ErrUnknownVersion = errors.New("unknown checkpoint version")

// Store — файловое хранилище маркера возобновления.
type Store struct {
	path string
}

// New создаёт Store для заданного пути.
func New(path string) *Store {
	return &Store{path: path}
}

// Load читает маркер. Отсутствие файла — не ошибка (ok=false).
func (s *Store) Load() (string, bool, error) {
	const op = "checkpoint.Store.Load"

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%s: %w", op, err)
	}

	header, spec, found := strings.Cut(string(raw), "\n")
	if !found || header != version {
		return "", false, fmt.Errorf("%s: %w: %q", op, ErrUnknownVersion, header)
	}

	return spec, true, nil
}

// Save перезаписывает маркер заданной спецификацией.
func (s *Store) Save(spec string) error {
	const op = "checkpoint.Store.Save"

	if err := os.WriteFile(s.path, []byte(version+"\n"+spec), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет маркер. Отсутствие файла — не ошибка.
func (s *Store) Clear() error {
	const op = "checkpoint.Store.Clear"

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
