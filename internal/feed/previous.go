// feed — слияние найденных лотов с предыдущим фидом и атомарная запись
// итогового Atom-документа.
package feed

import (
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
)

// Previous — фид, опубликованный предыдущим запуском.
type Previous struct {
	parsed *gofeed.Feed
}

// ReadFile читает фид предыдущего запуска. Отсутствие файла — не ошибка
// (первый запуск): возвращается nil без ошибки.
func ReadFile(path string) (*Previous, error) {
	const op = "feed.ReadFile"

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	parsed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: parse: %w", op, err)
	}

	return &Previous{parsed: parsed}, nil
}

// Entries — записи фида в сохранённом порядке. nil-безопасен.
func (p *Previous) Entries() []*gofeed.Item {
	if p == nil || p.parsed == nil {
		return nil
	}

	return p.parsed.Items
}

// LastUpdated — самое позднее время обновления среди записей; служит
// нижней границей «изменено после» для следующего обхода. При отсутствии
// записей (или фида целиком) возвращает fallback.
func (p *Previous) LastUpdated(fallback time.Time) time.Time {
	last := fallback

	for _, entry := range p.Entries() {
		if entry.UpdatedParsed != nil && entry.UpdatedParsed.After(last) {
			last = entry.UpdatedParsed.UTC()
		}
	}

	return last
}
