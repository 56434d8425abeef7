package feed

import (
	"fmt"
	"os"
	"time"

	"github.com/gorilla/feeds"

	"github.com/pribylovaa/go-market-feed/internal/config"
	"github.com/pribylovaa/go-market-feed/internal/models"
)

// Builder собирает итоговый фид одного запуска.
//
// Порядок: сначала новые записи в порядке обнаружения (Add), затем
// перенос подходящих записей предыдущего фида (MergePrevious), затем
// атомарная запись (WriteFile).
//
// Инварианты итогового фида: нет двух записей с одним идентификатором;
// число записей не превышает потолок (новые записи могут превысить его
// ровно на одну — потолок применяется как «остановиться после
// превышения», перенос старых записей его уже не превышает).
type Builder struct {
	cfg   config.FeedConfig
	now   time.Time
	out   *feeds.Feed
	added map[string]struct{}
	count int
}

// NewBuilder создаёт Builder. nowUTC — момент запуска: им датируется
// сам фид и от него считается возраст лотов.
func NewBuilder(cfg config.FeedConfig, nowUTC time.Time) *Builder {
	out := &feeds.Feed{
		Title:   "Marketplace searches",
		Id:      cfg.URL,
		Link:    &feeds.Link{Href: cfg.URL, Rel: "self"},
		Updated: nowUTC,
	}

	if cfg.AuthorName != "" || cfg.AuthorEmail != "" {
		out.Author = &feeds.Author{Name: cfg.AuthorName, Email: cfg.AuthorEmail}
	}

	return &Builder{
		cfg:   cfg,
		now:   nowUTC,
		out:   out,
		added: make(map[string]struct{}),
	}
}

// include — предикат включения свежего лота: не дубликат в рамках
// запуска, возраст в пределах потолка и (при соответствующей политике)
// лот активен. Единственное место, где эта политика записана.
func (b *Builder) include(l models.Listing) bool {
	if _, dup := b.added[l.ID]; dup {
		return false
	}

	if l.AgeDays > b.cfg.MaxAgeDays {
		return false
	}

	if b.cfg.RequireActive && !l.Active {
		return false
	}

	return true
}

// Add принимает найденный лот: применяет предикат включения и потолок
// размера, при успехе синтезирует запись фида. Возвращает true, если
// запись добавлена.
func (b *Builder) Add(l models.Listing) bool {
	if b.count > b.cfg.MaxEntries {
		return false
	}

	if !b.include(l) {
		return false
	}

	b.out.Items = append(b.out.Items, &feeds.Item{
		Id:      EntryID(l.ID),
		Title:   l.Title,
		Link:    &feeds.Link{Href: l.URL},
		Updated: l.StartTime,
		Content: describe(l),
	})
	b.added[l.ID] = struct{}{}
	b.count++

	return true
}

// Len — текущее число записей фида.
func (b *Builder) Len() int {
	return b.count
}

// MergePrevious переносит записи предыдущего фида в сохранённом порядке.
// Запись пропускается, если её идентификатор не разбирается, если лот уже
// добавлен в этом запуске или если потолок размера достигнут. Перенесённые
// записи сохраняют исходные временные метки и содержимое.
func (b *Builder) MergePrevious(prev *Previous) {
	for _, entry := range prev.Entries() {
		if b.count >= b.cfg.MaxEntries {
			break
		}

		id, ok := ParseListingID(entry.GUID)
		if !ok {
			continue
		}

		if _, dup := b.added[id]; dup {
			continue
		}

		updated := b.now
		if entry.UpdatedParsed != nil {
			updated = entry.UpdatedParsed.UTC()
		}

		b.out.Items = append(b.out.Items, &feeds.Item{
			Id:      entry.GUID,
			Title:   entry.Title,
			Link:    &feeds.Link{Href: entry.Link},
			Updated: updated,
			Content: entry.Content,
		})
		b.added[id] = struct{}{}
		b.count++
	}
}

// WriteFile сериализует фид и атомарно замещает прежний файл: запись
// во временный путь, затем rename поверх цели. Обрыв посреди записи
// не повреждает опубликованный фид.
func (b *Builder) WriteFile(path string) error {
	const op = "feed.Builder.WriteFile"

	atom, err := b.out.ToAtom()
	if err != nil {
		return fmt.Errorf("%s: render: %w", op, err)
	}

	tmp := path + ".new"
	if err := os.WriteFile(tmp, []byte(atom), 0o644); err != nil {
		return fmt.Errorf("%s: write: %w", op, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%s: rename: %w", op, err)
	}

	return nil
}
