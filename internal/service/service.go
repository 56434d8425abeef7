// service содержит бизнес-логику market-feed: оркестратор обхода
// списка сохранённых запросов с возобновлением по чекпоинту.
package service

import (
	"context"
	"time"

	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/query"
)

// Source — источник результатов поиска (реализуется клиентом API).
type Source interface {
	// Search начинает поиск и возвращает ленивый итератор результатов.
	Search(ctx context.Context, params query.SearchParams, q models.SearchQuery) Results
}

// Results — однопроходный итератор найденных лотов.
type Results interface {
	// Next возвращает следующий лот; конец последовательности —
	// ebay.ErrNoMoreItems.
	Next(ctx context.Context) (models.Listing, error)
}

// Checkpoints — хранилище маркера возобновления.
type Checkpoints interface {
	// Load возвращает ok=false, если маркера нет.
	Load() (string, bool, error)
	// Save перезаписывает маркер спецификацией запроса.
	Save(spec string) error
	// Clear удаляет маркер; отсутствие — не ошибка.
	Clear() error
}

// Sink принимает найденные лоты потоково, по мере обнаружения.
type Sink interface {
	// Add возвращает true, если лот принят в фид.
	Add(l models.Listing) bool
}

// Service — оркестратор обхода.
type Service struct {
	source      Source
	checkpoints Checkpoints
	// budget — бюджет времени одного запуска; 0 — без ограничения.
	budget time.Duration
	// now — источник времени (подменяется в тестах).
	now func() time.Time
}

// New создаёт оркестратор.
func New(source Source, checkpoints Checkpoints, budget time.Duration) *Service {
	return &Service{
		source:      source,
		checkpoints: checkpoints,
		budget:      budget,
		now:         time.Now,
	}
}
