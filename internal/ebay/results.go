package ebay

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/pkg/log"
	"github.com/pribylovaa/go-market-feed/internal/query"
)

// Results — ленивый однопроходный итератор результатов поиска.
//
// Особенности:
//   - страницы запрашиваются по мере потребления, в порядке возрастания
//     номера; конец пагинации определяется по paginationOutput;
//   - повторов здесь нет: ошибки клиента (квота, сбой API, транспорт)
//     прокидываются наверх как есть;
//   - итератор невозобновляем — после ошибки или конца последовательности
//     Next всегда возвращает ErrNoMoreItems.
type Results struct {
	client *Client
	params query.SearchParams
	query  models.SearchQuery

	queue   []models.Listing
	started bool
	done    bool
}

// Next возвращает следующий лот.
//
// Ошибки:
//   - ErrNoMoreItems — страницы исчерпаны (явный конец последовательности);
//   - ошибки Client.call — без изменений.
func (r *Results) Next(ctx context.Context) (models.Listing, error) {
	const op = "ebay.Results.Next"

	for len(r.queue) == 0 {
		if r.done {
			return models.Listing{}, ErrNoMoreItems
		}

		resp, err := r.client.call(ctx, r.params)
		if err != nil {
			r.done = true
			return models.Listing{}, err
		}
		r.started = true

		now := time.Now().UTC()
		for _, it := range resp.items() {
			l, err := itemToListing(it, r.params, r.query, now)
			if err != nil {
				log.From(ctx).Warn("item_convert_failed",
					slog.String("op", op),
					slog.String("item_id", first(it.ItemID)),
					slog.String("err", err.Error()),
				)
				continue
			}

			r.queue = append(r.queue, l)
		}

		next, ok := nextPage(resp)
		if !ok {
			r.done = true
		} else {
			r.params = r.params.WithPage(next)
		}
	}

	l := r.queue[0]
	r.queue = r.queue[1:]

	return l, nil
}

// nextPage вычисляет номер следующей страницы по метаданным пагинации.
// Возвращает ok=false, когда достигнута последняя страница (или метаданные
// не читаются — лучше остановиться, чем зациклиться).
func nextPage(resp *advancedResponse) (int, bool) {
	po := first(resp.PaginationOutput)

	page, err := strconv.Atoi(first(po.PageNumber))
	if err != nil {
		return 0, false
	}

	total, err := strconv.Atoi(first(po.TotalPages))
	if err != nil {
		return 0, false
	}

	if page < total {
		return page + 1, true
	}

	return 0, false
}
