package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-market-feed/internal/ebay"
	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/pkg/log"
	"github.com/pribylovaa/go-market-feed/internal/query"
)

// HaltReason — причина досрочной остановки обхода.
type HaltReason string

const (
	// HaltQuota — API сообщил об исчерпании квоты вызовов.
	HaltQuota HaltReason = "quota_exceeded"
	// HaltTimeLimit — исчерпан бюджет времени запуска.
	HaltTimeLimit HaltReason = "time_limit"
)

// Report — итог одного запуска обхода.
type Report struct {
	// Completed — список запросов пройден до конца, чекпоинт снят.
	Completed bool
	// HaltReason/HaltedAt — причина остановки и спецификация запроса,
	// записанная в чекпоинт (только при Completed == false).
	HaltReason HaltReason
	HaltedAt   string
	// Счётчики: пропущено при возобновлении / обработано / завершилось
	// нефатальной ошибкой; Items — лотов передано в Sink.
	QueriesSkipped   int
	QueriesProcessed int
	QueriesFailed    int
	Items            int
}

// Итог обработки одного запроса (для переходов автомата).
type queryOutcome int

const (
	outcomeOK queryOutcome = iota
	outcomeFailed
	outcomeQuota
)

// Crawl обходит запросы строго в заданном порядке.
//
// Автомат состояний: при наличии чекпоинта запросы до отмеченного
// пропускаются, отмеченный обрабатывается заново с первой страницы
// (at-least-once: его ранние страницы перечитываются, дубликаты гасит
// дедупликация фида). Квота останавливает запуск немедленно, бюджет
// времени проверяется только на границах запросов. Остановка — не
// ошибка: пишется чекпоинт, возвращается Report.
//
// Ошибки (только неожиданные, фатальные для процесса):
//   - нечитаемый чекпоинт или сбой его записи;
//   - отмена контекста.
func (s *Service) Crawl(ctx context.Context, queries []models.SearchQuery, since time.Time, sink Sink) (*Report, error) {
	const op = "service.Crawl"

	lg := log.From(ctx)

	resume, resuming, err := s.checkpoints.Load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resuming {
		// Чекпоинт может указывать на запрос, выпавший из списка: тогда
		// ведём себя так, будто чекпоинта не было, — иначе пропустили бы
		// весь список целиком.
		if !containsSpec(queries, resume) {
			lg.Warn("crawl_checkpoint_not_in_list",
				slog.String("op", op),
				slog.String("checkpoint", resume),
			)
			resuming = false
		} else {
			lg.Info("crawl_resume",
				slog.String("op", op),
				slog.String("checkpoint", resume),
			)
		}
	}

	start := s.now()
	report := &Report{}

	for _, q := range queries {
		if resuming {
			if q.Spec != resume {
				report.QueriesSkipped++
				continue
			}
			resuming = false
		}

		outcome, err := s.crawlQuery(ctx, q, since, sink, report)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		switch outcome {
		case outcomeOK:
			report.QueriesProcessed++
		case outcomeFailed:
			report.QueriesFailed++
		case outcomeQuota:
			report.QueriesProcessed++
			return s.halt(ctx, report, HaltQuota, q.Spec)
		}

		if s.budget > 0 && s.now().Sub(start) > s.budget {
			return s.halt(ctx, report, HaltTimeLimit, q.Spec)
		}
	}

	if err := s.checkpoints.Clear(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report.Completed = true

	lg.Info("crawl_completed",
		slog.String("op", op),
		slog.Int("queries_processed", report.QueriesProcessed),
		slog.Int("queries_skipped", report.QueriesSkipped),
		slog.Int("queries_failed", report.QueriesFailed),
		slog.Int("items", report.Items),
	)

	return report, nil
}

// crawlQuery обрабатывает один запрос: трансляция, пагинация, потоковая
// передача лотов в sink. BadQuery, сбой API и исчерпание повторов
// транспорта нефатальны (лог и outcomeFailed); квота — outcomeQuota.
func (s *Service) crawlQuery(ctx context.Context, q models.SearchQuery, since time.Time, sink Sink, report *Report) (queryOutcome, error) {
	const op = "service.crawlQuery"

	lg := log.From(ctx)

	params, err := query.Translate(q.Spec)
	if err != nil {
		var bad *query.BadQueryError
		if errors.As(err, &bad) {
			lg.Warn("bad_query_skipped",
				slog.String("op", op),
				slog.String("spec", q.Spec),
				slog.String("err", err.Error()),
			)
			return outcomeFailed, nil
		}

		return 0, fmt.Errorf("%s: %w", op, err)
	}
	params.ModTimeFrom = since

	results := s.source.Search(ctx, params, q)

	for {
		l, err := results.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ebay.ErrNoMoreItems):
				return outcomeOK, nil
			case errors.Is(err, ebay.ErrQuotaExceeded):
				lg.Warn("quota_exceeded",
					slog.String("op", op),
					slog.String("spec", q.Spec),
					slog.String("err", err.Error()),
				)
				return outcomeQuota, nil
			case isQueryFatal(err):
				lg.Warn("query_abandoned",
					slog.String("op", op),
					slog.String("spec", q.Spec),
					slog.String("err", err.Error()),
				)
				return outcomeFailed, nil
			default:
				return 0, fmt.Errorf("%s: %w", op, err)
			}
		}

		sink.Add(l)
		report.Items++
	}
}

// halt завершает запуск досрочно: чекпоинт на обрабатывавшийся запрос,
// отчёт без ошибки (остановленный запуск — успешный запуск с частичным
// прогрессом).
func (s *Service) halt(ctx context.Context, report *Report, reason HaltReason, spec string) (*Report, error) {
	const op = "service.halt"

	if err := s.checkpoints.Save(spec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report.HaltReason = reason
	report.HaltedAt = spec

	log.From(ctx).Info("crawl_halted",
		slog.String("op", op),
		slog.String("reason", string(reason)),
		slog.String("checkpoint", spec),
		slog.Int("queries_processed", report.QueriesProcessed),
		slog.Int("items", report.Items),
	)

	return report, nil
}

// containsSpec — есть ли в списке запрос с данной спецификацией.
func containsSpec(queries []models.SearchQuery, spec string) bool {
	for _, q := range queries {
		if q.Spec == spec {
			return true
		}
	}
	return false
}

// isQueryFatal — ошибки, хоронящие только текущий запрос.
func isQueryFatal(err error) bool {
	var apiErr *ebay.APIError
	var transportErr *ebay.TransportError

	return errors.As(err, &apiErr) || errors.As(err, &transportErr)
}
