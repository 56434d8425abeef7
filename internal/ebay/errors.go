package ebay

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded — API сообщил об исчерпании квоты вызовов.
	// Фатальна для запуска в целом: оркестратор останавливается
	// и пишет чекпоинт.
	ErrQuotaExceeded = errors.New("api call quota exceeded")
	// ErrNoMoreItems — конец последовательности результатов.
	// Не ошибка по сути: явный сигнал «страниц больше нет».
	ErrNoMoreItems = errors.New("no more items")
)

// APIError — API сообщил о сбое, не связанном с квотой.
// Фатальна только для текущего запроса.
type APIError struct {
	// Message — текст ошибки от API (или описание статуса ответа).
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s", e.Message)
}

// TransportError — сетевой сбой, переживший бюджет повторов.
// Фатальна только для текущего запроса.
type TransportError struct {
	// Attempts — сколько попыток было сделано.
	Attempts int
	// Last — последняя низкоуровневая ошибка.
	Last error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure after %d attempts: %v", e.Attempts, e.Last)
}

func (e *TransportError) Unwrap() error {
	return e.Last
}

// Сигнатура квоты в пейлоаде ошибки Finding API.
const (
	quotaSubdomain = "RateLimiter"
	quotaErrorID   = "10001"
)

// isQuota проверяет детали ошибки на документированную сигнатуру
// «превышена квота вызовов».
func isQuota(details []errorDetail) bool {
	for _, d := range details {
		if first(d.Subdomain) == quotaSubdomain || first(d.ErrorID) == quotaErrorID {
			return true
		}
	}
	return false
}

// firstMessage — первый текст ошибки из деталей (для диагностики).
func firstMessage(details []errorDetail) string {
	for _, d := range details {
		if msg := first(d.Message); msg != "" {
			return msg
		}
	}
	return ""
}
