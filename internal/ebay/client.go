package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pribylovaa/go-market-feed/internal/config"
	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/pkg/log"
	"github.com/pribylovaa/go-market-feed/internal/query"
)

// Заголовки-константы findItemsAdvanced (передаются параметрами запроса).
const (
	operationName  = "findItemsAdvanced"
	serviceVersion = "1.13.0"
	responseFormat = "JSON"
)

// Client — клиент Finding API.
//
// Особенности:
//   - глобальный для экземпляра rate limit: не более одного запроса
//     в cfg.CallInterval, вызывающая сторона при необходимости ждёт;
//   - сетевые сбои повторяются с фиксированной паузой до cfg.RetryAttempts раз;
//   - счётчик вызовов и кэш bearer-токена — состояние экземпляра,
//     не глобальное; между запусками не сохраняются.
//
// Обход однопоточный, поэтому Client не защищён мьютексами.
type Client struct {
	cfg     config.APIConfig
	http    *http.Client
	limiter *rate.Limiter
	calls   int
	token   string
}

// New создаёт клиент Finding API.
func New(cfg config.APIConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Every(cfg.CallInterval), 1),
	}
}

// Calls — число успешно выполненных HTTP-вызовов API за время жизни
// клиента. Только для диагностики.
func (c *Client) Calls() int {
	return c.calls
}

// Search начинает поиск по заданным параметрам и возвращает ленивый
// итератор результатов по всем страницам.
func (c *Client) Search(ctx context.Context, params query.SearchParams, q models.SearchQuery) *Results {
	if params.EntriesPerPage <= 0 {
		params.EntriesPerPage = c.cfg.EntriesPerPage
	}

	return &Results{client: c, params: params, query: q}
}

// call выполняет один вызов findItemsAdvanced с учётом rate limit
// и бюджета повторов.
//
// Ошибки:
//   - ErrQuotaExceeded — пейлоад ошибки содержит сигнатуру квоты;
//   - *APIError — не-200 статус или ack != Success без сигнатуры квоты;
//   - *TransportError — сетевой сбой после исчерпания повторов;
//   - ошибки контекста — прокидываются как есть.
func (c *Client) call(ctx context.Context, params query.SearchParams) (*advancedResponse, error) {
	const op = "ebay.Client.call"

	lg := log.From(ctx)

	if err := c.ensureToken(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	reqURL := c.requestURL(params)

	var last error
	for attempt := 1; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		body, status, err := c.get(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			}

			last = err
			if attempt > c.cfg.RetryAttempts {
				return nil, fmt.Errorf("%s: %w", op, &TransportError{Attempts: attempt, Last: last})
			}

			lg.Warn("api_call_retry",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.String("err", err.Error()),
			)

			if err := sleep(ctx, c.cfg.RetryPause); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			continue
		}

		c.calls++

		return c.classify(status, body)
	}
}

// get выполняет HTTP-запрос и читает тело целиком.
// Любая ошибка здесь — сетевая (кандидат на повтор).
func (c *Client) get(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// classify разбирает пейлоад и превращает его в ответ или типизированную
// ошибку. Сигнатура квоты проверяется до всего остального: квота может
// прийти и с не-200 статусом.
func (c *Client) classify(status int, body []byte) (*advancedResponse, error) {
	const op = "ebay.Client.classify"

	var wire findResponse
	// Ошибка разбора не фатальна сама по себе: для не-200 статуса тело
	// может быть произвольным.
	_ = json.Unmarshal(body, &wire)

	var resp *advancedResponse
	if len(wire.FindItemsAdvancedResponse) > 0 {
		resp = &wire.FindItemsAdvancedResponse[0]
	}

	details := errorDetails(&wire, resp)
	if isQuota(details) {
		return nil, fmt.Errorf("%s: %w after %d calls", op, ErrQuotaExceeded, c.calls)
	}

	if status != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, &APIError{Message: fmt.Sprintf("unexpected status %d", status)})
	}

	if resp == nil {
		return nil, fmt.Errorf("%s: %w", op, &APIError{Message: "malformed response payload"})
	}

	if ack := first(resp.Ack); ack != "Success" {
		msg := fmt.Sprintf("ack was %q", ack)
		if text := firstMessage(details); text != "" {
			msg += ": " + text
		}
		return nil, fmt.Errorf("%s: %w", op, &APIError{Message: msg})
	}

	return resp, nil
}

// requestURL собирает итоговый URL вызова: служебные параметры операции
// плюс параметры поиска.
func (c *Client) requestURL(params query.SearchParams) string {
	v := params.Values()
	v.Set("OPERATION-NAME", operationName)
	v.Set("SERVICE-VERSION", serviceVersion)
	v.Set("SECURITY-APPNAME", c.cfg.AppID)
	v.Set("RESPONSE-DATA-FORMAT", responseFormat)
	v.Set("REST-PAYLOAD", "")

	return c.cfg.Endpoint + "?" + v.Encode()
}

// ensureToken выполняет разовое получение bearer-токена
// (client-credentials), если для API настроена bearer-авторизация.
// Токен кэшируется в памяти процесса и не персистится.
func (c *Client) ensureToken(ctx context.Context) error {
	const op = "ebay.Client.ensureToken"

	if c.cfg.TokenURL == "" || c.token != "" {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "https://api.ebay.com/oauth/api_scope")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: new_request: %w", op, err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: do: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: read: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: token endpoint status %d", op, resp.StatusCode)
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	if token.AccessToken == "" {
		return fmt.Errorf("%s: empty access_token", op)
	}

	c.token = token.AccessToken

	log.From(ctx).Info("bearer_token_acquired", slog.String("op", op))

	return nil
}

// sleep — пауза с уважением к отмене контекста.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
