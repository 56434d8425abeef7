// models содержит доменные сущности market-feed.
// Эти типы используются слоями бизнес-логики, клиента API и генератора фида.
package models

import (
	"time"

	"github.com/pribylovaa/go-market-feed/internal/query"
)

// SearchQuery — сохранённый поисковый запрос.
//
// Особенности:
//   - Spec — строка-спецификация (URL поиска). Служит ключом чекпоинта,
//     поэтому сравнивается байт-в-байт и никогда не нормализуется;
//   - метаданные (ReferencePrice, GroupID) переносятся без изменений
//     в каждый found-листинг этого запроса.
type SearchQuery struct {
	// Spec — исходная строка запроса (URL сохранённого поиска).
	Spec string
	// ReferencePrice — ориентир цены из кураторского списка. 0 — не задан.
	ReferencePrice float64
	// GroupID — числовой идентификатор группы запросов. 0 — не задан.
	GroupID int64
}

// Listing — найденный лот. Эфемерная сущность: строится на каждом
// запуске заново и не переживает процесс; в фид попадает только
// производная запись.
type Listing struct {
	// ID — идентификатор лота в пространстве имён API.
	ID string
	// URL — каноническая ссылка на лот.
	URL string
	// Title — заголовок лота.
	Title string
	// StartTime — момент публикации лота (UTC).
	StartTime time.Time
	// AgeDays — полных дней с момента публикации. Вычисляется на момент
	// обхода, между запусками не хранится.
	AgeDays int
	// Active — лот всё ещё торгуется. Новые поколения API не возвращают
	// завершённые лоты, поле остаётся для совместимости со старым фильтром.
	Active bool
	// ImageURL — ссылка на картинку лота.
	ImageURL string
	// Price — текущая цена.
	Price float64
	// ShippingPrice — цена доставки; nil, если API её не сообщил.
	ShippingPrice *float64
	// Country — страна продавца.
	Country string
	// BuyItNow — доступна ли мгновенная покупка.
	BuyItNow bool
	// Params — параметры поиска, которыми лот был найден (для описания
	// происхождения в теле записи фида).
	Params query.SearchParams
	// Query — исходный запрос со всеми метаданными.
	Query SearchQuery
}
