// query — транслятор сохранённых поисковых запросов в параметры Finding API.
//
// Входная спецификация — URL сохранённого поиска eBay. По форме пути
// определяется набор фильтров API; нераспознанные формы отклоняются
// с ошибкой BadQueryError (для оркестратора она нефатальна).
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Значения по умолчанию, которые транслятор проставляет каждому запросу.
const (
	defaultSortOrder      = "StartTimeNewest"
	defaultOutputSelector = "PictureURLSuperSize"
	defaultEntriesPerPage = 100
)

// BadQueryError — спецификация, которую транслятор не смог интерпретировать.
//
/// Нефатальна для обхода в целом: вызывающая сторона логирует и пропускает
// запрос.
type BadQueryError struct {
	// Spec — исходная спецификация.
	Spec string
	// Reason — краткое описание причины.
	Reason string
}

func (e *BadQueryError) Error() string {
	return fmt.Sprintf("bad search query %q: %s", e.Spec, e.Reason)
}

// SearchParams — типизированный набор параметров одного поиска.
//
// Особенности:
//   - пустое строковое поле означает «фильтр не задан»;
//   - ModTimeFrom проставляется вызывающей стороной (нижняя граница
//     «изменено после», чтобы повторные запуски тянули только новое);
//   - Page == 0 означает первую страницу (API не требует явного номера).
type SearchParams struct {
	// CategoryID — ограничение по категории.
	CategoryID string
	// Keywords — поисковая строка.
	Keywords string
	// SearchDescription — искать и в описании, не только в заголовке.
	SearchDescription bool
	// LocatedIn — географическое предпочтение (US/WorldWide/North America).
	LocatedIn string
	// Seller — ограничение по продавцу.
	Seller string
	// ModTimeFrom — нижняя граница времени изменения лота.
	ModTimeFrom time.Time
	// Page — номер страницы пагинации (0 и 1 — первая).
	Page int
	// EntriesPerPage — размер страницы. 0 — применяется default (100).
	EntriesPerPage int
}

// WithPage возвращает копию параметров с заданным номером страницы.
func (p SearchParams) WithPage(n int) SearchParams {
	p.Page = n
	return p
}

// Values отображает параметры в query string Finding API.
//
// Особенности нумерации itemFilter: при единственном фильтре API принимает
// плоские ключи itemFilter.name/itemFilter.value, при нескольких — только
// индексированные itemFilter(N).name/itemFilter(N).value.
func (p SearchParams) Values() url.Values {
	v := url.Values{}
	v.Set("sortOrder", defaultSortOrder)
	v.Set("outputSelector", defaultOutputSelector)

	perPage := p.EntriesPerPage
	if perPage <= 0 {
		perPage = defaultEntriesPerPage
	}
	v.Set("paginationInput.entriesPerPage", strconv.Itoa(perPage))

	if p.Page >= 2 {
		v.Set("paginationInput.pageNumber", strconv.Itoa(p.Page))
	}

	if p.CategoryID != "" {
		v.Set("categoryId", p.CategoryID)
	}

	if p.Keywords != "" {
		v.Set("keywords", p.Keywords)
	}

	if p.SearchDescription {
		v.Set("descriptionSearch", "true")
	}

	type filter struct{ name, value string }
	var filters []filter

	if p.LocatedIn != "" {
		filters = append(filters, filter{"LocatedIn", p.LocatedIn})
	}

	if p.Seller != "" {
		filters = append(filters, filter{"Seller", p.Seller})
	}

	if !p.ModTimeFrom.IsZero() {
		filters = append(filters, filter{"ModTimeFrom", p.ModTimeFrom.UTC().Format(time.RFC3339)})
	}

	switch len(filters) {
	case 0:
	case 1:
		v.Set("itemFilter.name", filters[0].name)
		v.Set("itemFilter.value", filters[0].value)
	default:
		for i, f := range filters {
			v.Set(fmt.Sprintf("itemFilter(%d).name", i), f.name)
			v.Set(fmt.Sprintf("itemFilter(%d).value", i), f.value)
		}
	}

	return v
}

// Translate разбирает спецификацию сохранённого поиска.
//
// Поддерживаемые формы пути:
//   - .../i.html — поиск по ключевым словам/категории (с необязательным
//     гео-предпочтением LH_PrefLoc);
//   - .../m.html — поиск по продавцу (_ssn).
//
/// Ошибки:
//   - *BadQueryError — форма пути или значение параметра не распознаны.
func Translate(spec string) (SearchParams, error) {
	u, err := url.Parse(spec)
	if err != nil {
		return SearchParams{}, &BadQueryError{Spec: spec, Reason: "unparseable url"}
	}

	params := u.Query()
	var p SearchParams

	switch {
	case strings.HasSuffix(u.Path, "i.html"):
		if err := addCategory(u.Path, &p); err != nil {
			return SearchParams{}, err
		}
		addKeywords(params, &p)
		if err := addLocationPreference(spec, params, &p); err != nil {
			return SearchParams{}, err
		}
	case strings.HasSuffix(u.Path, "m.html"):
		p.Seller = params.Get("_ssn")
	default:
		return SearchParams{}, &BadQueryError{Spec: spec, Reason: "unrecognized path shape"}
	}

	return p, nil
}

// addCategory извлекает идентификатор категории из пути поиска.
// Путь из трёх сегментов — поиск без категории, из пяти — категория
// в четвёртом сегменте; остальные формы не поддерживаются.
func addCategory(path string, p *SearchParams) error {
	parts := strings.Split(path, "/")
	switch len(parts) {
	case 3:
	case 5:
		p.CategoryID = parts[3]
	default:
		return &BadQueryError{Spec: path, Reason: "cannot handle path"}
	}

	return nil
}

// addKeywords переносит поисковую строку и флаг поиска по описанию.
func addKeywords(params url.Values, p *SearchParams) {
	if kw := params.Get("_nkw"); kw != "" {
		p.Keywords = kw
	}

	if params.Get("LH_TitleDesc") == "1" {
		p.SearchDescription = true
	}
}

// addLocationPreference отображает LH_PrefLoc в значение фильтра LocatedIn.
func addLocationPreference(spec string, params url.Values, p *SearchParams) error {
	pref := params.Get("LH_PrefLoc")
	if pref == "" {
		return nil
	}

	switch pref {
	case "1":
		p.LocatedIn = "US"
	case "2":
		p.LocatedIn = "WorldWide"
	case "3":
		p.LocatedIn = "North America"
	default:
		return &BadQueryError{Spec: spec, Reason: fmt.Sprintf("cannot handle location preference %q", pref)}
	}

	return nil
}
