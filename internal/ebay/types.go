// ebay — клиент Finding API: rate limit, повторы, классификация ошибок
// и пагинация результатов поиска.
package ebay

// Wire-структуры ответа findItemsAdvanced. Finding API в JSON-варианте
// оборачивает каждое поле в массив — отсюда срезы строк повсюду.

// findResponse — корень ответа. Пейлоады ошибок (не-200 статусы) приходят
// с errorMessage на верхнем уровне, успешные — внутри findItemsAdvancedResponse.
type findResponse struct {
	FindItemsAdvancedResponse []advancedResponse `json:"findItemsAdvancedResponse"`
	ErrorMessage              []errorMessage     `json:"errorMessage"`
}

// advancedResponse — тело ответа findItemsAdvanced.
type advancedResponse struct {
	Ack              []string           `json:"ack"`
	ErrorMessage     []errorMessage     `json:"errorMessage"`
	SearchResult     []searchResult     `json:"searchResult"`
	PaginationOutput []paginationOutput `json:"paginationOutput"`
}

// errorMessage — контейнер деталей ошибки API.
type errorMessage struct {
	Error []errorDetail `json:"error"`
}

// errorDetail — машиночитаемая пара категория/код, по которой
// квота отличается от остальных сбоев.
type errorDetail struct {
	ErrorID   []string `json:"errorId"`
	Domain    []string `json:"domain"`
	Subdomain []string `json:"subdomain"`
	Category  []string `json:"category"`
	Message   []string `json:"message"`
}

// searchResult — страница найденных лотов.
type searchResult struct {
	Item []item `json:"item"`
}

// paginationOutput — метаданные пагинации.
type paginationOutput struct {
	PageNumber []string `json:"pageNumber"`
	TotalPages []string `json:"totalPages"`
}

// item — сырой лот из ответа API.
type item struct {
	ItemID              []string        `json:"itemId"`
	Title               []string        `json:"title"`
	ViewItemURL         []string        `json:"viewItemURL"`
	GalleryURL          []string        `json:"galleryURL"`
	PictureURLSuperSize []string        `json:"pictureURLSuperSize"`
	Country             []string        `json:"country"`
	ListingInfo         []listingInfo   `json:"listingInfo"`
	SellingStatus       []sellingStatus `json:"sellingStatus"`
	ShippingInfo        []shippingInfo  `json:"shippingInfo"`
}

// listingInfo — сведения о публикации лота.
type listingInfo struct {
	StartTime   []string `json:"startTime"`
	ListingType []string `json:"listingType"`
}

// sellingStatus — состояние торгов и цена.
type sellingStatus struct {
	SellingState          []string `json:"sellingState"`
	ConvertedCurrentPrice []money  `json:"convertedCurrentPrice"`
}

// shippingInfo — стоимость доставки.
type shippingInfo struct {
	ShippingServiceCost []money `json:"shippingServiceCost"`
}

// money — денежное значение Finding API.
type money struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

// first — первый элемент «обёрнутого в массив» поля или zero value.
func first[T any](s []T) T {
	if len(s) > 0 {
		return s[0]
	}
	var zero T
	return zero
}

// items возвращает лоты текущей страницы (может быть пусто).
func (r *advancedResponse) items() []item {
	return first(r.SearchResult).Item
}

// errorDetails собирает детали ошибок из всех мест, где API их кладёт.
func errorDetails(root *findResponse, resp *advancedResponse) []errorDetail {
	var out []errorDetail
	if root != nil {
		for _, m := range root.ErrorMessage {
			out = append(out, m.Error...)
		}
	}
	if resp != nil {
		for _, m := range resp.ErrorMessage {
			out = append(out, m.Error...)
		}
	}
	return out
}
