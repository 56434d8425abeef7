package feed

import (
	"fmt"
	"html"
	"strings"

	"github.com/pribylovaa/go-market-feed/internal/models"
)

// describe строит HTML-тело записи: цена (с пометкой мгновенной покупки),
// доставка, картинка, страна и происхождение лота — ключевые слова или
// продавец из параметров поиска, ориентир цены из метаданных запроса.
func describe(l models.Listing) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<p>$%.2f", l.Price)
	if l.BuyItNow {
		sb.WriteString(" (BIN)")
	}
	sb.WriteString("</p>")

	if l.ShippingPrice != nil {
		fmt.Fprintf(&sb, "<p>+ $%.2f shipping</p>", *l.ShippingPrice)
	}

	fmt.Fprintf(&sb, `<img src="%s"/>`, html.EscapeString(l.ImageURL))

	if l.Country != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(l.Country))
	}

	if l.Params.Keywords != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(l.Params.Keywords))
	}

	if l.Params.Seller != "" {
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(l.Params.Seller))
	}

	if l.Query.ReferencePrice > 0 {
		fmt.Fprintf(&sb, "<p>ref $%.2f</p>", l.Query.ReferencePrice)
	}

	return sb.String()
}
