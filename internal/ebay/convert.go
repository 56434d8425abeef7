package ebay

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pribylovaa/go-market-feed/internal/models"
	"github.com/pribylovaa/go-market-feed/internal/query"
)

// itemToListing доводит сырой лот API до доменного инварианта:
//   - ItemID, ViewItemURL и StartTime обязательны — иначе лот отбрасывается;
//   - StartTime приводится к UTC, возраст в полных днях считается
//     от nowUTC (момент обхода);
//   - картинка — PictureURLSuperSize с откатом на galleryURL;
//   - BuyItNow — тип лота AuctionWithBIN или FixedPrice.
func itemToListing(it item, params query.SearchParams, q models.SearchQuery, nowUTC time.Time) (models.Listing, error) {
	id := first(it.ItemID)
	itemURL := first(it.ViewItemURL)
	if id == "" || itemURL == "" {
		return models.Listing{}, fmt.Errorf("missing itemId or viewItemURL")
	}

	info := first(it.ListingInfo)

	start, err := time.Parse(time.RFC3339, first(info.StartTime))
	if err != nil {
		return models.Listing{}, fmt.Errorf("parse startTime: %w", err)
	}
	start = start.UTC()

	status := first(it.SellingStatus)

	price, err := strconv.ParseFloat(first(status.ConvertedCurrentPrice).Value, 64)
	if err != nil {
		return models.Listing{}, fmt.Errorf("parse price: %w", err)
	}

	var shipping *float64
	if raw := first(first(it.ShippingInfo).ShippingServiceCost).Value; raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			shipping = &v
		}
	}

	image := first(it.PictureURLSuperSize)
	if image == "" {
		image = first(it.GalleryURL)
	}

	listingType := first(info.ListingType)

	return models.Listing{
		ID:            id,
		URL:           itemURL,
		Title:         first(it.Title),
		StartTime:     start,
		AgeDays:       int(nowUTC.Sub(start).Hours() / 24),
		Active:        first(status.SellingState) == "Active",
		ImageURL:      image,
		Price:         price,
		ShippingPrice: shipping,
		Country:       first(it.Country),
		BuyItNow:      listingType == "AuctionWithBIN" || listingType == "FixedPrice",
		Params:        params,
		Query:         q,
	}, nil
}
