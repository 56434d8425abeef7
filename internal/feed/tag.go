package feed

import "regexp"

// Схема идентификаторов записей: tag URI с зашитым идентификатором лота,
// детерминированная — один и тот же лот всегда даёт один и тот же id.
const tagPrefix = "tag:market-feed.pribylovaa.dev,2025:listing-"

var reTagURI = regexp.MustCompile(`^tag:market-feed\.pribylovaa\.dev,2025:listing-(\d+)$`)

// EntryID строит идентификатор записи фида для лота.
func EntryID(listingID string) string {
	return tagPrefix + listingID
}

// ParseListingID извлекает идентификатор лота из идентификатора записи.
// Возвращает ok=false для чужих или повреждённых идентификаторов.
func ParseListingID(entryID string) (string, bool) {
	m := reTagURI.FindStringSubmatch(entryID)
	if m == nil {
		return "", false
	}

	return m[1], true
}
