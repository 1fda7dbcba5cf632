package aiusage

import "errors"

// ErrInsufficientTokens is returned when a caller has no itinerary generations left this month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultTokens is the number of itinerary generations granted per month when
// no allowance is configured.
const DefaultTokens = 100

// monthLayout formats the month stored in last_reset_month.
const monthLayout = "2006-01"
