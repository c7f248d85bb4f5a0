package currencies

import "github.com/sig-0/fcbrates/storage/types"

var (
	TWD types.Currency = "TWD"
	USD types.Currency = "USD"
	EUR types.Currency = "EUR"
	JPY types.Currency = "JPY"
	CNY types.Currency = "CNY"
	HKD types.Currency = "HKD"
	GBP types.Currency = "GBP"
)
