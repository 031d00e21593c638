package value

import (
	"strconv"
	"strings"

	"notion-config-tool/internal/domain/property"
)

const (
	lotteryKeyPrefix     = "exc_lottery_"
	lotteryCounterPrefix = "lottery.times."
	keyItemPrefix        = "key."
)

// LotteryKey is the wire form of an exchange id: exc_lottery_ followed by the
// id with dots replaced by underscores.
func LotteryKey(exchangeID string) string {
	return lotteryKeyPrefix + strings.ReplaceAll(exchangeID, ".", "_")
}

// TrimLotteryKey strips the exc_lottery_ prefix if present.
func TrimLotteryKey(key string) string {
	return strings.TrimPrefix(key, lotteryKeyPrefix)
}

// LotteryCounter names the draw counter used by the pity mechanic.
func LotteryCounter(exchangeID string) string {
	return lotteryCounterPrefix + exchangeID
}

// KeySpend consumes one key of the box.
func KeySpend(exchangeID string) string {
	return Merchandise(keyItemPrefix+exchangeID, 1)
}

// Merchandise encodes itemId:quantity.
func Merchandise(itemID string, quantity float64) string {
	return itemID + ":" + property.FormatNumber(quantity)
}

// SplitMerchandise is the inverse of Merchandise. A missing or malformed
// quantity yields 0.
func SplitMerchandise(s string) (string, float64) {
	id, qty, _ := strings.Cut(s, ":")

	n, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return id, 0
	}

	return id, n
}
