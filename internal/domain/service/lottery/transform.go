// Package lottery builds machine gain tables and their wiki projection from
// lottery database rows.
package lottery

import (
	"fmt"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/value"
)

const (
	NoDataMessage = "No lottery data"

	callbackAdd = "merchandise.add"
	callbackSet = "merchandise.set"
)

// Result is the outcome of transforming one box. Error is set only for the
// empty group sentinel.
type Result struct {
	ExchangeID string               `json:"exchangeId"`
	Key        string               `json:"key"`
	Config     entity.LotteryConfig `json:"config"`
	Wiki       entity.WikiResult    `json:"wiki"`
	Error      string               `json:"error,omitempty"`
}

// NoData is returned for an empty group so batch callers can skip it.
func NoData() Result {
	return Result{
		Config: entity.LotteryConfig{Gain: []entity.LotteryGainItem{}},
		Wiki:   entity.WikiResult{Gain: []entity.WikiGainItem{}},
		Error:  NoDataMessage,
	}
}

func (r Result) IsNoData() bool {
	return r.Error != ""
}

// Key returns the canonical key of an exchange id.
func Key(exchangeID string) string {
	return value.LotteryKey(exchangeID)
}

// Transform turns the rows of one box into its gain table and wiki result.
// Box level fields are taken from the first row.
func Transform(rows []entity.LotteryRow) (Result, error) {
	if len(rows) == 0 {
		return NoData(), nil
	}

	first := rows[0]
	exchangeID := first.ExchangeID
	threshold := first.FallbackThreshold
	counter := value.LotteryCounter(exchangeID)

	if threshold > 0 {
		if err := checkPity(rows); err != nil {
			return Result{}, fmt.Errorf("box %s: %w", exchangeID, err)
		}
	}

	config := entity.LotteryConfig{Gain: make([]entity.LotteryGainItem, 0, len(rows))}
	if first.NeedsKey {
		config.Spend = value.KeySpend(exchangeID)
	}

	wiki := entity.WikiResult{
		Name:          first.WikiDisplayName,
		Exc:           Key(exchangeID),
		Display:       first.ShowInWiki,
		FallbackTimes: threshold,
		Gain:          make([]entity.WikiGainItem, 0, len(rows)),
	}

	for _, row := range rows {
		item := entity.LotteryGainItem{Weight: row.Weight}

		if row.GainExchangeID != "" {
			ref := Key(row.GainExchangeID)
			item.SubExchanges = ref

			if threshold > 0 {
				item.Condition, item.Callback = pityGate(counter, threshold, row.IsPity)
			}

			wiki.Gain = append(wiki.Gain, entity.WikiGainItem{
				Weight:   row.Weight,
				Exc:      ref,
				Fallback: row.IsPity,
			})
		} else {
			quantity := row.Quantity
			if quantity == 0 {
				quantity = 1
			}

			item.Merchandises = []string{value.Merchandise(row.FullItemID, quantity)}

			if row.WikiItemName != "" {
				wiki.Gain = append(wiki.Gain, entity.WikiGainItem{
					Weight: row.Weight,
					Name:   row.WikiItemName,
					Data:   quantity,
				})
			}
		}

		config.Gain = append(config.Gain, item)
	}

	return Result{
		ExchangeID: exchangeID,
		Key:        Key(exchangeID),
		Config:     config,
		Wiki:       wiki,
	}, nil
}

// pityGate builds the counter condition and callback. Regular rows are
// drawable below the threshold and bump the counter; the pity row is
// drawable once the threshold is reached and resets it.
func pityGate(counter string, threshold int, pity bool) (string, *entity.Callback) {
	if pity {
		return fmt.Sprintf("{%s} >= %d", counter, threshold), &entity.Callback{
			Type:        callbackSet,
			Merchandise: value.Merchandise(counter, 0),
		}
	}

	return fmt.Sprintf("{%s} < %d", counter, threshold), &entity.Callback{
		Type:        callbackAdd,
		Merchandise: value.Merchandise(counter, 1),
	}
}

// checkPity requires exactly one reference row marked as the pity reward.
func checkPity(rows []entity.LotteryRow) error {
	count := 0

	for _, row := range rows {
		if row.GainExchangeID != "" && row.IsPity {
			count++
		}
	}

	if count != 1 {
		return domain.ErrPityMisconfigured.Wrapf("%d pity rows", count)
	}

	return nil
}
