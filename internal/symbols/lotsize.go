package symbols

import (
	"sync"

	"nse-symbol-decoder/internal/types"
)

// Historical lot sizes retained for positions opened before the registry
// values took effect. The registry (and any broker-hydrated overrides)
// always win; these are fallbacks only.
var legacyCommodityLots = map[string]int{
	"CRUDEOIL":   100,
	"CRUDEOILM":  10,
	"NATURALGAS": 1250,
	"NATGASMINI": 250,
	"GOLD":       100,
	"GOLDM":      10,
	"SILVER":     30,
	"SILVERM":    5,
	"COPPER":     2500,
	"ZINC":       5000,
	"ALUMINIUM":  5000,
	"LEAD":       5000,
}

var legacyIndexLots = map[string]int{
	"NIFTY":      50,
	"NIFTYNXT50": 10,
	"BANKNIFTY":  15,
	"FINNIFTY":   40,
	"MIDCPNIFTY": 75,
	"SENSEX":     10,
	"BANKEX":     15,
}

var legacyStockLots = map[string]int{
	"RELIANCE":   250,
	"TCS":        175,
	"INFY":       400,
	"HDFCBANK":   550,
	"ICICIBANK":  700,
	"SBIN":       750,
	"AXISBANK":   625,
	"KOTAKBANK":  400,
	"TATAMOTORS": 550,
	"TATASTEEL":  5500,
	"ITC":        1600,
	"LT":         150,
	"M&M":        350,
}

// lotOverrides holds runtime-hydrated lot sizes (broker instrument dump or
// exchange scrape). Guarded because hydration may race with parsing.
type lotOverrides struct {
	mu   sync.RWMutex
	lots map[string]int
}

func newLotOverrides() *lotOverrides {
	return &lotOverrides{lots: make(map[string]int)}
}

func (lo *lotOverrides) get(underlying string) (int, bool) {
	lo.mu.RLock()
	defer lo.mu.RUnlock()

	lot, ok := lo.lots[underlying]
	return lot, ok
}

func (lo *lotOverrides) setAll(lots map[string]int) {
	lo.mu.Lock()
	defer lo.mu.Unlock()

	for underlying, lot := range lots {
		if lot > 0 {
			lo.lots[underlying] = lot
		}
	}
}

// SetLotOverrides merges broker- or exchange-sourced lot sizes into the
// decoder. Non-positive values are ignored.
func (d *Decoder) SetLotOverrides(lots map[string]int) {
	d.lots.setAll(lots)
}

// LotSize resolves the contract multiplier for an underlying. It is a
// total function: unknown tickers fall through the chain to the default
// rather than failing, so an import never aborts on a missing lot size.
// Callers that need to know how confident the answer is should use
// LotSizeWithSource.
func (d *Decoder) LotSize(underlying string) int {
	lot, _ := d.LotSizeWithSource(underlying)
	return lot
}

// LotSizeWithSource resolves the lot size and reports which layer of the
// fallback chain produced it: registry config, broker overrides, the
// legacy commodity/index/stock tables, then the configured default.
func (d *Decoder) LotSizeWithSource(underlying string) (int, types.LotSizeSource) {
	u := normalize(underlying)

	if inst, ok := d.registry.Lookup(u); ok && inst.LotSize > 0 {
		return inst.LotSize, types.LotFromConfig
	}
	if lot, ok := d.lots.get(u); ok {
		return lot, types.LotFromKite
	}
	if lot, ok := legacyCommodityLots[u]; ok {
		return lot, types.LotFromLegacyCommodity
	}
	if lot, ok := legacyIndexLots[u]; ok {
		return lot, types.LotFromLegacyIndex
	}
	if lot, ok := legacyStockLots[u]; ok {
		return lot, types.LotFromLegacyStock
	}
	if d.defaultLot > 0 {
		return d.defaultLot, types.LotFromDefault
	}
	return 1, types.LotFromDefault
}
