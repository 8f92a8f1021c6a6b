package symbols

import (
	"sort"
	"strings"
	"time"

	"nse-symbol-decoder/internal/store"
)

// Instrument is one registry entry: a known derivatives underlying with
// its expiry convention and contract multiplier.
type Instrument struct {
	Ticker        string
	Name          string
	Exchange      string
	ExpiryWeekday time.Weekday
	LotSize       int
	TickSize      float64
}

// Registry holds the known underlyings. Prefix matching is always done in
// descending ticker-length order so that a short ticker never shadows a
// longer one it is a prefix of (NIFTY vs NIFTYNXT50). That ordering is a
// correctness requirement, not an optimization, so the registry enforces
// it at construction instead of trusting input order.
//
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	byTicker map[string]Instrument
	ordered  []Instrument
}

func NewRegistry(instruments []Instrument) *Registry {
	r := &Registry{
		byTicker: make(map[string]Instrument, len(instruments)),
		ordered:  make([]Instrument, 0, len(instruments)),
	}
	for _, inst := range instruments {
		ticker := strings.ToUpper(strings.TrimSpace(inst.Ticker))
		if ticker == "" {
			continue
		}
		inst.Ticker = ticker
		if _, exists := r.byTicker[ticker]; exists {
			continue
		}
		r.byTicker[ticker] = inst
		r.ordered = append(r.ordered, inst)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		if len(r.ordered[i].Ticker) != len(r.ordered[j].Ticker) {
			return len(r.ordered[i].Ticker) > len(r.ordered[j].Ticker)
		}
		return r.ordered[i].Ticker < r.ordered[j].Ticker
	})
	return r
}

// NewRegistryFromConfig builds a registry from the configured instrument table.
func NewRegistryFromConfig(cfg *store.Config) *Registry {
	instruments := make([]Instrument, 0, len(cfg.Instruments))
	for _, ic := range cfg.Instruments {
		instruments = append(instruments, Instrument{
			Ticker:        ic.Ticker,
			Name:          ic.Name,
			Exchange:      ic.Exchange,
			ExpiryWeekday: time.Weekday(ic.ExpiryWeekday),
			LotSize:       ic.LotSize,
			TickSize:      ic.TickSize,
		})
	}
	return NewRegistry(instruments)
}

// Lookup returns the entry for an exact ticker.
func (r *Registry) Lookup(ticker string) (Instrument, bool) {
	inst, ok := r.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return inst, ok
}

// MatchPrefix returns the longest registry ticker that prefixes symbol.
func (r *Registry) MatchPrefix(symbol string) (Instrument, bool) {
	for _, inst := range r.ordered {
		if strings.HasPrefix(symbol, inst.Ticker) {
			return inst, true
		}
	}
	return Instrument{}, false
}

// Tickers returns all tickers in matching order (longest first).
func (r *Registry) Tickers() []string {
	tickers := make([]string, len(r.ordered))
	for i, inst := range r.ordered {
		tickers[i] = inst.Ticker
	}
	return tickers
}

func (r *Registry) Len() int {
	return len(r.ordered)
}
