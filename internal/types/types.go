package types

import "time"

// InstrumentKind classifies a raw tradingsymbol.
type InstrumentKind string

const (
	KindStock   InstrumentKind = "STOCK"
	KindFutures InstrumentKind = "FUTURES"
	KindOptions InstrumentKind = "OPTIONS"
)

// OptionRight is the exercise right of an options contract.
type OptionRight string

const (
	RightCall OptionRight = "CALL"
	RightPut  OptionRight = "PUT"
)

// Marker returns the two-letter NSE suffix for the right (CE/PE).
func (r OptionRight) Marker() string {
	if r == RightPut {
		return "PE"
	}
	return "CE"
}

// RightFromMarker maps an NSE right suffix back to an OptionRight.
func RightFromMarker(marker string) (OptionRight, bool) {
	switch marker {
	case "CE":
		return RightCall, true
	case "PE":
		return RightPut, true
	}
	return "", false
}

// ParsedSymbol is the decoded form of an options (or stock) tradingsymbol.
// When IsValid is false, Err carries the diagnostic and the derived fields
// are zero-valued. OriginalSymbol is always the caller's raw input, even
// when the parse succeeded only after malformation correction.
type ParsedSymbol struct {
	OriginalSymbol string         `json:"original_symbol"`
	Underlying     string         `json:"underlying"`
	Kind           InstrumentKind `json:"instrument_kind"`
	Expiry         time.Time      `json:"expiry,omitempty"`
	Strike         int            `json:"strike,omitempty"`
	Right          OptionRight    `json:"right,omitempty"`
	IsValid        bool           `json:"is_valid"`
	Err            string         `json:"error,omitempty"`
}

// ParsedFuturesSymbol is the decoded form of a futures tradingsymbol.
// Futures expiry is the last calendar day of the contract month, a coarser
// convention than the weekday-based options expiry.
type ParsedFuturesSymbol struct {
	OriginalSymbol string    `json:"original_symbol"`
	Underlying     string    `json:"underlying"`
	Expiry         time.Time `json:"expiry,omitempty"`
	IsValid        bool      `json:"is_valid"`
	Err            string    `json:"error,omitempty"`
}

// LotSizeSource identifies which layer of the lot-size fallback chain
// resolved a lookup, so downstream sizing logic can tell a configured
// value from a guessed one.
type LotSizeSource string

const (
	LotFromConfig          LotSizeSource = "config"
	LotFromKite            LotSizeSource = "kite"
	LotFromLegacyCommodity LotSizeSource = "legacy-commodity"
	LotFromLegacyIndex     LotSizeSource = "legacy-index"
	LotFromLegacyStock     LotSizeSource = "legacy-stock"
	LotFromDefault         LotSizeSource = "default"
)
