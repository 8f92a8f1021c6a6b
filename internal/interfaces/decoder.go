package interfaces

import (
	"context"

	"nse-symbol-decoder/internal/types"
)

// Decoder resolves raw exchange tradingsymbols into structured records.
// Parse methods never return a Go error for malformed input; diagnostics
// travel in the returned record's IsValid/Err fields.
type Decoder interface {
	DetectKind(symbol string) types.InstrumentKind
	ParseOptions(ctx context.Context, symbol string) types.ParsedSymbol
	ParseOptionsWithCorrection(ctx context.Context, symbol string) types.ParsedSymbol
	ParseFutures(ctx context.Context, symbol string) types.ParsedFuturesSymbol
	CorrectMalformed(symbol string) string
	LotSize(underlying string) int
	LotSizeWithSource(underlying string) (int, types.LotSizeSource)
	FormatDisplay(ps types.ParsedSymbol) string
}
