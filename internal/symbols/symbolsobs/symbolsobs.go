package symbolsobs

import (
	"context"

	"nse-symbol-decoder/internal/interfaces"
	"nse-symbol-decoder/internal/logger"
	"nse-symbol-decoder/internal/types"
)

// observableDecoder wraps a Decoder with observability (logging & tracing)
type observableDecoder struct {
	decoder interfaces.Decoder
}

// Compile-time interface check
var _ interfaces.Decoder = (*observableDecoder)(nil)

// Wrap wraps a decoder with observability middleware
func Wrap(decoder interfaces.Decoder) interfaces.Decoder {
	return &observableDecoder{
		decoder: decoder,
	}
}

func (od *observableDecoder) DetectKind(symbol string) types.InstrumentKind {
	return od.decoder.DetectKind(symbol)
}

// ParseOptions decodes an options symbol with observability
func (od *observableDecoder) ParseOptions(ctx context.Context, symbol string) types.ParsedSymbol {
	ctx, span := logger.StartSpan(ctx, "symbols.ParseOptions")
	defer span.End()

	ps := od.decoder.ParseOptions(ctx, symbol)
	if !ps.IsValid {
		logger.Debug(ctx, "Options parse rejected", "symbol", symbol, "diagnostic", ps.Err)
		return ps
	}

	logger.Debug(ctx, "Options symbol parsed",
		"symbol", symbol,
		"underlying", ps.Underlying,
		"expiry", ps.Expiry.Format("2006-01-02"),
		"strike", ps.Strike,
		"right", string(ps.Right),
	)
	return ps
}

// ParseOptionsWithCorrection parses with repair retry and observability
func (od *observableDecoder) ParseOptionsWithCorrection(ctx context.Context, symbol string) types.ParsedSymbol {
	ctx, span := logger.StartSpan(ctx, "symbols.ParseOptionsWithCorrection")
	defer span.End()

	ps := od.decoder.ParseOptionsWithCorrection(ctx, symbol)
	if !ps.IsValid {
		logger.Debug(ctx, "Options parse rejected after correction", "symbol", symbol, "diagnostic", ps.Err)
	}
	return ps
}

// ParseFutures decodes a futures symbol with observability
func (od *observableDecoder) ParseFutures(ctx context.Context, symbol string) types.ParsedFuturesSymbol {
	ctx, span := logger.StartSpan(ctx, "symbols.ParseFutures")
	defer span.End()

	pf := od.decoder.ParseFutures(ctx, symbol)
	if !pf.IsValid {
		logger.Debug(ctx, "Futures parse rejected", "symbol", symbol, "diagnostic", pf.Err)
		return pf
	}

	logger.Debug(ctx, "Futures symbol parsed",
		"symbol", symbol,
		"underlying", pf.Underlying,
		"expiry", pf.Expiry.Format("2006-01-02"),
	)
	return pf
}

func (od *observableDecoder) CorrectMalformed(symbol string) string {
	return od.decoder.CorrectMalformed(symbol)
}

func (od *observableDecoder) LotSize(underlying string) int {
	return od.decoder.LotSize(underlying)
}

func (od *observableDecoder) LotSizeWithSource(underlying string) (int, types.LotSizeSource) {
	return od.decoder.LotSizeWithSource(underlying)
}

func (od *observableDecoder) FormatDisplay(ps types.ParsedSymbol) string {
	return od.decoder.FormatDisplay(ps)
}
