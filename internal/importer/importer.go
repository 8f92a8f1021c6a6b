// Package importer is the enrichment step of the journal import pipeline:
// it classifies each incoming trade row, decodes its symbol, and attaches
// lot information. Reading the rows (CSV, API, ...) is the caller's job.
package importer

import (
	"context"

	"nse-symbol-decoder/internal/interfaces"
	"nse-symbol-decoder/internal/logger"
	"nse-symbol-decoder/internal/types"
)

// Row is one incoming trade line before enrichment.
type Row struct {
	Symbol   string  `json:"symbol"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// EnrichedRow is a row the decoder accepted.
type EnrichedRow struct {
	Row
	Kind       types.InstrumentKind       `json:"instrument_kind"`
	Parsed     *types.ParsedSymbol        `json:"parsed,omitempty"`
	Futures    *types.ParsedFuturesSymbol `json:"futures,omitempty"`
	Underlying string                     `json:"underlying"`
	LotSize    int                        `json:"lot_size"`
	LotSource  types.LotSizeSource        `json:"lot_source"`
	Lots       int                        `json:"lots"`
	Display    string                     `json:"display"`
}

// RowError reports a rejected row without aborting the batch.
type RowError struct {
	Index      int    `json:"index"`
	Symbol     string `json:"symbol"`
	Diagnostic string `json:"diagnostic"`
}

// Result is the outcome of enriching one batch.
type Result struct {
	Rows   []EnrichedRow `json:"rows"`
	Errors []RowError    `json:"errors"`
}

// Enrich classifies and decodes a batch of rows. Rejected rows are
// reported per-index in Result.Errors; the rest of the batch proceeds.
func Enrich(ctx context.Context, dec interfaces.Decoder, rows []Row) Result {
	var res Result

	for i, row := range rows {
		enriched, diag := enrichRow(ctx, dec, row)
		if diag != "" {
			logger.Warn(ctx, "Import row rejected", "row", i, "symbol", row.Symbol, "diagnostic", diag)
			res.Errors = append(res.Errors, RowError{Index: i, Symbol: row.Symbol, Diagnostic: diag})
			continue
		}
		res.Rows = append(res.Rows, enriched)
	}

	return res
}

func enrichRow(ctx context.Context, dec interfaces.Decoder, row Row) (EnrichedRow, string) {
	enriched := EnrichedRow{Row: row}
	enriched.Kind = dec.DetectKind(row.Symbol)

	switch enriched.Kind {
	case types.KindOptions:
		ps := dec.ParseOptionsWithCorrection(ctx, row.Symbol)
		if !ps.IsValid {
			return EnrichedRow{}, ps.Err
		}
		enriched.Parsed = &ps
		enriched.Underlying = ps.Underlying
		enriched.Display = dec.FormatDisplay(ps)

	case types.KindFutures:
		pf := dec.ParseFutures(ctx, row.Symbol)
		if !pf.IsValid {
			return EnrichedRow{}, pf.Err
		}
		enriched.Futures = &pf
		enriched.Underlying = pf.Underlying
		enriched.Display = dec.FormatDisplay(types.ParsedSymbol{
			Underlying: pf.Underlying,
			Kind:       types.KindFutures,
			Expiry:     pf.Expiry,
			IsValid:    true,
		})

	default:
		enriched.Underlying = row.Symbol
		enriched.Display = row.Symbol
	}

	enriched.LotSize, enriched.LotSource = dec.LotSizeWithSource(enriched.Underlying)
	if enriched.LotSize > 0 && row.Quantity > 0 {
		enriched.Lots = row.Quantity / enriched.LotSize
	}

	return enriched, ""
}
