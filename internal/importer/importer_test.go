package importer

import (
	"context"
	"testing"

	"nse-symbol-decoder/internal/store"
	"nse-symbol-decoder/internal/symbols"
	"nse-symbol-decoder/internal/types"
)

func TestEnrichBatch(t *testing.T) {
	dec := symbols.NewDecoderFromConfig(store.DefaultConfig())
	ctx := context.Background()

	rows := []Row{
		{Symbol: "NIFTY24DEC24000CE", Quantity: 150, Price: 120.5},
		{Symbol: "NIFTY26MARFUT", Quantity: 150, Price: 24100},
		{Symbol: "TCS", Quantity: 350, Price: 4100},
		{Symbol: "NIFTYABCDEF24000CE", Quantity: 75, Price: 10}, // malformed, must not abort the batch
	}

	res := Enrich(ctx, dec, rows)

	if len(res.Rows) != 3 {
		t.Fatalf("expected 3 enriched rows, got %d", len(res.Rows))
	}
	if len(res.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(res.Errors))
	}

	if res.Errors[0].Index != 3 || res.Errors[0].Diagnostic == "" {
		t.Errorf("expected a diagnostic for row 3, got %+v", res.Errors[0])
	}

	opt := res.Rows[0]
	if opt.Kind != types.KindOptions || opt.Parsed == nil {
		t.Fatalf("expected an options row, got %+v", opt)
	}
	if opt.LotSize != 75 || opt.Lots != 2 {
		t.Errorf("expected 2 lots of 75, got %d lots of %d", opt.Lots, opt.LotSize)
	}
	if opt.LotSource != types.LotFromConfig {
		t.Errorf("expected config lot source, got %s", opt.LotSource)
	}
	if opt.Display == "" {
		t.Error("expected a display string")
	}

	fut := res.Rows[1]
	if fut.Kind != types.KindFutures || fut.Futures == nil {
		t.Fatalf("expected a futures row, got %+v", fut)
	}
	if fut.Underlying != "NIFTY" || fut.Lots != 2 {
		t.Errorf("expected 2 NIFTY lots, got %+v", fut)
	}

	stock := res.Rows[2]
	if stock.Kind != types.KindStock {
		t.Fatalf("expected a stock row, got %+v", stock)
	}
	// TCS resolves through the legacy per-stock table: 350 qty / 175 lot.
	if stock.LotSize != 175 || stock.Lots != 2 {
		t.Errorf("expected 2 lots of 175, got %d lots of %d", stock.Lots, stock.LotSize)
	}
	if stock.LotSource != types.LotFromLegacyStock {
		t.Errorf("expected legacy-stock lot source, got %s", stock.LotSource)
	}
}

func TestEnrichEmptyBatch(t *testing.T) {
	dec := symbols.NewDecoderFromConfig(store.DefaultConfig())

	res := Enrich(context.Background(), dec, nil)
	if len(res.Rows) != 0 || len(res.Errors) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}
