package symbols

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"nse-symbol-decoder/internal/types"
)

func TestParseCacheBounded(t *testing.T) {
	c := newParseCache(3)

	for i := 0; i < 10; i++ {
		key := fmt.Sprintf("SYM%d", i)
		c.add(key, types.ParsedSymbol{OriginalSymbol: key, IsValid: true})
	}

	if c.len() != 3 {
		t.Errorf("expected cache capped at 3 entries, got %d", c.len())
	}
	if _, ok := c.get("SYM0"); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := c.get("SYM9"); !ok {
		t.Error("expected newest entry to be retained")
	}
}

func TestCacheOnlyStoresSuccessfulParses(t *testing.T) {
	d := newTestDecoder()
	ctx := context.Background()

	d.ParseOptions(ctx, "NIFTYABCDEF24000CE")
	if d.cache.len() != 0 {
		t.Errorf("rejected parses must not be cached, got %d entries", d.cache.len())
	}

	d.ParseOptions(ctx, "NIFTY24DEC24000CE")
	if d.cache.len() != 1 {
		t.Errorf("expected 1 cached entry, got %d", d.cache.len())
	}
}

func TestDecoderConcurrentParses(t *testing.T) {
	d := newTestDecoder()
	ctx := context.Background()

	symbols := []string{
		"NIFTY24DEC24000CE",
		"BANKNIFTY24DEC48000PE",
		"SENSEX25OCT68400CE",
		"NIFTY26MARFUT",
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, sym := range symbols {
				if d.DetectKind(sym) == types.KindFutures {
					d.ParseFutures(ctx, sym)
					continue
				}
				ps := d.ParseOptions(ctx, sym)
				if !ps.IsValid {
					t.Errorf("unexpected rejection for %q: %s", sym, ps.Err)
				}
			}
		}()
	}
	wg.Wait()
}
