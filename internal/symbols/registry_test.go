package symbols

import (
	"testing"
	"time"
)

func TestRegistryOrdersLongestFirst(t *testing.T) {
	// Deliberately inserted shortest-first; the registry must reorder.
	r := NewRegistry([]Instrument{
		{Ticker: "NIFTY", LotSize: 75},
		{Ticker: "BANKNIFTY", LotSize: 35},
		{Ticker: "NIFTYNXT50", LotSize: 25},
	})

	tickers := r.Tickers()
	if tickers[0] != "NIFTYNXT50" {
		t.Errorf("expected NIFTYNXT50 first, got %v", tickers)
	}
	if tickers[len(tickers)-1] != "NIFTY" {
		t.Errorf("expected NIFTY last, got %v", tickers)
	}
}

func TestRegistryMatchPrefix(t *testing.T) {
	r := NewRegistry([]Instrument{
		{Ticker: "NIFTY", ExpiryWeekday: time.Thursday, LotSize: 75},
		{Ticker: "NIFTYNXT50", ExpiryWeekday: time.Friday, LotSize: 25},
	})

	inst, ok := r.MatchPrefix("NIFTYNXT5024DEC24000")
	if !ok || inst.Ticker != "NIFTYNXT50" {
		t.Errorf("expected NIFTYNXT50 match, got %+v (ok=%v)", inst, ok)
	}

	inst, ok = r.MatchPrefix("NIFTY24DEC24000")
	if !ok || inst.Ticker != "NIFTY" {
		t.Errorf("expected NIFTY match, got %+v (ok=%v)", inst, ok)
	}

	if _, ok := r.MatchPrefix("RELIANCE24DEC1500"); ok {
		t.Error("expected no match for RELIANCE")
	}
}

func TestRegistryNormalizesAndDeduplicates(t *testing.T) {
	r := NewRegistry([]Instrument{
		{Ticker: " nifty ", LotSize: 75},
		{Ticker: "NIFTY", LotSize: 50}, // duplicate, first entry wins
		{Ticker: "", LotSize: 10},      // dropped
	})

	if r.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", r.Len())
	}
	inst, ok := r.Lookup("NIFTY")
	if !ok || inst.LotSize != 75 {
		t.Errorf("expected first NIFTY entry to win, got %+v (ok=%v)", inst, ok)
	}
}
