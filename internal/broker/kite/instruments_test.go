package kite

import (
	"testing"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"
)

func TestMergeLotSizes(t *testing.T) {
	lots := make(map[string]int)

	// The dump repeats each underlying once per strike; only the first
	// row should count.
	instruments := kiteconnect.Instruments{
		{Name: "NIFTY", Tradingsymbol: "NIFTY24DEC24000CE", LotSize: 75},
		{Name: "NIFTY", Tradingsymbol: "NIFTY24DEC24100CE", LotSize: 75},
		{Name: "RELIANCE", Tradingsymbol: "RELIANCE24DEC3000CE", LotSize: 250},
		{Name: "", Tradingsymbol: "UNNAMED", LotSize: 10},
		{Name: "ZEROLOT", Tradingsymbol: "ZEROLOT24DEC100CE", LotSize: 0},
	}

	added := mergeLotSizes(lots, instruments)
	if added != 2 {
		t.Errorf("expected 2 underlyings added, got %d", added)
	}
	if lots["NIFTY"] != 75 {
		t.Errorf("NIFTY lot = %d, want 75", lots["NIFTY"])
	}
	if lots["RELIANCE"] != 250 {
		t.Errorf("RELIANCE lot = %d, want 250", lots["RELIANCE"])
	}
	if _, ok := lots[""]; ok {
		t.Error("unnamed instruments must be skipped")
	}
	if _, ok := lots["ZEROLOT"]; ok {
		t.Error("zero lot sizes must be skipped")
	}
}

func TestMergeLotSizesKeepsExisting(t *testing.T) {
	lots := map[string]int{"NIFTY": 75}

	added := mergeLotSizes(lots, kiteconnect.Instruments{
		{Name: "NIFTY", LotSize: 50},
	})
	if added != 0 {
		t.Errorf("expected no new underlyings, got %d", added)
	}
	if lots["NIFTY"] != 75 {
		t.Errorf("existing lot overwritten: got %d", lots["NIFTY"])
	}
}

func TestNewDefaultsExchange(t *testing.T) {
	c := New(Params{APIKey: "key", AccessToken: "token"})
	if len(c.p.Exchanges) != 1 || c.p.Exchanges[0] != "NFO" {
		t.Errorf("expected NFO default, got %v", c.p.Exchanges)
	}
}
