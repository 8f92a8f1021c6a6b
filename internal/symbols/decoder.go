// Package symbols decodes NSE/BSE/MCX derivative tradingsymbols into
// structured records: underlying, expiry, strike and right for options,
// underlying and expiry for futures. Malformed input is reported through
// the returned record, never through a panic or a Go error.
package symbols

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nse-symbol-decoder/internal/logger"
	"nse-symbol-decoder/internal/store"
	"nse-symbol-decoder/internal/types"
)

const (
	callMarker    = "CE"
	putMarker     = "PE"
	futuresSuffix = "FUT"

	// Shortest viable options symbol: 1-letter stock code, YYMMM date,
	// 1-digit strike, 2-letter right marker.
	minOptionSymbolLen = 9

	// Stock options without a registry entry expire on the NSE monthly
	// Thursday; used when the stock-code fallback resolves the underlying.
	fallbackExpiryWeekday = time.Thursday
)

// The three expiry+strike encodings, tried in this order against the
// remainder after the underlying is stripped. Monthly and weekly may fall
// through on semantic grounds; legacy is terminal.
var (
	monthlyForm = regexp.MustCompile(`^(\d{2})([A-Z]{3})(\d+)$`)
	weeklyForm  = regexp.MustCompile(`^(\d{2})(\d)(\d{2})(\d+)$`)
	legacyForm  = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})(\d+)$`)

	// Stock-code fallback: leading letters (ampersand allowed, M&M) then
	// the digit-led date/strike block.
	stockCodeForm = regexp.MustCompile(`^([A-Z][A-Z&]*)(\d.*)$`)

	futuresBodyForm = regexp.MustCompile(`^(\d{2})([A-Z]{3})$`)
)

// Decoder resolves raw tradingsymbols against an instrument registry.
// It owns its parse cache; create one per process (or per test) instead
// of sharing hidden global state.
type Decoder struct {
	registry   *Registry
	cache      *parseCache
	rules      []CorrectionRule
	lots       *lotOverrides
	defaultLot int
}

// Params configures a Decoder.
type Params struct {
	Registry       *Registry
	Corrections    []CorrectionRule
	DefaultLotSize int
	CacheSize      int
}

func NewDecoder(p Params) *Decoder {
	if p.Registry == nil {
		p.Registry = NewRegistry(nil)
	}
	if p.DefaultLotSize <= 0 {
		p.DefaultLotSize = 1
	}
	if p.CacheSize <= 0 {
		p.CacheSize = 4096
	}
	return &Decoder{
		registry:   p.Registry,
		cache:      newParseCache(p.CacheSize),
		rules:      p.Corrections,
		lots:       newLotOverrides(),
		defaultLot: p.DefaultLotSize,
	}
}

// NewDecoderFromConfig wires a Decoder from the application config.
func NewDecoderFromConfig(cfg *store.Config) *Decoder {
	return NewDecoder(Params{
		Registry:       NewRegistryFromConfig(cfg),
		Corrections:    correctionRulesFromConfig(cfg),
		DefaultLotSize: cfg.DefaultLotSize,
		CacheSize:      cfg.CacheSize,
	})
}

// Registry exposes the decoder's instrument registry.
func (d *Decoder) Registry() *Registry {
	return d.registry
}

// DetectKind classifies a raw symbol. It always returns a value: anything
// without an option right marker, futures suffix, or known underlying
// prefix is a stock.
func (d *Decoder) DetectKind(symbol string) types.InstrumentKind {
	sym := normalize(symbol)
	if strings.HasSuffix(sym, callMarker) || strings.HasSuffix(sym, putMarker) {
		return types.KindOptions
	}
	if strings.HasSuffix(sym, futuresSuffix) {
		return types.KindFutures
	}
	// A known underlying with trailing characters but no explicit marker
	// is treated as a futures contract.
	if inst, ok := d.registry.MatchPrefix(sym); ok && len(sym) > len(inst.Ticker) {
		return types.KindFutures
	}
	return types.KindStock
}

// ParseOptions decodes an options tradingsymbol. Successful parses are
// memoized by the normalized input for O(1) repeats.
func (d *Decoder) ParseOptions(ctx context.Context, symbol string) (out types.ParsedSymbol) {
	defer func() {
		if r := recover(); r != nil {
			out = invalidOption(symbol, fmt.Sprintf("internal parse failure: %v", r))
		}
	}()

	sym := normalize(symbol)
	if cached, ok := d.cache.get(sym); ok {
		cached.OriginalSymbol = symbol
		return cached
	}

	if len(sym) < minOptionSymbolLen {
		return invalidOption(symbol, fmt.Sprintf("symbol %q too short for an options contract", sym))
	}

	right, ok := types.RightFromMarker(sym[len(sym)-2:])
	if !ok {
		return invalidOption(symbol, fmt.Sprintf("symbol %q does not end in a CE/PE right marker", sym))
	}
	body := sym[:len(sym)-2]

	underlying, rest, weekday, ok := d.resolveUnderlying(ctx, body)
	if !ok {
		return invalidOption(symbol, fmt.Sprintf("no known underlying or stock code in %q", sym))
	}

	es, diag := resolveExpiryStrike(rest, weekday)
	if diag != "" {
		return invalidOption(symbol, diag)
	}

	ps := types.ParsedSymbol{
		OriginalSymbol: symbol,
		Underlying:     underlying,
		Kind:           types.KindOptions,
		Expiry:         es.expiry,
		Strike:         es.strike,
		Right:          right,
		IsValid:        true,
	}
	d.cache.add(sym, ps)
	return ps
}

// ParseOptionsWithCorrection parses symbol, and on failure retries once
// after malformation repair. OriginalSymbol on the result is always the
// pre-correction input so imported rows stay traceable to their source.
func (d *Decoder) ParseOptionsWithCorrection(ctx context.Context, symbol string) types.ParsedSymbol {
	ps := d.ParseOptions(ctx, symbol)
	if ps.IsValid {
		return ps
	}

	corrected := d.CorrectMalformed(symbol)
	if corrected == symbol {
		return ps
	}

	logger.Advisory(ctx, symbol, "retrying parse after strike correction", "corrected", corrected)
	reparsed := d.ParseOptions(ctx, corrected)
	if !reparsed.IsValid {
		return ps
	}
	reparsed.OriginalSymbol = symbol
	return reparsed
}

// ParseFutures decodes a futures tradingsymbol. Unlike the options path
// there is no stock-code fallback: only registry underlyings trade as
// futures here.
func (d *Decoder) ParseFutures(ctx context.Context, symbol string) (out types.ParsedFuturesSymbol) {
	defer func() {
		if r := recover(); r != nil {
			out = invalidFutures(symbol, fmt.Sprintf("internal parse failure: %v", r))
		}
	}()

	sym := normalize(symbol)
	if !strings.HasSuffix(sym, futuresSuffix) {
		return invalidFutures(symbol, fmt.Sprintf("symbol %q does not end in the FUT suffix", sym))
	}
	body := sym[:len(sym)-len(futuresSuffix)]

	inst, ok := d.registry.MatchPrefix(body)
	if !ok {
		return invalidFutures(symbol, fmt.Sprintf("no registry underlying matches %q", sym))
	}
	rest := body[len(inst.Ticker):]

	m := futuresBodyForm.FindStringSubmatch(rest)
	if m == nil {
		return invalidFutures(symbol, fmt.Sprintf("expected YYMMM expiry after %s, got %q", inst.Ticker, rest))
	}
	year := 2000 + mustAtoi(m[1])
	month, ok := monthAbbrevs[m[2]]
	if !ok {
		return invalidFutures(symbol, fmt.Sprintf("unknown month abbreviation %q", m[2]))
	}

	return types.ParsedFuturesSymbol{
		OriginalSymbol: symbol,
		Underlying:     inst.Ticker,
		Expiry:         lastDayOfMonth(year, month),
		IsValid:        true,
	}
}

// FormatDisplay renders a parsed symbol for position labels, e.g.
// "NIFTY 26-Mar-2026 24500 CE". Invalid records render as their raw input.
func (d *Decoder) FormatDisplay(ps types.ParsedSymbol) string {
	if !ps.IsValid {
		return ps.OriginalSymbol
	}
	switch ps.Kind {
	case types.KindOptions:
		return fmt.Sprintf("%s %s %d %s", ps.Underlying, ps.Expiry.Format("02-Jan-2006"), ps.Strike, ps.Right.Marker())
	case types.KindFutures:
		return fmt.Sprintf("%s %s FUT", ps.Underlying, ps.Expiry.Format("02-Jan-2006"))
	default:
		return ps.Underlying
	}
}

// resolveUnderlying strips the underlying from an options body. Registry
// tickers win; otherwise the leading-letters stock-code heuristic applies,
// with an advisory since the registry cannot enumerate every equity.
func (d *Decoder) resolveUnderlying(ctx context.Context, body string) (underlying, rest string, wd time.Weekday, ok bool) {
	if inst, found := d.registry.MatchPrefix(body); found {
		return inst.Ticker, body[len(inst.Ticker):], inst.ExpiryWeekday, true
	}

	m := stockCodeForm.FindStringSubmatch(body)
	if m == nil {
		return "", "", 0, false
	}
	logger.Advisory(ctx, body, "stock code not in registry, using default expiry convention", "stock_code", m[1])
	return m[1], m[2], fallbackExpiryWeekday, true
}

// expiryStrike is the decoded tail of an options symbol, keeping the raw
// token split so the corrector can reuse it.
type expiryStrike struct {
	datePart   string
	strikePart string
	expiry     time.Time
	strike     int
}

// resolveExpiryStrike tries the three encodings in priority order.
// A non-empty diag means no form accepted the remainder.
func resolveExpiryStrike(rest string, wd time.Weekday) (expiryStrike, string) {
	if m := monthlyForm.FindStringSubmatch(rest); m != nil {
		month, ok := monthAbbrevs[m[2]]
		if !ok {
			return expiryStrike{}, fmt.Sprintf("unknown month abbreviation %q", m[2])
		}
		strike, err := strconv.Atoi(m[3])
		if err != nil {
			return expiryStrike{}, fmt.Sprintf("strike %q is not a valid number", m[3])
		}
		year := 2000 + mustAtoi(m[1])
		return expiryStrike{
			datePart:   m[1] + m[2],
			strikePart: m[3],
			expiry:     lastWeekdayOfMonth(year, month, wd),
			strike:     strike,
		}, ""
	}

	if m := weeklyForm.FindStringSubmatch(rest); m != nil {
		monthDigit := mustAtoi(m[2])
		week := mustAtoi(m[3])
		// Out-of-range month or week is not an error here: the digits may
		// be a legacy YYMMDD date, so fall through to the next form.
		if monthDigit >= 1 && week >= 1 && week <= 5 {
			strike, err := strconv.Atoi(m[4])
			if err != nil {
				return expiryStrike{}, fmt.Sprintf("strike %q is not a valid number", m[4])
			}
			year := 2000 + mustAtoi(m[1])
			month := time.Month(monthDigit)
			return expiryStrike{
				datePart:   m[1] + m[2] + m[3],
				strikePart: m[4],
				expiry:     nthWeekdayOfMonth(year, month, wd, week),
				strike:     strike,
			}, ""
		}
	}

	if m := legacyForm.FindStringSubmatch(rest); m != nil {
		year := 2000 + mustAtoi(m[1])
		month := mustAtoi(m[2])
		day := mustAtoi(m[3])
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return expiryStrike{}, fmt.Sprintf("invalid date %q in legacy symbol", m[1]+m[2]+m[3])
		}
		expiry := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if expiry.Day() != day || expiry.Month() != time.Month(month) {
			return expiryStrike{}, fmt.Sprintf("day %d out of range for month %d", day, month)
		}
		strike, err := strconv.Atoi(m[4])
		if err != nil {
			return expiryStrike{}, fmt.Sprintf("strike %q is not a valid number", m[4])
		}
		return expiryStrike{
			datePart:   m[1] + m[2] + m[3],
			strikePart: m[4],
			expiry:     expiry,
			strike:     strike,
		}, ""
	}

	return expiryStrike{}, fmt.Sprintf("unrecognised expiry/strike segment %q", rest)
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func invalidOption(symbol, diag string) types.ParsedSymbol {
	return types.ParsedSymbol{
		OriginalSymbol: symbol,
		Kind:           types.KindOptions,
		Err:            diag,
	}
}

func invalidFutures(symbol, diag string) types.ParsedFuturesSymbol {
	return types.ParsedFuturesSymbol{
		OriginalSymbol: symbol,
		Err:            diag,
	}
}

// mustAtoi converts digit-only regex captures; the patterns guarantee the
// input is numeric and short enough not to overflow.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
