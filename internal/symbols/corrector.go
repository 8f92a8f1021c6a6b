package symbols

import (
	"strconv"
	"strings"

	"nse-symbol-decoder/internal/store"
)

// CorrectionRule describes one observed malformation class: for the given
// underlying, a six-digit strike segment opening with LeadingDigit is a
// five-digit strike with one spurious digit prepended, provided the
// stripped value lands inside the underlying's plausible strike range.
// Rules are data, not control flow; new underlyings are added by extending
// the table (or the corrections list in config.yaml).
type CorrectionRule struct {
	Underlying   string
	LeadingDigit byte
	MinStrike    int
	MaxStrike    int
}

func correctionRulesFromConfig(cfg *store.Config) []CorrectionRule {
	rules := make([]CorrectionRule, 0, len(cfg.Corrections))
	for _, cc := range cfg.Corrections {
		if len(cc.LeadingDigit) != 1 {
			continue
		}
		rules = append(rules, CorrectionRule{
			Underlying:   strings.ToUpper(strings.TrimSpace(cc.Underlying)),
			LeadingDigit: cc.LeadingDigit[0],
			MinStrike:    cc.MinStrike,
			MaxStrike:    cc.MaxStrike,
		})
	}
	return rules
}

// CorrectMalformed applies the repair rules to an options symbol and
// returns the corrected form, or the input unchanged when no rule fits.
// It never fails; "no correction" and "correction implausible" both
// return the input unchanged.
func (d *Decoder) CorrectMalformed(symbol string) string {
	sym := normalize(symbol)
	if len(sym) < minOptionSymbolLen {
		return symbol
	}
	marker := sym[len(sym)-2:]
	if marker != callMarker && marker != putMarker {
		return symbol
	}
	body := sym[:len(sym)-2]

	for _, rule := range d.rules {
		if !strings.HasPrefix(body, rule.Underlying) {
			continue
		}
		rest := body[len(rule.Underlying):]

		weekday := fallbackExpiryWeekday
		if inst, ok := d.registry.Lookup(rule.Underlying); ok {
			weekday = inst.ExpiryWeekday
		}
		es, diag := resolveExpiryStrike(rest, weekday)
		if diag != "" {
			continue
		}
		if len(es.strikePart) != 6 || es.strikePart[0] != rule.LeadingDigit {
			continue
		}
		stripped, err := strconv.Atoi(es.strikePart[1:])
		if err != nil {
			continue
		}
		if stripped < rule.MinStrike || stripped > rule.MaxStrike {
			continue
		}
		return rule.Underlying + es.datePart + es.strikePart[1:] + marker
	}
	return symbol
}
