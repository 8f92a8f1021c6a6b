// Package registrysync refreshes per-underlying lot sizes from exchange
// market-lot pages, as a fallback when no broker session is available.
package registrysync

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"nse-symbol-decoder/internal/logger"
)

// LotSource defines one exchange page publishing market lots
type LotSource struct {
	Name         string
	URL          string
	RowSelector  string
	SymbolColumn int
	LotColumn    int
	RateLimit    time.Duration
}

// Scraper pulls lot-size tables from the configured sources
type Scraper struct {
	sources []LotSource
	timeout time.Duration
}

// NewScraper creates a scraper over the default exchange sources
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		sources: getDefaultSources(),
		timeout: timeout,
	}
}

// getDefaultSources returns the exchange pages to scrape for market lots
func getDefaultSources() []LotSource {
	return []LotSource{
		{
			Name:         "NSE-FO-MarketLots",
			URL:          "https://www.nseindia.com/products-services/equity-derivatives-market-lots",
			RowSelector:  "table tbody tr",
			SymbolColumn: 1,
			LotColumn:    2,
			RateLimit:    2 * time.Second,
		},
		{
			Name:         "BSE-Derivatives-MarketLots",
			URL:          "https://www.bseindia.com/markets/Derivatives/DeriReports/MarketLots.aspx",
			RowSelector:  "table#lotsizetable tr",
			SymbolColumn: 0,
			LotColumn:    1,
			RateLimit:    2 * time.Second,
		},
	}
}

// FetchLots scrapes all sources and merges the resulting lot sizes keyed
// by underlying ticker. A source failing wholesale is logged and skipped;
// a partial table is still worth merging.
func (s *Scraper) FetchLots(ctx context.Context) (map[string]int, error) {
	lots := make(map[string]int)

	for _, source := range s.sources {
		if err := ctx.Err(); err != nil {
			return lots, err
		}

		found, err := s.scrapeSource(ctx, source)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to scrape lot source", err, "source", source.Name)
			continue
		}
		for underlying, lot := range found {
			lots[underlying] = lot
		}

		time.Sleep(source.RateLimit)
	}

	logger.Info(ctx, "Lot-size sync completed", "underlyings", len(lots))
	return lots, nil
}

// scrapeSource parses one market-lot table
func (s *Scraper) scrapeSource(ctx context.Context, source LotSource) (map[string]int, error) {
	lots := make(map[string]int)

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
	)

	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	c.OnHTML(source.RowSelector, func(e *colly.HTMLElement) {
		underlying, lot, ok := parseLotRow(e.DOM, source.SymbolColumn, source.LotColumn)
		if !ok {
			return
		}
		lots[underlying] = lot
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Lot scraping error", err, "source", source.Name, "url", r.Request.URL.String())
	})

	if err := c.Visit(source.URL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", source.URL, err)
	}

	c.Wait()

	return lots, nil
}

// parseLotRow extracts (underlying, lot) from one table row. Header rows
// and rows whose lot cell is not a plain number are skipped.
func parseLotRow(row *goquery.Selection, symbolCol, lotCol int) (string, int, bool) {
	cells := row.Find("td")
	if cells.Length() <= lotCol || cells.Length() <= symbolCol {
		return "", 0, false
	}

	underlying := strings.ToUpper(strings.TrimSpace(cells.Eq(symbolCol).Text()))
	if underlying == "" || underlying == "SYMBOL" {
		return "", 0, false
	}

	lotText := strings.ReplaceAll(strings.TrimSpace(cells.Eq(lotCol).Text()), ",", "")
	lot, err := strconv.Atoi(lotText)
	if err != nil || lot <= 0 {
		return "", 0, false
	}

	return underlying, lot, true
}
