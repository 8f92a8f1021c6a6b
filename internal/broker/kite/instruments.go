// Package kite hydrates lot sizes from the Zerodha instrument dump. The
// dump lists every tradable contract; one underlying appears once per
// strike and expiry, all rows carrying the same lot size.
package kite

import (
	"context"
	"fmt"
	"strings"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"nse-symbol-decoder/internal/logger"
)

type Params struct {
	APIKey      string
	AccessToken string
	Exchanges   []string
}

type Client struct {
	p  Params
	kc *kiteconnect.Client
}

func New(p Params) *Client {
	if len(p.Exchanges) == 0 {
		p.Exchanges = []string{"NFO"}
	}

	kc := kiteconnect.New(p.APIKey)
	kc.SetAccessToken(p.AccessToken)

	return &Client{p: p, kc: kc}
}

// FetchLotSizes downloads the instrument dump for each configured exchange
// and returns per-underlying lot sizes, keyed by the underlying name
// (NIFTY, RELIANCE, ...). The first row seen for an underlying wins.
func (c *Client) FetchLotSizes(ctx context.Context) (map[string]int, error) {
	lots := make(map[string]int)

	for _, exchange := range c.p.Exchanges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		instruments, err := c.kc.GetInstrumentsByExchange(exchange)
		if err != nil {
			return nil, fmt.Errorf("fetching %s instruments: %w", exchange, err)
		}

		added := mergeLotSizes(lots, instruments)
		logger.Info(ctx, "Instrument dump fetched",
			"exchange", exchange,
			"instruments", len(instruments),
			"underlyings_added", added,
		)
	}

	return lots, nil
}

// mergeLotSizes folds an instrument dump into the lot map and reports how
// many new underlyings it contributed.
func mergeLotSizes(lots map[string]int, instruments kiteconnect.Instruments) int {
	added := 0
	for _, inst := range instruments {
		underlying := strings.ToUpper(strings.TrimSpace(inst.Name))
		if underlying == "" {
			continue
		}
		lot := int(inst.LotSize)
		if lot <= 0 {
			continue
		}
		if _, exists := lots[underlying]; exists {
			continue
		}
		lots[underlying] = lot
		added++
	}
	return added
}
