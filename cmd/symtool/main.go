package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"nse-symbol-decoder/internal/broker/kite"
	"nse-symbol-decoder/internal/interfaces"
	"nse-symbol-decoder/internal/logger"
	"nse-symbol-decoder/internal/registrysync"
	"nse-symbol-decoder/internal/store"
	"nse-symbol-decoder/internal/symbols"
	"nse-symbol-decoder/internal/symbols/symbolsobs"
	"nse-symbol-decoder/internal/types"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	format := flag.String("format", "json", "output format: json or text")
	lotsMode := flag.Bool("lots", false, "look up lot sizes instead of parsing")
	hydrate := flag.Bool("hydrate", false, "refresh lot sizes from the broker instrument dump before parsing")
	sync := flag.Bool("sync", false, "refresh lot sizes from exchange market-lot pages before parsing")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("Error: at least one symbol argument is required")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer logger.Shutdown(ctx)

	decoder := symbols.NewDecoderFromConfig(cfg)
	hydrateLots(ctx, cfg, decoder, *hydrate, *sync)

	dec := symbolsobs.Wrap(decoder)

	for _, symbol := range flag.Args() {
		if *lotsMode {
			printLotSize(dec, symbol, *format)
			continue
		}
		printParsed(ctx, dec, symbol, *format)
	}
}

// loadConfig falls back to the built-in instrument table when the default
// config file is absent; an explicitly broken file is still an error.
func loadConfig(path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store.DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func hydrateLots(ctx context.Context, cfg *store.Config, decoder *symbols.Decoder, hydrate, sync bool) {
	if hydrate || cfg.Kite.Enabled {
		client := kite.New(kite.Params{
			APIKey:      os.Getenv("KITE_API_KEY"),
			AccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
			Exchanges:   cfg.Kite.Exchanges,
		})
		lots, err := client.FetchLotSizes(ctx)
		if err != nil {
			logger.ErrorWithErr(ctx, "Broker lot hydration failed", err)
		} else {
			decoder.SetLotOverrides(lots)
		}
	}

	if sync || cfg.Sync.Enabled {
		scraper := registrysync.NewScraper(time.Duration(cfg.Sync.TimeoutSeconds) * time.Second)
		lots, err := scraper.FetchLots(ctx)
		if err != nil {
			logger.ErrorWithErr(ctx, "Exchange lot sync failed", err)
		}
		if len(lots) > 0 {
			decoder.SetLotOverrides(lots)
		}
	}
}

func printLotSize(dec interfaces.Decoder, symbol, format string) {
	lot, source := dec.LotSizeWithSource(symbol)
	if format == "text" {
		fmt.Printf("%s: lot %d (%s)\n", symbol, lot, source)
		return
	}
	b, _ := json.Marshal(map[string]any{
		"underlying": symbol,
		"lot_size":   lot,
		"source":     source,
	})
	fmt.Println(string(b))
}

func printParsed(ctx context.Context, dec interfaces.Decoder, symbol, format string) {
	kind := dec.DetectKind(symbol)

	switch kind {
	case types.KindOptions:
		ps := dec.ParseOptionsWithCorrection(ctx, symbol)
		printRecord(dec, ps, format)
	case types.KindFutures:
		pf := dec.ParseFutures(ctx, symbol)
		if format == "text" {
			if !pf.IsValid {
				fmt.Printf("%s: %s\n", symbol, pf.Err)
				return
			}
			fmt.Printf("%s %s FUT\n", pf.Underlying, pf.Expiry.Format("02-Jan-2006"))
			return
		}
		b, _ := json.Marshal(pf)
		fmt.Println(string(b))
	default:
		if format == "text" {
			fmt.Printf("%s: stock\n", symbol)
			return
		}
		b, _ := json.Marshal(map[string]any{
			"original_symbol": symbol,
			"instrument_kind": kind,
		})
		fmt.Println(string(b))
	}
}

func printRecord(dec interfaces.Decoder, ps types.ParsedSymbol, format string) {
	if format == "text" {
		if !ps.IsValid {
			fmt.Printf("%s: %s\n", ps.OriginalSymbol, ps.Err)
			return
		}
		fmt.Println(dec.FormatDisplay(ps))
		return
	}
	b, _ := json.Marshal(ps)
	fmt.Println(string(b))
}
