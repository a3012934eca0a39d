// Command receipt prints priced shopping bills.
//
//	receipt -samples                         print the reference baskets
//	receipt -samples -lang fr                print them with French wording
//	receipt -file bill.json                  price a bill locally
//	receipt -file bill.json -db rates.db -rates 2026-q3
//	receipt -file bill.json -server http://localhost:8080 -token $TOKEN
//	receipt -issue-token till-1              sign a terminal token with AUTH_SECRET
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/salestax/internal/auth"
	"github.com/mmynk/salestax/internal/calculator"
	"github.com/mmynk/salestax/internal/config"
	"github.com/mmynk/salestax/internal/models"
	"github.com/mmynk/salestax/internal/service"
	"github.com/mmynk/salestax/internal/storage"
	"github.com/mmynk/salestax/internal/storage/sqlite"
	"github.com/mmynk/salestax/pkg/logging"
)

func main() {
	logging.Setup()
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			slog.Error("receipt failed", "error", err)
		}
		os.Exit(1)
	}
}

type options struct {
	samples    bool
	file       string
	dbPath     string
	rates      string
	server     string
	token      string
	issueToken string
	labels     calculator.Labels
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("receipt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.samples, "samples", false, "print the reference bills")
	fs.StringVar(&opts.file, "file", "", "JSON bill to price (array of items or {\"items\": [...]})")
	fs.StringVar(&opts.dbPath, "db", "", "SQLite rate store; standard rates are used when empty")
	fs.StringVar(&opts.rates, "rates", storage.StandardVersion, "rate table version")
	fs.StringVar(&opts.server, "server", "", "price remotely against this pricing server URL")
	fs.StringVar(&opts.token, "token", "", "terminal token sent to -server")
	fs.StringVar(&opts.issueToken, "issue-token", "", "print a token for this terminal ID")
	lang := fs.String("lang", "en", "receipt wording: en or fr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	labels, ok := calculator.LabelsFor(*lang)
	if !ok {
		return nil, fmt.Errorf("unsupported receipt language %q", *lang)
	}
	opts.labels = labels
	return opts, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	switch {
	case opts.issueToken != "":
		return issueToken(opts.issueToken, stdout)
	case opts.samples:
		for _, bill := range calculator.SampleBills() {
			fmt.Fprintln(stdout, bill.Render(opts.labels))
		}
		return nil
	case opts.file != "":
		items, err := readItems(opts.file)
		if err != nil {
			return err
		}
		if opts.server != "" {
			return priceRemote(ctx, opts, items, stdout)
		}
		return priceLocal(ctx, opts, items, stdout)
	}
	return fmt.Errorf("one of -samples, -file or -issue-token is required")
}

func issueToken(terminalID string, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if !cfg.AuthEnabled() {
		return fmt.Errorf("AUTH_SECRET must be set to issue tokens")
	}
	token, err := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL).Generate(terminalID)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token)
	return nil
}

// readItems decodes the bill file without a schema so the calculator can
// report field types.
func readItems(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bill: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse bill: %w", err)
	}
	if obj, ok := v.(map[string]any); ok {
		if items, ok := obj["items"]; ok {
			return items, nil
		}
	}
	return v, nil
}

func priceLocal(ctx context.Context, opts *options, items any, stdout io.Writer) error {
	rates := calculator.StandardRates()
	if opts.dbPath != "" {
		store, err := sqlite.New(opts.dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		table, err := store.GetRates(ctx, opts.rates)
		if err != nil {
			return err
		}
		rates = table.Rates
	}

	bill, err := calculator.BillFromRaw(items, rates)
	if err != nil {
		return err
	}
	fmt.Fprint(stdout, bill.Render(opts.labels))
	return nil
}

func priceRemote(ctx context.Context, opts *options, items any, stdout io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := service.NewPricingServiceClient(http.DefaultClient, opts.server)
	req := connect.NewRequest(&models.PriceBillRequest{Items: items, RatesVersion: opts.rates})
	if opts.token != "" {
		req.Header().Set("Authorization", "Bearer "+opts.token)
	}

	resp, err := client.PriceBill(ctx, req)
	if err != nil {
		return err
	}
	slog.Debug("Remote receipt", "receipt_id", resp.Msg.ReceiptID)
	fmt.Fprint(stdout, resp.Msg.Text)
	return nil
}
