package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"github.com/osse101/BinhiHeritage_Go/internal/report"
)

const (
	exportParallelism = 4
	exportTimeout     = 30 * time.Second
	ledgerFilePattern = "ledger_%s.xlsx"
)

type exportOptions struct {
	apiURL string
	apiKey string
	users  []string
	out    string
}

func newExportCmd() *cobra.Command {
	opts := exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download visitors' transaction ledgers as XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(opts.users) == 0 {
				return fmt.Errorf("at least one --user is required")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runExport(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api-url", envOr("API_URL", "http://localhost:8080"), "Museum API base URL")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", os.Getenv("API_KEY"), "API key (default $API_KEY)")
	cmd.Flags().StringSliceVar(&opts.users, "user", nil, "Visitor id; repeat for several")
	cmd.Flags().StringVar(&opts.out, "out", ".", "Output directory")
	return cmd
}

// runExport downloads every ledger concurrently and reports the row count of each
func runExport(ctx context.Context, opts exportOptions, stdout io.Writer) error {
	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return err
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.HTTPClient.Timeout = exportTimeout

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(exportParallelism)

	for _, user := range opts.users {
		g.Go(func() error {
			path := filepath.Join(opts.out, fmt.Sprintf(ledgerFilePattern, sanitize(user)))
			rows, err := exportLedger(ctx, client, opts, user, path)
			if err != nil {
				return fmt.Errorf("export %s: %w", user, err)
			}
			mu.Lock()
			fmt.Fprintf(stdout, "%s: %d transactions -> %s\n", user, rows, path)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func exportLedger(ctx context.Context, client *retryablehttp.Client, opts exportOptions, user, path string) (int, error) {
	endpoint := opts.apiURL + "/api/v1/transactions/export?user=" + url.QueryEscape(user)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	if opts.apiKey != "" {
		req.Header.Set("X-API-Key", opts.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := gjson.GetBytes(body, "error").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return 0, fmt.Errorf("API returned %d: %s", resp.StatusCode, msg)
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	return countLedgerRows(path)
}

// countLedgerRows opens the workbook to make sure the download is a real ledger
func countLedgerRows(path string) (int, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("downloaded file is not a workbook: %w", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(report.SheetTransactions)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return len(rows) - 1, nil
}

// sanitize keeps user ids safe to use in file names
func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
