package cmd

import (
	"testing"

	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/hledger"
)

func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagFile, flagBegin, flagCommodity, flagFormat, flagHledger = "", "", "", "", ""
	})
}

func TestBuildFetcherPrecedence(t *testing.T) {
	resetFlags(t)
	t.Setenv("LEDGER_FILE", "env.journal")
	t.Setenv("SAVRATE_HLEDGER", "")

	cfg := config.DefaultConfig()
	cfg.Hledger.File = "config.journal"
	cfg.Hledger.Commodity = "EUR"
	cfg.Hledger.TimeoutSecs = 5

	f, q := buildFetcher(cfg)
	r := f.(*hledger.Runner)
	if r.File != "env.journal" {
		t.Errorf("File = %q, want env value", r.File)
	}
	if r.Commodity != "EUR" {
		t.Errorf("Commodity = %q, want config value", r.Commodity)
	}
	if r.Timeout.Seconds() != 5 {
		t.Errorf("Timeout = %v, want 5s", r.Timeout)
	}
	if !q.InvertIncome || q.Expenses != "^Expenses" {
		t.Errorf("queries not copied from config: %+v", q)
	}

	flagFile = "flag.journal"
	flagCommodity = "GBP"
	flagFormat = "csv"
	f, q = buildFetcher(cfg)
	r = f.(*hledger.Runner)
	if r.File != "flag.journal" {
		t.Errorf("File = %q, want flag value", r.File)
	}
	if r.Commodity != "GBP" {
		t.Errorf("Commodity = %q, want flag value", r.Commodity)
	}
	if q.Format != hledger.FormatCSV || r.Format != hledger.FormatCSV {
		t.Errorf("Format = %q/%q, want csv", q.Format, r.Format)
	}
}

func TestBuildFetcherBadConfigFormat(t *testing.T) {
	resetFlags(t)
	cfg := config.DefaultConfig()
	cfg.Hledger.Format = "xml"

	_, q := buildFetcher(cfg)
	if q.Format != hledger.FormatJSON {
		t.Errorf("Format = %q, want json fallback", q.Format)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("got %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
