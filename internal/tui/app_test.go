package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/theirongolddev/savrate/internal/cli"
	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/hledger"
	"github.com/theirongolddev/savrate/internal/model"
	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

type csvFetcher struct {
	reports map[string]string
}

func (f csvFetcher) PeriodReport(_ context.Context, query string, _ bool) ([]byte, error) {
	return []byte(f.reports[query]), nil
}

func (f csvFetcher) MonthListing(context.Context, string) ([]byte, error) {
	return []byte(`"account","balance"
"Expenses:Food","30.00 USD"
"Expenses:Rent","70.00 USD"
"total","100.00 USD"
`), nil
}

func (f csvFetcher) Total(context.Context, string) ([]byte, error) {
	return []byte("-500.00 USD\n"), nil
}

func testBuild(cfg config.Config) (pipeline.Fetcher, pipeline.Queries) {
	f := csvFetcher{reports: map[string]string{
		"^Expenses": `"account","2024-01","2024-02","total"
"Expenses:Food","100","200","300"
"total","100","200","300"
`,
		"^Income": `"account","2024-01","2024-02","total"
"Income:Salary","200","200","400"
"total","200","200","400"
`,
	}}
	return f, pipeline.Queries{
		Expenses:    cfg.Queries.Expenses,
		Income:      cfg.Queries.Income,
		Liabilities: cfg.Queries.Liabilities,
		Format:      hledger.FormatCSV,
	}
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig(), testBuild, false)
	result, err := pipeline.Load(context.Background(), a.fetcher, a.queries, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(DataLoadedMsg{Result: result})
	return m.(App)
}

func press(a App, key string) App {
	var msg tea.KeyMsg
	switch key {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestLoadDataCmdStreamsUntilLoaded(t *testing.T) {
	f, q := testBuild(config.DefaultConfig())
	sub := make(chan tea.Msg, 1)

	msg := loadDataCmd(f, q, sub)()
	for {
		if done, ok := msg.(DataLoadedMsg); ok {
			if done.Err != nil {
				t.Fatalf("load error: %v", done.Err)
			}
			if got := done.Result.Series.CumulativeRate; got != 25 {
				t.Errorf("CumulativeRate = %v, want 25", got)
			}
			if got := len(done.Result.Breakdown); got != 2 {
				t.Errorf("breakdown accounts = %d, want 2", got)
			}
			return
		}
		if _, ok := msg.(ProgressMsg); !ok {
			t.Fatalf("unexpected message %T", msg)
		}
		msg = waitForLoadMsg(sub)()
	}
}

func TestTabKeys(t *testing.T) {
	a := loadedApp(t)
	if a.activeTab != 0 {
		t.Fatalf("start tab = %d, want 0", a.activeTab)
	}

	a = press(a, "p")
	if a.activeTab != 2 {
		t.Errorf("after p: tab = %d, want 2", a.activeTab)
	}
	a = press(a, "right")
	if a.activeTab != 0 {
		t.Errorf("right from last: tab = %d, want 0", a.activeTab)
	}
	a = press(a, "left")
	if a.activeTab != 2 {
		t.Errorf("left from first: tab = %d, want 2", a.activeTab)
	}
	a = press(a, "b")
	if a.activeTab != 1 {
		t.Errorf("after b: tab = %d, want 1", a.activeTab)
	}
}

func TestKeysIgnoredWhileLoading(t *testing.T) {
	a := NewApp(config.DefaultConfig(), testBuild, false)
	a = press(a, "p")
	if a.activeTab != 0 {
		t.Errorf("tab changed before load: %d", a.activeTab)
	}
}

func TestMouseSelectsTab(t *testing.T) {
	a := loadedApp(t)
	x := 1 + components.TabWidth(0, 0) + 2 + 1 // inside the second tab
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != 1 {
		t.Errorf("click at x=%d selected tab %d, want 1", x, got)
	}
}

func TestViewPerTab(t *testing.T) {
	a := loadedApp(t)

	cases := []struct {
		key  string
		want []string
	}{
		{"o", []string{"Savings rate", "2024-01", "Daily income"}},
		{"b", []string{"Expenses:Food", "Expenses:Rent", "30.0%"}},
		{"p", []string{"FIRE", "AAW distance", "PAW distance"}},
	}
	for _, tc := range cases {
		view := press(a, tc.key).View()
		for _, w := range tc.want {
			if !strings.Contains(view, w) {
				t.Errorf("tab %q view missing %q", tc.key, w)
			}
		}
	}
}

func TestBreakdownShowsShareTotal(t *testing.T) {
	a := loadedApp(t)
	a.result.Listing.Rows = append(a.result.Listing.Rows,
		model.TotalBalance(model.Commodity{Code: "EUR", Quantity: model.Quantity{Float: 999}, Style: model.Style{Precision: 2}}))

	view := press(a, "b").View()
	if !strings.Contains(view, "100.00") {
		t.Errorf("breakdown total should be the first total row:\n%s", view)
	}
	if strings.Contains(view, "999") {
		t.Errorf("breakdown shows a later total row:\n%s", view)
	}
}

func TestProjectionsDerivation(t *testing.T) {
	a := loadedApp(t)
	p := a.result.Projections

	view := press(a, "p").View()
	for _, v := range []float64{p.AnnualIncome, p.Benchmark, p.AAWTarget, p.PAWTarget} {
		if want := cli.FormatMoney(v); !strings.Contains(view, want) {
			t.Errorf("projections view missing %s", want)
		}
	}
	if !strings.Contains(view, "annual income x 2.3") {
		t.Error("benchmark note missing multiplier")
	}
}

func TestViewLoadError(t *testing.T) {
	a := NewApp(config.DefaultConfig(), testBuild, false)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = m.Update(DataLoadedMsg{Err: errors.New("hledger: fetch failed: no journal")})

	view := m.View()
	if !strings.Contains(view, "Could not load data") {
		t.Errorf("error card missing:\n%s", view)
	}
	if !strings.Contains(view, "no journal") {
		t.Errorf("error text missing:\n%s", view)
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loadedApp(t)
	m, _ := a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(m.View(), "too narrow") {
		t.Error("expected narrow-terminal message")
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Hledger.File = "old.journal"

	SetupValues{File: "  ", Begin: "", Commodity: "eur", Theme: "tokyo-night"}.Apply(&cfg)

	if cfg.Hledger.File != "" {
		t.Errorf("File = %q, want empty", cfg.Hledger.File)
	}
	if cfg.Hledger.Begin != "lastquarter" {
		t.Errorf("Begin = %q, want unchanged", cfg.Hledger.Begin)
	}
	if cfg.Hledger.Commodity != "EUR" {
		t.Errorf("Commodity = %q, want EUR", cfg.Hledger.Commodity)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
}
