package tui

import (
	"slices"
	"strings"

	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	File      string
	Begin     string
	Commodity string
	Theme     string
}

var beginOptions = []string{"lastquarter", "thisyear", "lastyear", "6 months ago", "12 months ago"}

// NewSetupValues seeds the form answers from an existing config.
func NewSetupValues(cfg config.Config) SetupValues {
	return SetupValues{
		File:      cfg.Hledger.File,
		Begin:     cfg.Hledger.Begin,
		Commodity: cfg.Hledger.Commodity,
		Theme:     cfg.Appearance.Theme,
	}
}

// Apply copies the answers onto cfg. Blank answers keep the existing value,
// except File, where blank means "let hledger pick its default journal".
func (v SetupValues) Apply(cfg *config.Config) {
	cfg.Hledger.File = strings.TrimSpace(v.File)
	if b := strings.TrimSpace(v.Begin); b != "" {
		cfg.Hledger.Begin = b
	}
	if c := strings.TrimSpace(v.Commodity); c != "" {
		cfg.Hledger.Commodity = strings.ToUpper(c)
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
}

// NewSetupForm builds the first-run huh form writing into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	begins := beginOptions
	if vals.Begin != "" && !slices.Contains(begins, vals.Begin) {
		begins = append([]string{vals.Begin}, begins...)
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to savrate").
				Description("Savings rate, projections and expense breakdown from your hledger journal.\n\nA few questions, then the dashboard."),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Journal file").
				Description("Passed to hledger as -f. Leave blank to use LEDGER_FILE or hledger's default.").
				Placeholder("~/finance/main.journal").
				Value(&vals.File),
			huh.NewSelect[string]().
				Title("Report start").
				Description("Passed to hledger as -b for the monthly reports.").
				Options(huh.NewOptions(begins...)...).
				Value(&vals.Begin),
			huh.NewInput().
				Title("Commodity").
				Description("Every amount is converted to this commodity (-X).").
				Placeholder("USD").
				CharLimit(12).
				Value(&vals.Commodity),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
		),
	).WithShowHelp(true)
}
