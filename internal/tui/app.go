// Package tui provides the interactive Bubble Tea dashboard for savrate.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/savrate/internal/config"
	"github.com/theirongolddev/savrate/internal/pipeline"
	"github.com/theirongolddev/savrate/internal/tui/components"
	"github.com/theirongolddev/savrate/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// DataLoadedMsg is sent when the load pipeline finishes, successfully or not.
type DataLoadedMsg struct {
	Result *pipeline.LoadResult
	Err    error
}

// ProgressMsg reports which load stage is running.
type ProgressMsg struct {
	Current int
	Total   int
	Stage   string
}

// BuildFunc turns a config into the fetcher and queries a load runs with.
// It is called again after the setup form changes the config.
type BuildFunc func(cfg config.Config) (pipeline.Fetcher, pipeline.Queries)

// App is the root Bubble Tea model.
type App struct {
	// Data
	cfg     config.Config
	build   BuildFunc
	fetcher pipeline.Fetcher
	queries pipeline.Queries
	result  *pipeline.LoadResult
	loadErr error
	loaded  bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues

	// Loading, channel-based progress subscription
	loading     bool
	spinner     spinner.Model
	stage       string
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

// loadTimeout bounds a whole load. hledger's own timeout applies per command.
const loadTimeout = 2 * time.Minute

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard. When setup is true the first-run form is
// shown before anything is fetched.
func NewApp(cfg config.Config, build BuildFunc, setup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	a := App{
		cfg:     cfg,
		build:   build,
		spinner: sp,
		loadSub: make(chan tea.Msg, 1),
	}
	a.fetcher, a.queries = build(cfg)

	if setup {
		vals := NewSetupValues(cfg)
		a.setupVals = &vals
		a.setupForm = NewSetupForm(a.setupVals)
	} else {
		a.loading = true
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return tea.Batch(tea.EnableMouseCellMotion, a.setupForm.Init())
	}
	return tea.Batch(tea.EnableMouseCellMotion, a.spinner.Tick, loadDataCmd(a.fetcher, a.queries, a.loadSub))
}

// startLoad begins a fresh load on a new channel so stale messages from an
// earlier load cannot leak in.
func (a *App) startLoad() tea.Cmd {
	a.loadSub = make(chan tea.Msg, 1)
	a.stage = ""
	a.progress, a.progressMax = 0, 0
	a.loading = true
	return tea.Batch(a.spinner.Tick, loadDataCmd(a.fetcher, a.queries, a.loadSub))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.setupForm != nil || !a.loaded || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := components.TabAtX(msg.X, a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if key == "q" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		n := len(components.Tabs)
		switch key {
		case "r":
			if a.loading {
				return a, nil
			}
			return a, a.startLoad()
		case "left", "h":
			a.activeTab = (a.activeTab - 1 + n) % n
			return a, nil
		case "right", "l", "tab":
			a.activeTab = (a.activeTab + 1) % n
			return a, nil
		}
		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ProgressMsg:
		a.stage = msg.Stage
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		a.loading = false
		a.loaded = true
		a.loadErr = msg.Err
		if msg.Err != nil {
			log.Debug().Err(msg.Err).Msg("dashboard load failed")
			return a, nil
		}
		a.result = msg.Result
		return a, nil
	}

	// Forward everything else to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.applySetup()
		a.setupForm = nil
		return a, a.startLoad()
	case huh.StateAborted:
		a.setupForm = nil
		return a, a.startLoad()
	}
	return a, cmd
}

// applySetup saves the form answers and rebuilds the fetcher from them.
func (a *App) applySetup() {
	a.setupVals.Apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	a.spinner.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)
	if err := config.Save(a.cfg); err != nil {
		log.Warn().Err(err).Msg("could not save config")
	}
	a.fetcher, a.queries = a.build(a.cfg)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  savrate needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ savrate"))
	b.WriteString(subtitleStyle.Render(" · savings rate from hledger"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())

	if a.progressMax > 0 {
		barW := min(max(a.width-30, 20), 40)
		b.WriteString(subtitleStyle.Render(" " + a.stage))
		b.WriteString("\n\n")
		b.WriteString(components.ProgressBar(float64(a.progress)/float64(a.progressMax), barW))
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("  %d/%d", a.progress, a.progressMax)))
	} else {
		b.WriteString(subtitleStyle.Render(" Starting hledger..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o b p", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"r", "Reload from hledger"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()))
}

func (a App) viewMain() string {
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, a.statusInfo())

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = a.renderError(cw)
	case a.result == nil:
		content = ""
	default:
		switch a.activeTab {
		case 0:
			content = a.renderOverviewTab(cw)
		case 1:
			content = a.renderBreakdownTab(cw)
		case 2:
			content = a.renderProjectionsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.PlaceHorizontal(w, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) statusInfo() string {
	switch {
	case a.loading:
		if a.stage != "" {
			return a.spinner.View() + " " + a.stage
		}
		return a.spinner.View() + " reloading"
	case a.result != nil:
		return fmt.Sprintf("%d months · %.1fs", a.result.Series.Months, a.result.LoadTime.Seconds())
	}
	return ""
}

func (a App) renderError(cw int) string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	body := errStyle.Render(a.loadErr.Error()) + "\n\n" +
		dimStyle.Render("Check the journal path and queries (savrate config), then press r to retry.")
	return components.ContentCard("Could not load data", body, cw)
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd runs the load pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(f pipeline.Fetcher, q pipeline.Queries, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			// Non-blocking: a skipped stage is replaced by the next one.
			progressFn := func(current, total int, stage string) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total, Stage: stage}:
				default:
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			defer cancel()
			result, err := pipeline.Load(ctx, f, q, progressFn)
			sub <- DataLoadedMsg{Result: result, Err: err}
		}()

		// Block until the first message (either ProgressMsg or DataLoadedMsg)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncStr(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
