// Package hledger runs hledger balance queries and returns their raw output.
package hledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultBinary  = "hledger"
	defaultTimeout = 30 * time.Second
)

// ErrFetch indicates hledger could not be run or exited non-zero.
var ErrFetch = errors.New("hledger: fetch failed")

// Format selects the hledger output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a config or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("hledger: unknown output format %q (want json or csv)", s)
	}
}

// ExecFunc runs a command and returns its stdout. Tests replace it.
type ExecFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Runner builds and runs hledger balance commands.
type Runner struct {
	Binary    string
	File      string // journal path, passed as -f when set
	Commodity string // -X target commodity
	Begin     string // -b for multi-period reports
	Format    Format
	Timeout   time.Duration

	exec ExecFunc
}

// NewRunner returns a runner with defaults filled in.
func NewRunner(binary, file, commodity, begin string, format Format) *Runner {
	if binary == "" {
		binary = defaultBinary
	}
	if format == "" {
		format = FormatJSON
	}
	return &Runner{
		Binary:    binary,
		File:      file,
		Commodity: commodity,
		Begin:     begin,
		Format:    format,
		Timeout:   defaultTimeout,
		exec:      runCommand,
	}
}

// WithExec swaps the command executor.
func (r *Runner) WithExec(fn ExecFunc) *Runner {
	r.exec = fn
	return r
}

// PeriodArgs returns the arguments for a monthly multi-period report.
func (r *Runner) PeriodArgs(query string, invert bool) []string {
	args := []string{"bal", query, "-O", string(r.Format), "-M"}
	if r.Begin != "" {
		args = append(args, "-b", r.Begin)
	}
	args = append(args, "-C", "-U", "-T")
	if invert {
		args = append(args, "--invert")
	}
	return r.withCommon(args)
}

// MonthArgs returns the arguments for this month's single-period listing.
func (r *Runner) MonthArgs(query string) []string {
	return r.withCommon([]string{"bal", query, "--begin", "thismonth", "-O", string(r.Format)})
}

// TotalArgs returns the arguments for a bare grand-total query.
func (r *Runner) TotalArgs(query string) []string {
	return r.withCommon([]string{"bal", query, "--format", "%(total)"})
}

func (r *Runner) withCommon(args []string) []string {
	if r.Commodity != "" {
		args = append(args, "-X", r.Commodity)
	}
	if r.File != "" {
		args = append(args, "-f", r.File)
	}
	return args
}

// Run executes hledger with args under the runner timeout.
func (r *Runner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := r.exec(ctx, r.Binary, args...)
	log.Debug().
		Str("cmd", r.Binary+" "+strings.Join(args, " ")).
		Dur("took", time.Since(start)).
		Int("bytes", len(out)).
		Msg("hledger")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PeriodReport fetches a monthly report for query.
func (r *Runner) PeriodReport(ctx context.Context, query string, invert bool) ([]byte, error) {
	return r.Run(ctx, r.PeriodArgs(query, invert)...)
}

// MonthListing fetches this month's listing for query.
func (r *Runner) MonthListing(ctx context.Context, query string) ([]byte, error) {
	return r.Run(ctx, r.MonthArgs(query)...)
}

// Total fetches the grand total for query as text.
func (r *Runner) Total(ctx context.Context, query string) ([]byte, error) {
	return r.Run(ctx, r.TotalArgs(query)...)
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("%w: %s %s: %s", ErrFetch, name, strings.Join(args, " "), msg)
	}
	return stdout.Bytes(), nil
}
