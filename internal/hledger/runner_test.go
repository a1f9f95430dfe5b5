package hledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodArgs(t *testing.T) {
	r := NewRunner("", "/tmp/main.journal", "USD", "lastquarter", FormatJSON)

	assert.Equal(t, []string{
		"bal", "^Income", "-O", "json", "-M", "-b", "lastquarter", "-C", "-U", "-T", "--invert",
		"-X", "USD", "-f", "/tmp/main.journal",
	}, r.PeriodArgs("^Income", true))

	assert.Equal(t, []string{
		"bal", "^Expenses", "-O", "json", "-M", "-b", "lastquarter", "-C", "-U", "-T", "-X", "USD",
		"-f", "/tmp/main.journal",
	}, r.PeriodArgs("^Expenses", false))
}

func TestMonthAndTotalArgs(t *testing.T) {
	r := NewRunner("hledger", "", "USD", "", FormatCSV)

	assert.Equal(t, []string{"bal", "^Expenses", "--begin", "thismonth", "-O", "csv", "-X", "USD"},
		r.MonthArgs("^Expenses"))
	assert.Equal(t, []string{"bal", "Liabilities", "--format", "%(total)", "-X", "USD"},
		r.TotalArgs("Liabilities"))
}

func TestRun_UsesExecutor(t *testing.T) {
	var gotName string
	var gotArgs []string
	r := NewRunner("/opt/bin/hledger", "", "", "", FormatJSON).WithExec(
		func(_ context.Context, name string, args ...string) ([]byte, error) {
			gotName, gotArgs = name, args
			return []byte("ok"), nil
		})

	out, err := r.Total(context.Background(), "Liabilities")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, "/opt/bin/hledger", gotName)
	assert.Equal(t, []string{"bal", "Liabilities", "--format", "%(total)"}, gotArgs)
}

func TestRun_PropagatesFetchError(t *testing.T) {
	r := NewRunner("", "", "", "", FormatJSON).WithExec(
		func(context.Context, string, ...string) ([]byte, error) {
			return nil, ErrFetch
		})

	_, err := r.PeriodReport(context.Background(), "^Expenses", false)
	assert.True(t, errors.Is(err, ErrFetch))
}

func TestRunCommand_MissingBinary(t *testing.T) {
	_, err := runCommand(context.Background(), "savrate-no-such-binary-xyz")
	assert.ErrorIs(t, err, ErrFetch)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
