package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ShipCert-Intelligence/pkg/errors"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC) }

type cliRun struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, stdin string, args ...string) cliRun {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.ExecuteContext(WithClock(context.Background(), fixedNow))
	return cliRun{stdout: out.String(), stderr: errOut.String(), err: err}
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "shipcert", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"scan", "next-survey", "docking", "equipment"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	for _, name := range []string{"config", "log-level", "output", "no-color"} {
		assert.NotNil(t, pf.Lookup(name), "missing flag %q", name)
	}
	assert.Equal(t, "", pf.Lookup("config").DefValue)
	assert.Equal(t, OutputText, pf.Lookup("output").DefValue)
	assert.Equal(t, "c", pf.Lookup("config").Shorthand)
	assert.Equal(t, "o", pf.Lookup("output").Shorthand)
}

func TestRootCommand_RejectsUnknownOutputFormat(t *testing.T) {
	r := runCLI(t, "", "docking", "--last", "2022-05-05", "-o", "yaml")
	require.Error(t, r.err)
	assert.True(t, errors.IsCode(r.err, errors.CodeInvalidParam))
}

func TestRootCommand_ConfigFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipcert.yaml")
	require.NoError(t, os.WriteFile(path, []byte("survey:\n  docking_interval_months: 30\n"), 0o600))

	r := runCLI(t, "", "docking", "--last", "2022-05-05", "--config", path, "-o", "json")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, `"interval_months": 30`)
	assert.Contains(t, r.stdout, `"next_docking": "2024-11-05"`)
}

func TestRootCommand_MissingConfigFile(t *testing.T) {
	r := runCLI(t, "", "docking", "--last", "2022-05-05", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, r.err)
	assert.True(t, errors.IsCode(r.err, errors.ErrCodeValidation))
}

func TestGetCLIContext_NotInitialized(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetContext(context.Background())
	_, err := GetCLIContext(cmd)
	assert.Error(t, err)
}

func TestCLIContext_TodayTruncatesClock(t *testing.T) {
	cc := &CLIContext{Now: fixedNow}
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), cc.Today())
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", assertError("boom"), "Error: boom\n"},
		{"detail", errors.InvalidParam("--last must be YYYY-MM-DD").WithDetail("tomorrow"),
			"Error: --last must be YYYY-MM-DD (tomorrow)\n"},
		{"wrapped cause", errors.Wrap(assertError("no such file"), errors.ErrCodeValidation, "config initialization failed"),
			"Error: config initialization failed: no such file\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

type assertError string

func (e assertError) Error() string { return string(e) }

//Personal.AI order the ending
