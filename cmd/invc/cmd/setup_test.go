package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetCommand restores every flag of c and its subcommands to its
// default and binds each command to ctx. Cobra keeps the first context a
// subcommand sees.
func resetCommand(c *cobra.Command, ctx context.Context) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(ctx)
	for _, sub := range c.Commands() {
		resetCommand(sub, ctx)
	}
}

// runCLI runs the real root command with --home set to home and returns
// what the command wrote to stdout.
func runCLI(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	resetCommand(rootCmd, t.Context())
	t.Cleanup(func() {
		resetCommand(rootCmd, context.Background())
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--home", home}, args...))
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

// mustRunCLI is runCLI that fails the test on error.
func mustRunCLI(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, home, args...)
	if err != nil {
		t.Fatalf("invc %v: %v", args, err)
	}
	return out
}

// newHome returns an empty home directory with INVC_HOME pointing away
// from the user's real one.
func newHome(t *testing.T) string {
	t.Helper()
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("INVC_HOME", home)
	return home
}

type listOutput struct {
	Total int        `json:"total"`
	Items []itemJSON `json:"items"`
}

func decodeItems(t *testing.T, out string) listOutput {
	t.Helper()
	var got listOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode JSON output: %v\n%s", err, out)
	}
	return got
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
