package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/gavel/internal/harness"
	"github.com/roach88/gavel/internal/schema"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // fixture filter (glob pattern)
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <fixtures-dir>",
		Short: "Grade a directory of fixtures",
		Long: `Grade every fixture in a directory and report per-fixture outcomes.

A fixture pairs a verifier with a results document and may pin the
expected verdict. Fixtures with a golden file under <dir>/golden are
also compared byte-for-byte against the stored verdict.

Exit codes:
  0 - All fixtures passed
  1 - One or more fixtures failed
  2 - Command error (invalid paths, etc.)

Examples:
  gavel test ./fixtures
  gavel test ./fixtures --filter "checkout-*"
  gavel test ./fixtures --update
  gavel test ./fixtures --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtureTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter fixtures by glob pattern")

	return cmd
}

func runFixtureTests(opts *TestOptions, fixturesDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(fixturesDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("fixtures directory not found: %s", fixturesDir))
	}

	files, err := harness.FindFixtureFiles(fixturesDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find fixtures", err)
	}

	if len(files) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, &harness.Report{
				SchemaVersion: schema.SchemaVersion,
				Results:       []harness.FixtureResult{},
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No fixtures found.")
		return nil
	}

	runner := harness.NewRunner(
		harness.WithLogger(commandLogger(opts.Verbose, cmd.ErrOrStderr())),
	)

	report := &harness.Report{
		SchemaVersion: schema.SchemaVersion,
		RunToken:      harness.UUIDv7Generator{}.Generate(),
		Results:       make([]harness.FixtureResult, 0, len(files)),
	}

	for _, path := range files {
		result := runner.RunFile(path)
		updated := applyGolden(result, path, opts.Update)

		if opts.Format != "json" {
			printFixtureResult(cmd.OutOrStdout(), result, updated)
		}

		report.Results = append(report.Results, *result)
		report.Total++
		if result.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, report)
	}
	return outputTestText(cmd, report)
}

// applyGolden compares or regenerates the fixture's golden verdict.
// Reports whether a golden file was written. Fixtures without a golden
// file are graded on their expected block alone.
func applyGolden(result *harness.FixtureResult, fixtureFile string, update bool) bool {
	if result.Verdict == nil {
		// Load or grading failure, already recorded.
		return false
	}

	stable, err := result.Verdict.StableJSON()
	if err != nil {
		result.AddError(fmt.Sprintf("golden: %v", err))
		return false
	}

	goldenPath := goldenFilePath(fixtureFile)

	if update {
		if err := writeGoldenFile(goldenPath, stable); err != nil {
			result.AddError(fmt.Sprintf("golden update: %v", err))
			return false
		}
		return true
	}

	golden, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		result.AddError(fmt.Sprintf("golden read: %v", err))
		return false
	}

	if !bytes.Equal(golden, stable) {
		result.AddError("verdict does not match golden file (run with --update to regenerate)")
	}
	return false
}

// goldenFilePath returns the path to the golden file for a fixture.
func goldenFilePath(fixtureFile string) string {
	dir := filepath.Dir(fixtureFile)
	base := filepath.Base(fixtureFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, "golden", name+".golden")
}

// writeGoldenFile writes the stable verdict bytes as the golden file.
func writeGoldenFile(goldenPath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		return fmt.Errorf("failed to create golden directory: %w", err)
	}
	if err := os.WriteFile(goldenPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write golden file: %w", err)
	}
	return nil
}

// printFixtureResult prints the per-fixture outcome line.
func printFixtureResult(w io.Writer, result *harness.FixtureResult, goldenUpdated bool) {
	if result.Pass {
		if goldenUpdated {
			fmt.Fprintf(w, "✓ %s (golden updated)\n", result.Name)
		} else {
			fmt.Fprintf(w, "✓ %s\n", result.Name)
		}
		return
	}

	fmt.Fprintf(w, "✗ %s\n", result.Name)
	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// outputTestJSON outputs the run report as JSON.
func outputTestJSON(cmd *cobra.Command, report *harness.Report) error {
	status := "ok"
	if report.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status:  status,
		Data:    report,
		TraceID: report.RunToken,
	}

	if report.Failed > 0 {
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d fixture(s) failed", report.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed", report.Failed))
	}
	return nil
}

// outputTestText outputs the run report as text.
func outputTestText(cmd *cobra.Command, report *harness.Report) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", report.Passed, report.Failed, report.Total)

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d fixture(s) failed", report.Failed))
	}

	fmt.Fprintln(w, "✓ All fixtures passed")
	return nil
}
