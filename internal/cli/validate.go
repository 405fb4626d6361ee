package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gavel/internal/harness"
	"github.com/roach88/gavel/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	Fixture bool // treat the file as a harness fixture instead of a bare verifier
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a verifier document without grading",
		Long: `Validate a verifier document without grading anything.

Decodes the document strictly, checks its structure, and prints lint
warnings for constructions that grade less than they appear to (a
verifier with no checks, an INSERT expectation with a where block,
and so on). Warnings never fail validation.

With --fixture the file is read as a test fixture: the envelope, the
embedded verifier and results documents, and the pinned expected block
are all checked.

Exit codes:
  0 - Document is valid (warnings allowed)
  2 - Document is unreadable or invalid

Examples:
  gavel validate verifier.json
  gavel validate --fixture checkout.yaml
  gavel validate verifier.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Fixture, "fixture", false, "validate a fixture file instead of a bare verifier")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var warnings []string
	var subject string

	if opts.Fixture {
		subject = "fixture"
		fx, err := harness.LoadFixture(path)
		if err != nil {
			return outputValidateError(formatter, ErrCodeInvalidInput, err.Error(), nil)
		}
		warnings = harness.LintFixture(fx)
	} else {
		subject = "verifier"
		data, err := os.ReadFile(path)
		if err != nil {
			return outputValidateError(formatter, ErrCodeCommandFailure, fmt.Sprintf("failed to read verifier: %v", err), nil)
		}
		verifier, err := schema.DecodeVerifier(data)
		if err != nil {
			return outputValidateError(formatter, ErrCodeInvalidInput, fmt.Sprintf("invalid verifier: %v", err), nil)
		}
		warnings = harness.LintVerifier(verifier)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Warnings: warnings})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s valid\n", subject)
	if len(warnings) > 0 {
		fmt.Fprintln(formatter.Writer)
		fmt.Fprintf(formatter.Writer, "%d warning(s):\n", len(warnings))
		for _, warn := range warnings {
			fmt.Fprintf(formatter.Writer, "  %s\n", warn)
		}
	}
	return nil
}

// outputValidateError outputs a validation error.
func outputValidateError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	// Invalid input is a command-level error (exit code 2).
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
