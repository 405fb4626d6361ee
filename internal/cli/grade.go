package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/gavel/internal/engine"
	"github.com/roach88/gavel/internal/schema"
)

// GradeResult is the JSON payload for a single graded pair.
type GradeResult struct {
	Verdict *schema.Verdict `json:"verdict"`
	Digest  string          `json:"digest"`
}

// NewGradeCommand creates the grade command.
func NewGradeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade <verifier.json> <results.json>",
		Short: "Grade observed results against a verifier",
		Long: `Grade one observed execution against one verifier document.

The verifier declares expected row-level mutations and optional checks
on the return value, final URL, and agent error. The results document
carries the observed mutation events and outcome values. Every check is
graded; the verdict passes only when all of them do.

Exit codes:
  0 - Verdict passed
  1 - Verdict failed
  2 - Command error (unreadable or invalid input documents)

Examples:
  gavel grade verifier.json results.json
  gavel grade verifier.json results.json --format json
  gavel grade verifier.json results.json --verbose`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runGrade(opts *RootOptions, verifierPath, resultsPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	verifierData, err := os.ReadFile(verifierPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read verifier", err)
	}
	verifier, err := schema.DecodeVerifier(verifierData)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid verifier", err)
	}

	resultsData, err := os.ReadFile(resultsPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read results", err)
	}
	bundle, err := schema.DecodeBundle(resultsData)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid results", err)
	}

	eng := engine.New(engine.WithLogger(commandLogger(opts.Verbose, cmd.ErrOrStderr())))
	verdict, err := eng.Evaluate(verifier, bundle)
	if err != nil {
		return WrapExitError(ExitCommandError, "grading rejected", err)
	}

	digest, err := schema.VerdictDigest(verdict)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to digest verdict", err)
	}

	if opts.Format == "json" {
		return outputGradeJSON(cmd, verdict, digest)
	}
	return outputGradeText(formatter, verdict, digest)
}

// checkLabel renders one check for text output. Mutation checks name
// the action and table; outcome checks are identified by kind alone.
func checkLabel(check schema.CheckOutcome) string {
	if check.Kind == schema.CheckMutation {
		if exp, ok := check.Expected.(schema.Expectation); ok {
			return fmt.Sprintf("mutation %s on %q", exp.Action, exp.Table)
		}
	}
	return string(check.Kind)
}

// outputGradeText prints one line per check and a verdict summary.
func outputGradeText(formatter *OutputFormatter, verdict *schema.Verdict, digest string) error {
	w := formatter.Writer

	for _, check := range verdict.Checks {
		mark := "✓"
		if !check.Success {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, checkLabel(check))
	}

	fmt.Fprintln(w)
	if verdict.Passed {
		fmt.Fprintf(w, "Verdict: PASSED (%d/%d checks passed)\n", verdict.PassedChecks, verdict.TotalChecks)
	} else {
		fmt.Fprintf(w, "Verdict: FAILED (%d/%d checks passed)\n", verdict.PassedChecks, verdict.TotalChecks)
	}

	formatter.VerboseLog("digest: %s", digest)

	if !verdict.Passed {
		failed := verdict.TotalChecks - verdict.PassedChecks
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d checks failed", failed, verdict.TotalChecks))
	}
	return nil
}

// outputGradeJSON prints the full verdict plus its digest.
func outputGradeJSON(cmd *cobra.Command, verdict *schema.Verdict, digest string) error {
	status := "ok"
	if !verdict.Passed {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   GradeResult{Verdict: verdict, Digest: digest},
	}

	failed := verdict.TotalChecks - verdict.PassedChecks
	if !verdict.Passed {
		response.Error = &CLIError{
			Code:    ErrCodeVerdictFailed,
			Message: fmt.Sprintf("%d of %d checks failed", failed, verdict.TotalChecks),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !verdict.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d checks failed", failed, verdict.TotalChecks))
	}
	return nil
}
