package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/speakeasy-api/apireader/cmd/apireader/commands/cmdutil"
	"github.com/speakeasy-api/apireader/diagnostics"
	"github.com/speakeasy-api/apireader/reader"
	"github.com/speakeasy-api/apireader/references"
	"github.com/speakeasy-api/apireader/system"
	"github.com/speakeasy-api/apireader/validation"
	"github.com/spf13/cobra"
)

var errDocumentInvalid = errors.New("document has errors")

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Read and validate a Swagger 2.0 or OpenAPI 3.0 document",
	Long: `Read a Swagger 2.0 or OpenAPI 3.0 document, resolve its references and validate it.

Problems found while reading the document (malformed nodes, bad or unresolved references) are
reported separately from rule violations found in the finished document.

Reads from stdin when no file is given or the file is "-".

Examples:
  apireader validate api.yaml
  apireader validate --resolve all api.yaml
  apireader validate --strict --format json api.yaml
  cat api.yaml | apireader validate`,
	Args: cmdutil.StdinOrFileArgs(1, 1),
	Run:  runValidate,
}

type validateFlags struct {
	format     string
	configFile string
	resolve    string
	strict     bool
}

var validateOpts validateFlags

func init() {
	validateCmd.Flags().StringVarP(&validateOpts.format, "format", "f", "text", "Output format: text or json")
	validateCmd.Flags().StringVarP(&validateOpts.configFile, "config", "c", "", "Path to a validation config file")
	validateCmd.Flags().StringVar(&validateOpts.resolve, "resolve", "local", "Reference resolution: none, local or all")
	validateCmd.Flags().BoolVar(&validateOpts.strict, "strict", false, "Also apply the strict URL format rules")
}

func runValidate(cmd *cobra.Command, args []string) {
	stdout, _ := cmdutil.Writers(cmd)

	err := validateDocument(cmd.Context(), cmdutil.InputFileFromArgs(args), validateOpts, cmd.InOrStdin(), stdout, loggerFrom(cmd))
	if err != nil {
		cmdutil.Die(err)
	}
}

func validateDocument(ctx context.Context, file string, flags validateFlags, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	mode, err := parseResolutionMode(flags.resolve)
	if err != nil {
		return err
	}

	ruleSet, err := buildRuleSet(flags)
	if err != nil {
		return err
	}

	opts := []reader.Option{
		reader.WithRuleSet(ruleSet),
		reader.WithReferenceResolution(mode),
		reader.WithLogger(logger),
	}

	var result *reader.Result
	if cmdutil.IsStdin(file) {
		result, err = reader.Read(ctx, stdin, opts...)
	} else {
		file = filepath.Clean(file)
		result, err = reader.ReadFile(ctx, &system.FileSystem{}, file, opts...)
	}
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	rep := newReport(file, result)

	switch flags.format {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
	case "text":
		fmt.Fprint(stdout, formatReport(rep))
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}

	if !rep.Valid {
		return errDocumentInvalid
	}
	return nil
}

func parseResolutionMode(mode string) (references.ResolutionMode, error) {
	switch mode {
	case "none":
		return references.ResolveNone, nil
	case "local", "":
		return references.ResolveLocal, nil
	case "all":
		return references.ResolveAll, nil
	default:
		return 0, fmt.Errorf("unknown resolution mode %q", mode)
	}
}

func buildRuleSet(flags validateFlags) (*validation.RuleSet, error) {
	if flags.configFile == "" {
		if flags.strict {
			return validation.StrictRuleSet(), nil
		}
		return validation.DefaultRuleSet(), nil
	}

	cfg, err := validation.LoadConfigFromFile(flags.configFile)
	if err != nil {
		return nil, err
	}
	if flags.strict {
		cfg.Extends = append(cfg.Extends, "strict")
	}
	return validation.DefaultRegistry().BuildRuleSet(cfg)
}

type problem struct {
	Code    string `json:"code,omitempty"`
	Rule    string `json:"rule,omitempty"`
	Pointer string `json:"pointer,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Message string `json:"message"`
}

func (p problem) String() string {
	var sb strings.Builder
	if p.Line > 0 {
		fmt.Fprintf(&sb, "[%d:%d] ", p.Line, p.Column)
	}
	if p.Pointer != "" {
		fmt.Fprintf(&sb, "%s: ", p.Pointer)
	}
	sb.WriteString(p.Message)
	switch {
	case p.Rule != "":
		fmt.Fprintf(&sb, " (%s)", p.Rule)
	case p.Code != "":
		fmt.Fprintf(&sb, " (%s)", p.Code)
	}
	return sb.String()
}

type report struct {
	File             string    `json:"file"`
	Generation       string    `json:"generation"`
	Valid            bool      `json:"valid"`
	Errors           []problem `json:"errors"`
	ValidationErrors []problem `json:"validationErrors"`
}

func newReport(file string, result *reader.Result) report {
	rep := report{
		File:             file,
		Generation:       result.Generation.String(),
		Errors:           make([]problem, 0, len(result.Errors)),
		ValidationErrors: make([]problem, 0, len(result.ValidationErrors)),
	}
	for _, d := range result.Errors {
		rep.Errors = append(rep.Errors, fromDiagnostic(d))
	}
	for _, v := range result.ValidationErrors {
		rep.ValidationErrors = append(rep.ValidationErrors, problem{Rule: v.Rule, Pointer: v.Pointer, Message: v.Message})
	}
	rep.Valid = len(rep.Errors) == 0 && len(rep.ValidationErrors) == 0
	return rep
}

func fromDiagnostic(d *diagnostics.Error) problem {
	return problem{Code: d.Code, Pointer: d.Pointer, Line: d.Line, Column: d.Column, Message: d.Message}
}

func formatReport(rep report) string {
	var sb strings.Builder

	name := rep.File
	if cmdutil.IsStdin(name) {
		name = "stdin"
	}
	fmt.Fprintf(&sb, "Validating %s document: %s\n", rep.Generation, name)

	if rep.Valid {
		sb.WriteString("✅ Document is valid - 0 errors\n")
		return sb.String()
	}

	if len(rep.Errors) > 0 {
		fmt.Fprintf(&sb, "\n❌ %d errors reading the document:\n\n", len(rep.Errors))
		sb.WriteString(formatProblems(rep.Errors))
	}
	if len(rep.ValidationErrors) > 0 {
		fmt.Fprintf(&sb, "\n❌ %d validation errors:\n\n", len(rep.ValidationErrors))
		sb.WriteString(formatProblems(rep.ValidationErrors))
	}

	return sb.String()
}

func formatProblems(problems []problem) string {
	var sb strings.Builder
	indexWidth := len(strconv.Itoa(len(problems)))

	for i, p := range problems {
		fmt.Fprintf(&sb, "%*d. %s\n", indexWidth, i+1, p.String())
	}

	return sb.String()
}
