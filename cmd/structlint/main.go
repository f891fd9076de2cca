// Command structlint validates structured documents against a schema file.
//
// Exit codes: 0 all documents valid, 1 validation failure or error, 2 usage.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/structly/structly"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type config struct {
	schemaPath string
	typeName   string
	strict     bool
	jsonOutput bool
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := &config{}
	exit := exitOK

	cmd := &cobra.Command{
		Use:           "structlint --schema schema.yaml [--type Name] document...",
		Short:         "Validate documents against a schema",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			exit, err = lint(cfg, args, cmd.OutOrStdout())
			return err
		},
	}
	cmd.Flags().StringVarP(&cfg.schemaPath, "schema", "s", "", "path to schema file (required)")
	cmd.Flags().StringVarP(&cfg.typeName, "type", "t", "", "definition to validate against (default: sole definition)")
	cmd.Flags().BoolVar(&cfg.strict, "strict", false, "reject unknown constraint keys in the schema")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "emit reports as JSON")
	cmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "enable debug logging")
	if err := cmd.MarkFlagRequired("schema"); err != nil {
		panic(err)
	}
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "structlint: %v\n", err)
		if exit == exitOK {
			return exitUsage
		}
		return exit
	}
	return exit
}

func lint(cfg *config, documents []string, out io.Writer) (int, error) {
	logger := zerolog.Nop()
	if cfg.verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}

	set, err := loadSchemaFile(cfg.schemaPath, cfg.strict, logger)
	if err != nil {
		return exitError, err
	}

	typeName := cfg.typeName
	if typeName == "" {
		names := set.Definitions()
		if len(names) != 1 {
			return exitUsage, fmt.Errorf("schema defines %d types, pick one with --type", len(names))
		}
		typeName = names[0]
	}

	exit := exitOK
	for _, path := range documents {
		doc, err := decodeFile(path)
		if err != nil {
			return exitError, err
		}
		report, err := set.Validate(typeName, doc)
		if err != nil {
			return exitError, fmt.Errorf("validate %s: %w", path, err)
		}
		if !report.Valid {
			exit = exitError
		}
		if err := printReport(out, path, report, cfg.jsonOutput); err != nil {
			return exitError, err
		}
	}
	return exit, nil
}

func loadSchemaFile(path string, strict bool, logger zerolog.Logger) (*structly.SchemaSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}
	set, err := structly.LoadSchemas(doc,
		structly.WithStrict(strict),
		structly.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", path, err)
	}
	return set, nil
}

// decodeFile parses a YAML or JSON document; YAML is a superset of JSON, so
// one decoder covers both.
func decodeFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", path, err)
	}
	return normalize(doc), nil
}

// normalize rewrites yaml.v3 map[any]any mappings into map[string]any so
// documents decode to the shape validation expects.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalize(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = normalize(e)
		}
		return x
	default:
		return v
	}
}

type fileReport struct {
	File string `json:"file"`
	*structly.Report
}

func printReport(out io.Writer, path string, report *structly.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(fileReport{File: path, Report: report})
	}
	_, err := fmt.Fprintf(out, "%s: %s\n", path, report)
	return err
}
