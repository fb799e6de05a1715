package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/parametric"
	"github.com/reoring/parametric/i18n"
	"github.com/reoring/parametric/internal/config"
	"github.com/reoring/parametric/internal/logger"
	"github.com/reoring/parametric/schemafile"
	"github.com/reoring/parametric/source"
)

// errIssues signals that the payload resolved with issues; they have already
// been printed.
var errIssues = errors.New("payload has issues")

type resolveOptions struct {
	schemaPath string
	inputPath  string
	output     string
	lang       string
	envFile    string
}

func newResolveCmd() *cobra.Command {
	var opts resolveOptions
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a JSON or YAML payload against a declaration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "", "declaration file (YAML or JSON)")
	cmd.Flags().StringVarP(&opts.inputPath, "input", "i", "-", "payload file, - for stdin")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output format: json, yaml or dump (default from PARAMETRIC_OUTPUT)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "message language (default from PARAMETRIC_LANG)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read settings from")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runResolve(cmd *cobra.Command, opts resolveOptions) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if opts.output == "" {
		opts.output = cfg.Output
	}
	if opts.lang == "" {
		opts.lang = cfg.Lang
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithOutput(cmd.ErrOrStderr()),
	)
	i18n.SetLanguage(opts.lang)

	decl, err := os.ReadFile(opts.schemaPath)
	if err != nil {
		return err
	}
	r, err := schemafile.Load(decl, nil, parametric.WithLogger(log))
	if err != nil {
		return fmt.Errorf("%s: %w", opts.schemaPath, err)
	}

	raw, err := readInput(cmd.InOrStdin(), opts.inputPath)
	if err != nil {
		return err
	}
	payload, err := source.Decode(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.inputPath, err)
	}

	out, iss := r.Resolve(payload)
	log.Debug("resolved", slog.String("schema", opts.schemaPath), slog.Int("keys", len(out)), slog.Int("issues", len(iss)))
	if err := writeOutput(cmd.OutOrStdout(), opts.output, out); err != nil {
		return err
	}
	if len(iss) > 0 {
		for _, it := range iss {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", it.Path, it.Message)
		}
		return errIssues
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(w io.Writer, format string, out map[string]any) error {
	switch format {
	case "json":
		b, err := j.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "dump":
		spew.Fdump(w, out)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml or dump)", format)
	}
}
