package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/mock"
	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/schemafile"
)

var (
	// Global flags
	schemaFile string
	logLevel   string
	format     string

	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sanityschema",
		Short: "Describe, mock and validate content types from a schema file",
		Long: `sanityschema works on content types declared in a YAML schema file.

Commands:
  sanityschema describe            # print platform descriptors
  sanityschema mock --type post    # print a deterministic sample
  sanityschema validate --type post doc.json`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "schema.yaml", "schema file path")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&format, "format", "f", "json", "output format (json, yaml)")
	cmd.AddCommand(newDescribeCmd(), newMockCmd(), newValidateCmd())
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogger(w io.Writer) error {
	lvl, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(lvl).With().Timestamp().Logger()
	mock.SetLogger(logger)
	return nil
}

func loadRegistry() (*schemafile.Registry, error) {
	reg, err := schemafile.Load(schemaFile, schemafile.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return reg, nil
}
