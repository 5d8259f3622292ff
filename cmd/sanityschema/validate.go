package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	sanity "github.com/saiichihashimoto/sanity-typed-schema-builder-sub000"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

func newValidateCmd() *cobra.Command {
	var (
		typeName string
		resolve  bool
		docsFile string
	)
	cmd := &cobra.Command{
		Use:   "validate [file.json ...]",
		Short: "Validate JSON documents against a type",
		Long: `Parse each JSON file (or stdin) with the given type and report issues.

With --resolve, references are resolved against the documents in --docs
(a JSON array of documents keyed by _id) and the resolved value is printed.

Examples:
  sanityschema validate --type post post.json
  cat post.json | sanityschema validate --type post
  sanityschema validate --type post --resolve --docs all.json post.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			t, ok := reg.Get(typeName)
			if !ok {
				return fmt.Errorf("unknown type %q", typeName)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if docsFile != "" {
				docs, err := loadDocs(docsFile)
				if err != nil {
					return err
				}
				ctx = sanity.WithLookup(ctx, docs)
			}
			inputs := args
			if len(inputs) == 0 {
				inputs = []string{"-"}
			}
			failed := 0
			for _, in := range inputs {
				data, err := readInput(cmd.InOrStdin(), in)
				if err != nil {
					return err
				}
				run := sanity.ParseJSON
				if resolve {
					run = sanity.ResolveJSON
				}
				out, err := run(ctx, t, data)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", crossMark, in)
					printIssues(cmd.OutOrStdout(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", checkMark, in)
				if resolve {
					if err := write(cmd.OutOrStdout(), out); err != nil {
						return err
					}
				}
				logger.Debug().Str("input", in).Str("type", typeName).Msg("document valid")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type to validate against")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve instead of parse")
	cmd.Flags().StringVar(&docsFile, "docs", "", "JSON array of documents used to resolve references")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func loadDocs(path string) (sanity.DocumentMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read docs: %w", err)
	}
	raw, err := sanity.DecodeJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse docs: %w", err)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("parse docs: expected a JSON array of documents")
	}
	docs := sanity.DocumentMap{}
	for _, d := range list {
		if m, ok := d.(map[string]any); ok {
			docs.Add(m)
		}
	}
	return docs, nil
}

func printIssues(w io.Writer, err error) {
	iss, ok := sanity.AsIssues(err)
	if !ok {
		fmt.Fprintf(w, "      %v\n", err)
		return
	}
	for _, it := range iss {
		line := fmt.Sprintf("      %s %s: %s", it.Path, it.Code, it.Message)
		if it.Hint != "" {
			line += " (" + it.Hint + ")"
		}
		fmt.Fprintln(w, line)
	}
}
