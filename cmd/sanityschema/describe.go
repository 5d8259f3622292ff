package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saiichihashimoto/sanity-typed-schema-builder-sub000/descriptor"
)

func newDescribeCmd() *cobra.Command {
	var typeName string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the platform descriptors of the declared types",
		Long: `Print the descriptors handed to the content platform.

Validation rules are functions and are not printed.

Examples:
  sanityschema describe
  sanityschema describe --type post --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			if typeName == "" {
				return write(cmd.OutOrStdout(), reg.Schemas())
			}
			t, ok := reg.Get(typeName)
			if !ok {
				return fmt.Errorf("unknown type %q", typeName)
			}
			return write(cmd.OutOrStdout(), []*descriptor.Schema{t.Schema()})
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "only describe this type")
	return cmd
}
