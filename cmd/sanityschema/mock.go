package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMockCmd() *cobra.Command {
	var (
		typeName string
		path     string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Print deterministic sample values of a type",
		Long: `Print sample values of a type. The same --path always yields the same
value; --count N prints N values at path[0] .. path[N-1].

Examples:
  sanityschema mock --type post
  sanityschema mock --type author --path authors --count 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			t, ok := reg.Get(typeName)
			if !ok {
				return fmt.Errorf("unknown type %q", typeName)
			}
			if count <= 1 {
				return write(cmd.OutOrStdout(), t.Mock(path))
			}
			out := make([]any, 0, count)
			for i := 0; i < count; i++ {
				out = append(out, t.Mock(fmt.Sprintf("%s[%d]", path, i)))
			}
			return write(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVarP(&typeName, "type", "t", "", "type to mock")
	cmd.Flags().StringVarP(&path, "path", "p", "", "mock path (seed key)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of samples")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
