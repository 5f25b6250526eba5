package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/nxscript/dependency"
	"github.com/viant/nxscript/lexer"
	"github.com/viant/nxscript/schema"
	"gopkg.in/yaml.v3"
	"io"
)

type depsOutput struct {
	Dependencies []dependency.Reference `yaml:"dependencies"`
	Tables       []string               `yaml:"tables,omitempty"`
}

func newDepsCmd(fs afs.Service) *cobra.Command {
	var databaseID string
	cmd := &cobra.Command{
		Use:   "deps <script-file>",
		Short: "Print cross database references of a Ninox script as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := download(cmd.Context(), fs, args[0])
			if err != nil {
				return err
			}
			return runDeps(cmd.OutOrStdout(), source, databaseID)
		},
	}
	cmd.Flags().StringVar(&databaseID, "database", "", "source database id recorded in references")
	return cmd
}

func runDeps(w io.Writer, source, databaseID string) error {
	tokens := lexer.Tokenize(source)
	output := depsOutput{
		Dependencies: dependency.Extract(tokens, schema.Origin{DatabaseID: databaseID}),
		Tables:       dependency.ExtractTableReferences(tokens, nil),
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(output); err != nil {
		return err
	}
	return encoder.Close()
}
