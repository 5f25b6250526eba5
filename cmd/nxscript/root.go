package main

import (
	"github.com/spf13/cobra"
	"github.com/viant/afs"
)

func newRootCmd() *cobra.Command {
	fs := afs.New()
	rootCmd := &cobra.Command{
		Use:           "nxscript",
		Short:         "Ninox script analysis: translate, format and extract dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newAnalyzeCmd(fs), newFormatCmd(fs), newDepsCmd(fs))
	return rootCmd
}
