package cmd

import (
	"github.com/spf13/cobra"

	"github.com/seglang/segc/internal/compiler"
)

var outFile string

var rootCmd = &cobra.Command{
	Use:   "segc <file.seg>",
	Short: "segc — SEG to x86-64 assembly compiler",
	Long: `segc translates a SEG source file (typed variable declarations,
expressions, and if/else statements) into textual x86-64 assembly.

On success the parsed AST is printed to stdout and the assembly is written
to the output file. Diagnostics go to stderr.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return compiler.CompileAndWrite(args[0], outFile)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&outFile, "out", "o", "output.s", "path for the generated assembly")
}
