// Command vuecc compiles Vue 2 single-file components to ES modules.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vuecc/vuecc"
	"github.com/vuecc/vuecc/sfc"
)

func main() {
	var (
		output  string
		verbose bool
	)

	root := &cobra.Command{
		Use:           "vuecc",
		Short:         "Compile Vue 2 single-file components to ES modules",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log transform details to stderr")

	build := &cobra.Command{
		Use:   "build FILE",
		Short: "Compile a .vue file and print the resulting module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cc := &vuecc.Compiler{}
			if verbose {
				cc.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}
			res, err := cc.Transform(string(src), args[0])
			if err != nil {
				printDiagnostic(string(src), err)
				return err
			}
			if res == nil {
				return fmt.Errorf("%s: not a vue file", args[0])
			}
			if output != "" {
				return os.WriteFile(output, []byte(res.Code), 0o644)
			}
			fmt.Println(res.Code)
			return nil
		},
	}
	build.Flags().StringVarP(&output, "output", "o", "", "write the module to a file instead of stdout")

	inspect := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the parsed document structure as XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := sfc.Parse(string(src))
			if err != nil {
				printDiagnostic(string(src), err)
				return err
			}
			x := doc.DumpXML()
			x.Indent(2)
			s, err := x.WriteToString()
			if err != nil {
				return err
			}
			fmt.Print(s)
			return nil
		},
	}

	root.AddCommand(build, inspect)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func printDiagnostic(source string, err error) {
	ctx := vuecc.Diagnose(source, err, 2)
	if ctx == nil {
		return
	}
	for _, ln := range ctx.Lines {
		marker := "  "
		if ln.IsError {
			marker = color.RedString("> ")
		}
		fmt.Fprintf(os.Stderr, "%s%4d | %s\n", marker, ln.Number, ln.Text)
	}
}
