// Command motly reads a MOTLY source tree from stdin, parses and
// validates it, and writes the resulting tree as wire JSON to stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/malloydata/motly/diag"
	"github.com/malloydata/motly/session"
	"github.com/malloydata/motly/wire"
)

func main() {
	var schemaPath string
	var runRefs bool

	rootCmd := &cobra.Command{
		Use:           "motly",
		Short:         "Parse and validate a MOTLY configuration tree",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.InOrStdin(), cmd.OutOrStdout(), os.Stderr, schemaPath, runRefs)
		},
	}

	rootCmd.Flags().StringVar(&schemaPath, "schema", "", "path to a schema source file to validate the tree against")
	rootCmd.Flags().BoolVar(&runRefs, "refs", true, "run the reference-resolution pass")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(stdin io.Reader, stdout, stderr io.Writer, schemaPath string, runRefs bool) error {
	src, err := io.ReadAll(stdin)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	sess := session.New()
	defer sess.Dispose()

	var diags []diag.Diagnostic

	parseDiags, err := sess.Parse(src)
	if err != nil {
		return err
	}
	diags = append(diags, parseDiags...)

	if schemaPath != "" {
		schemaSrc, err := os.ReadFile(schemaPath)
		if err != nil {
			return fmt.Errorf("reading schema file: %w", err)
		}
		schemaDiags, err := sess.ParseSchema(schemaSrc)
		if err != nil {
			return err
		}
		diags = append(diags, schemaDiags...)

		validateDiags, err := sess.ValidateSchema()
		if err != nil {
			return err
		}
		diags = append(diags, validateDiags...)
	}

	if runRefs {
		refDiags, err := sess.ValidateReferences()
		if err != nil {
			return err
		}
		diags = append(diags, refDiags...)
	}

	if len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprintln(stderr, d.String())
		}
		return fmt.Errorf("found %d diagnostic(s)", len(diags))
	}

	value, err := sess.GetValue()
	if err != nil {
		return err
	}
	out, err := wire.Encode(value)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(stdout, string(out))
	return nil
}
