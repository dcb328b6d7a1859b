// Package cmd implements the preconfig CLI command.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nkazin/preconfig/internal/cliio"
	"github.com/nkazin/preconfig/internal/format"
	"github.com/nkazin/preconfig/internal/style"
	"github.com/nkazin/preconfig/internal/template"
	"github.com/nkazin/preconfig/internal/tmplerr"
)

// NewRootCmd creates the preconfig root command.
//
//	preconfig [<file>] [-f text|json|yaml] [-p key=value...]
func NewRootCmd() *cobra.Command {
	var outputFormat string
	var params []string

	root := &cobra.Command{
		Use:   "preconfig [file]",
		Short: "preconfig - resolve ${source:path} control expressions in a config template",
		Long: `preconfig reads a text, JSON, or YAML template (from a file argument or
stdin) and resolves every ${source:path} control expression in it.

Supported sources: para (supplied -p parameters), env (process
environment), file (read and resolve another template), self (other
parts of the same document), base64encode, base64decode.

Default values for unresolved expressions are not supported.`,
		Args: cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args, outputFormat, params)
		},
	}

	root.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format: text, json, or yaml")
	root.Flags().StringArrayVarP(&params, "param", "p", nil, "parameter as key=value (repeatable)")
	return root
}

func runResolve(cmd *cobra.Command, args []string, outputFormat string, paramFlags []string) error {
	parameters, err := cliio.ParseParams(paramFlags)
	if err != nil {
		return err
	}

	var text, cwd string
	if len(args) == 1 {
		text, err = cliio.ReadTextFile(args[0])
		if err != nil {
			return err
		}
		cwd = filepath.Dir(args[0])
	} else {
		text, err = cliio.ReadStdin(cmd.InOrStdin())
		if err != nil {
			return err
		}
		cwd, _ = os.Getwd()
	}

	tmpl, err := template.New(text, template.Options{CWD: cwd})
	if err != nil {
		return err
	}

	resolved, err := tmpl.Resolve(cmd.Context(), parameters)
	if err != nil {
		return err
	}

	out, err := format.Format(resolved, format.To(outputFormat))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// PrintError writes err to stderr, styled per its tmplerr kind, and
// returns the process exit code main.go should use.
func PrintError(stderr *os.File, err error) int {
	var implErr *tmplerr.ImplementationError
	if errors.As(err, &implErr) {
		fmt.Fprintln(stderr, style.InternalError(stderr, implErr.Msg))
		return 1
	}
	fmt.Fprintln(stderr, style.Error(stderr, err.Error()))
	return 1
}
