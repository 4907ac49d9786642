package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/spf-project/spf/internal/option"
)

// NewOptionsCommand creates the options command
func NewOptionsCommand() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "options <option-string>",
		Short: "Show how an option string is parsed",
		Long: `Parse an option string the way plugin options in the config file are
parsed and print each positional and named value with its type.

Examples:
  spf options 'a,1,2.5,None,key=True'
  spf options --dump 'format=%(path)s'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := option.Parse(args[0])
			out := cmd.OutOrStdout()

			if dump {
				_, err := fmt.Fprint(out, spew.Sdump(opts))
				return err
			}

			rows := make([][]string, 0, opts.Len())
			for i, v := range opts.Positional {
				rows = append(rows, []string{fmt.Sprint(i), v.Kind().String(), v.String()})
			}
			for _, k := range opts.Keys {
				v := opts.Named[k]
				rows = append(rows, []string{k, v.Kind().String(), v.String()})
			}
			return renderTable(out, []string{"ARG", "TYPE", "VALUE"}, rows)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the parsed options structure")
	return cmd
}
