// cmd/econosim/board.go

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jangala-dev/econotag-bsp/board"
)

var (
	boardList bool

	boardCmd = &cobra.Command{
		Use:   "board [NAME]",
		Short: "Print a board description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if boardList {
				for _, name := range board.All().Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}
			name := boardName
			if len(args) > 0 {
				name = args[0]
			}
			info, err := board.All().Find(name)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(info); err != nil {
				return err
			}
			return enc.Close()
		},
	}
)

func init() {
	boardCmd.Flags().BoolVarP(&boardList, "list", "l", false, "list the known boards")
}
