package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tanq16/xdcc/internal/output"
)

func newBotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bots",
		Short: "List the bots accepted by the direct command",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			bots := knownBots()
			output.PrintHeader(fmt.Sprintf("Known bots (%d)", bots.Len()))
			for _, name := range bots.Names() {
				fmt.Fprintln(output.Out, "  "+output.FDetail(name))
			}
		},
	}
}
