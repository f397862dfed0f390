package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tanq16/xdcc/internal/utils"
)

func newDirectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "direct [BOT] [PACKS]",
		Short:   "Request packs from a known bot by number (e.g. direct Arutha 123,456)",
		Example: "  xdcc direct Arutha 123\n  xdcc direct \"CR-HOLLAND|NEW\" 12,13,14",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := utils.ParseDirect(args, knownBots())
			if err != nil {
				return err
			}
			return download(cmd, []utils.DownloadRequest{req})
		},
	}
}
