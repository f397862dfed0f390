package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/tanq16/xdcc/internal/search"
	"github.com/tanq16/xdcc/internal/utils"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "search [TERMS...]",
		Short:   "Search the pack index and pick packs to download",
		Aliases: []string{"query", "find"},
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := utils.ParseSearch(args)
			if err != nil {
				return err
			}
			client := search.NewClient(appConfig.Search.API, utils.NewXdccHTTPClient(appConfig.HTTP))
			req, err := client.Resolve(cmd.Context(), query.SearchTerm, os.Stdin, os.Stdout)
			if errors.Is(err, utils.ErrNothingSelected) {
				return nil
			}
			if err != nil {
				return err
			}
			return download(cmd, []utils.DownloadRequest{req})
		},
	}
}
