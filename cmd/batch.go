package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tanq16/xdcc/internal/utils"
	"gopkg.in/yaml.v3"
)

type BatchEntry struct {
	Bot   string `yaml:"bot"`
	Packs []int  `yaml:"packs"`
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [YAML_FILE]",
		Short: "Request packs from several bots listed in a YAML file",
		Long: "The file is a list of entries such as:\n\n" +
			"  - bot: Arutha\n    packs: [123, 456]\n  - bot: \"CR-HOLLAND|NEW\"\n    packs: [12]",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading batch file: %w", err)
			}
			requests, err := parseBatch(data, knownBots())
			if err != nil {
				return err
			}
			return download(cmd, requests)
		},
	}
}

func parseBatch(data []byte, known utils.PeerSet) ([]utils.DownloadRequest, error) {
	var entries []BatchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: error parsing batch file: %v", utils.ErrIncorrectArgument, err)
	}
	var requests []utils.DownloadRequest
	for i, entry := range entries {
		if !known.Contains(entry.Bot) {
			return nil, fmt.Errorf("%w: entry %d: %q", utils.ErrBotNotFound, i+1, entry.Bot)
		}
		if len(entry.Packs) == 0 {
			return nil, fmt.Errorf("%w: entry %d (%s) has no packs", utils.ErrIncorrectArgument, i+1, entry.Bot)
		}
		requests = append(requests, utils.DownloadRequest{PeerName: entry.Bot, PackIDs: utils.PackIDsFromInts(entry.Packs)})
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("%w: no entries in batch file", utils.ErrIncorrectArgument)
	}
	return requests, nil
}
