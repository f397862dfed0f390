package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tanq16/xdcc/internal/config"
	"github.com/tanq16/xdcc/internal/output"
	"github.com/tanq16/xdcc/internal/scheduler"
	"github.com/tanq16/xdcc/internal/utils"
)

var (
	configFile string
	appConfig  utils.Config
)

var XdccVersion = "dev"

var rootCmd = &cobra.Command{
	Use:           "xdcc",
	Short:         "xdcc downloads packs from IRC bots over DCC",
	Version:       XdccVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		appConfig = cfg
		utils.InitLogger(cfg.Debug)
		return nil
	},
}

func Execute() {
	cobra.EnableCaseInsensitive = true
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		output.PrintError(fmt.Sprintf("Error: %v", err))
	}
	os.Exit(utils.ExitCode(err))
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (default ./xdcc.yaml or ~/.config/xdcc/xdcc.yaml)")
	flags.String("server", utils.DefaultServer, "IRC server address (host:port)")
	flags.String("channel", utils.DefaultChannel, "Channel to join before requesting packs")
	flags.Duration("welcome-timeout", utils.DefaultWelcomeTimeout, "Give up if the server sends no PING within this time (0 waits forever)")
	flags.Duration("dial-timeout", utils.DefaultDialTimeout, "Timeout for opening the control connection")
	flags.StringP("dir", "d", ".", "Directory to write downloaded files into")
	flags.Int("chunk-size", utils.DefaultChunkSize, "Read size for payload connections in bytes")
	flags.String("search-api", utils.DefaultSearchAPI, "Base URL of the pack search index")
	flags.StringP("user-agent", "a", utils.ToolUserAgent, "User agent for search requests (\"randomize\" picks one)")
	flags.StringP("proxy", "p", "", "HTTP/HTTPS proxy URL for search requests")
	flags.IntP("workers", "w", 1, "Number of bot sessions to run in parallel (batch)")
	flags.Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(newDirectCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newBatchCmd())
	rootCmd.AddCommand(newBotsCmd())
}

func download(cmd *cobra.Command, requests []utils.DownloadRequest) error {
	return scheduler.Run(cmd.Context(), requests, appConfig)
}

func knownBots() utils.PeerSet {
	return utils.NewPeerSet(appConfig.Bots)
}
