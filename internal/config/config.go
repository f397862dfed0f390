package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tanq16/xdcc/internal/utils"
)

const envPrefix = "XDCC"

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"server":          "irc.server",
	"channel":         "irc.channel",
	"welcome-timeout": "irc.welcometimeout",
	"dial-timeout":    "irc.dialtimeout",
	"dir":             "transfer.dir",
	"chunk-size":      "transfer.chunksize",
	"search-api":      "search.api",
	"user-agent":      "http.useragent",
	"proxy":           "http.proxyurl",
	"workers":         "workers",
	"debug":           "debug",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("irc.server", utils.DefaultServer)
	v.SetDefault("irc.channel", utils.DefaultChannel)
	v.SetDefault("irc.nicklength", utils.DefaultNickLength)
	v.SetDefault("irc.dialtimeout", utils.DefaultDialTimeout)
	v.SetDefault("irc.welcometimeout", utils.DefaultWelcomeTimeout)
	v.SetDefault("transfer.dir", ".")
	v.SetDefault("transfer.chunksize", utils.DefaultChunkSize)
	v.SetDefault("transfer.dialtimeout", utils.DefaultDialTimeout)
	v.SetDefault("search.api", utils.DefaultSearchAPI)
	v.SetDefault("search.timeout", utils.DefaultSearchTimeout)
	v.SetDefault("http.useragent", utils.ToolUserAgent)
	v.SetDefault("http.proxyurl", "")
	v.SetDefault("workers", 1)
	v.SetDefault("debug", false)
	v.SetDefault("bots", utils.DefaultBots())
}

// Load merges defaults, the config file, XDCC_* environment variables and any
// flags that were set explicitly, in increasing order of precedence. An empty
// configFile searches ./xdcc.yaml and $HOME/.config/xdcc/xdcc.yaml and tolerates
// neither existing; an explicit path must exist.
func Load(configFile string, flags *pflag.FlagSet) (utils.Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return utils.Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("xdcc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "xdcc"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return utils.Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return utils.Config{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := utils.Config{
		IRC: utils.IRCConfig{
			Server:         v.GetString("irc.server"),
			Channel:        v.GetString("irc.channel"),
			NickLength:     v.GetInt("irc.nicklength"),
			DialTimeout:    v.GetDuration("irc.dialtimeout"),
			WelcomeTimeout: v.GetDuration("irc.welcometimeout"),
		},
		Transfer: utils.TransferConfig{
			Dir:         v.GetString("transfer.dir"),
			ChunkSize:   v.GetInt("transfer.chunksize"),
			DialTimeout: v.GetDuration("transfer.dialtimeout"),
		},
		Search: utils.SearchConfig{
			API:     strings.TrimSuffix(v.GetString("search.api"), "/"),
			Timeout: v.GetDuration("search.timeout"),
		},
		HTTP: utils.HTTPClientConfig{
			Timeout:   v.GetDuration("search.timeout"),
			UserAgent: v.GetString("http.useragent"),
			ProxyURL:  v.GetString("http.proxyurl"),
		},
		Workers: v.GetInt("workers"),
		Bots:    v.GetStringSlice("bots"),
		Debug:   v.GetBool("debug"),
	}
	if err := validate(cfg); err != nil {
		return utils.Config{}, err
	}
	return cfg, nil
}

func validate(cfg utils.Config) error {
	if cfg.IRC.Server == "" {
		return fmt.Errorf("irc.server must not be empty")
	}
	if !strings.HasPrefix(cfg.IRC.Channel, "#") {
		return fmt.Errorf("irc.channel must start with '#', got %q", cfg.IRC.Channel)
	}
	if cfg.IRC.NickLength <= 0 {
		return fmt.Errorf("irc.nicklength must be positive")
	}
	if cfg.Transfer.ChunkSize <= 0 {
		return fmt.Errorf("transfer.chunksize must be positive")
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if len(cfg.Bots) == 0 {
		return fmt.Errorf("bots allow-list must not be empty")
	}
	return nil
}
