package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexfrei/go-censys/node"
	"github.com/lexfrei/go-censys/observability"
	"github.com/lexfrei/go-censys/observability/zerologadapter"
)

const (
	envPrefix       = "CENSYS"
	configName      = "censys"
	defaultLogLevel = "warn"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:           "censys",
		Short:         "Run Censys Search API operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(v)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default censys.yml in . or ~/.config/censys)")
	flags.String("api-id", "", "Censys API ID")
	flags.String("api-secret", "", "Censys API secret")
	flags.String("base-url", "", "Censys API base URL")
	flags.Int("rate-limit", 0, "client-side requests per minute (0 disables)")
	flags.Int("max-retries", 0, "transport retries for 429/5xx responses")
	flags.String("log-level", defaultLogLevel, "set log-level: error, warn, info, debug, trace")

	for _, name := range []string{"config", "api-id", "api-secret", "base-url", "rate-limit", "max-retries", "log-level"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newOperationsCmd(),
		newDescribeCmd(),
		newTestCmd(v),
		newRunCmd(v),
	)

	return root
}

func initConfig(v *viper.Viper) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		return errors.Wrapf(v.ReadInConfig(), "failed to read config %s", file)
	}

	v.SetConfigName(configName)
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", configName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read config")
		}
	}

	return nil
}

func newLogger(v *viper.Viper) (observability.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", v.GetString("log-level"))
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	return zerologadapter.New(zl), nil
}

// nodeConfig assembles the node configuration shared by every command.
func nodeConfig(v *viper.Viper) (node.Config, error) {
	logger, err := newLogger(v)
	if err != nil {
		return node.Config{}, err
	}

	return node.Config{
		Credentials: node.Credentials{
			APIID:     v.GetString("api-id"),
			APISecret: v.GetString("api-secret"),
		},
		BaseURL:            v.GetString("base-url"),
		RateLimitPerMinute: v.GetInt("rate-limit"),
		MaxRetries:         v.GetInt("max-retries"),
		Logger:             logger,
	}, nil
}
