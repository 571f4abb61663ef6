package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lexfrei/go-censys/node"
)

func newTestCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check the credentials against the account endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := nodeConfig(v)
			if err != nil {
				return err
			}

			n, err := node.New(cfg)
			if err != nil {
				return err
			}

			account, err := n.TestCredentials(cmd.Context())
			if err != nil {
				return err
			}

			return writeJSON(cmd, account)
		},
	}
}
