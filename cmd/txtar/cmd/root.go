/*
 * Copyright 2024 National Library of Norway.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/cat"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/create"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/extract"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/format"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/index"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/ls"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/serve"
	"github.com/nlnwa/gotxtar/cmd/txtar/cmd/validate"
	"github.com/nlnwa/gotxtar/cmd/txtar/internal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type conf struct {
	cfgFile string
}

// NewCommand returns a new cobra.Command implementing the root command for txtar
func NewCommand() *cobra.Command {
	c := &conf{}
	cmd := &cobra.Command{
		Use:   "txtar",
		Short: "Work with txtar text archives",
		Long: `txtar reads, writes and serves txtar archives.

A txtar archive is a plain text file holding a comment followed by a sequence
of files, each introduced by a marker line of the form "-- name --".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.initConfig(); err != nil {
				return err
			}
			level, err := log.ParseLevel(viper.GetString("log-level"))
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return internal.SetColorMode(viper.GetString("color"))
		},
	}

	// Flags
	cmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.txtar.yaml)")
	cmd.PersistentFlags().String("log-level", "info", "log level, one of panic, fatal, error, warn, info, debug or trace")
	cmd.PersistentFlags().String("color", "auto", "colorize output, one of auto, always or never")
	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		log.Fatalf("Failed to bind root flags: %v", err)
	}

	// Subcommands
	cmd.AddCommand(ls.NewCommand())
	cmd.AddCommand(cat.NewCommand())
	cmd.AddCommand(format.NewCommand())
	cmd.AddCommand(create.NewCommand())
	cmd.AddCommand(extract.NewCommand())
	cmd.AddCommand(validate.NewCommand())
	cmd.AddCommand(index.NewCommand())
	cmd.AddCommand(serve.NewCommand())

	return cmd
}

// initConfig reads in config file and ENV variables if set.
func (c *conf) initConfig() error {
	if c.cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(c.cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			return err
		}

		// Search config in home directory with name ".txtar" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".txtar")
	}

	viper.SetEnvPrefix("TXTAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && c.cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		return nil
	}
	log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	return nil
}
