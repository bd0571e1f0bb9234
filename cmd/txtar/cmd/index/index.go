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

package index

import (
	"fmt"
	"io"
	"runtime"

	"github.com/nlnwa/gotxtar/pkg/index"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index [dir]...",
		Short: "Index the files of all txtar archives found in directories",
		Long: `Index the files of all txtar archives found in directories.

The index maps file names to the archives containing them and is used by the serve command.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				viper.Set("archive-dir", args)
			}
			return runE(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringP("index-dir", "", ".", "Index directory")
	cmd.Flags().StringSliceP("archive-dir", "", []string{"."}, "List of directories containing archives")
	cmd.Flags().IntP("max-depth", "d", 4, "The maximum directory depth when searching for archives")
	cmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of index workers")
	cmd.Flags().StringP("suffix", "", ".txtar", "File name suffix of archives")
	cmd.Flags().BoolP("list", "l", false, "List indexed archives when done")

	return cmd
}

func runE(out io.Writer) error {
	opts := index.DefaultOptions().
		WithDir(viper.GetString("index-dir")).
		WithSuffix(viper.GetString("suffix"))

	db, err := index.NewIndexDb(opts)
	if err != nil {
		return err
	}
	defer db.Close()

	dirs := viper.GetStringSlice("archive-dir")
	if err := index.IndexDirs(db, dirs, viper.GetInt("max-depth"), viper.GetInt("workers")); err != nil {
		return err
	}

	archives, err := db.ListArchives()
	if err != nil {
		return err
	}
	log.Infof("Index contains %d archives", len(archives))
	if viper.GetBool("list") {
		for _, a := range archives {
			_, _ = fmt.Fprintln(out, a)
		}
	}
	return nil
}
