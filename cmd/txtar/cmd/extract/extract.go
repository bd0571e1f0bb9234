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

package extract

import (
	"errors"

	"github.com/nlnwa/gotxtar"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	fileName string
	dir      string
	force    bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "extract <archive> [dir]",
		Short: "Write the files of a txtar archive to a directory",
		Long: `Write the files of a txtar archive to a directory, default is the current directory.

Nothing is written if a file name is absolute or points outside the directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args) > 2 {
				return errors.New("expected an archive and an optional directory")
			}
			c.fileName = args[0]
			c.dir = "."
			if len(args) == 2 {
				c.dir = args[1]
			}
			return runE(c)
		},
	}

	cmd.Flags().BoolVarP(&c.force, "force", "f", false, "overwrite existing files")

	return cmd
}

func runE(c *conf) error {
	a, err := gotxtar.ParseFile(c.fileName)
	if err != nil {
		return err
	}
	if err := gotxtar.Extract(a, c.dir, gotxtar.WithOverwrite(c.force)); err != nil {
		return err
	}
	log.Infof("Extracted %d files to %s", a.Len(), c.dir)
	return nil
}
