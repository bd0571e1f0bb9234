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

package create

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nlnwa/gotxtar"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	dir         string
	output      string
	comment     string
	commentFile string
	flush       bool
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "create <dir>",
		Short: "Create a txtar archive from the regular files in a directory",
		Long: `Create a txtar archive from the regular files in a directory.

Files are added in lexical order of their slash separated path relative to dir.
The archive is written to standard output unless --output is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one directory")
			}
			c.dir = args[0]
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVarP(&c.output, "output", "o", "", "write archive to file")
	cmd.Flags().StringVarP(&c.comment, "comment", "c", "", "archive comment")
	cmd.Flags().StringVar(&c.commentFile, "comment-file", "", "read archive comment from file")
	cmd.Flags().BoolVar(&c.flush, "flush", false, "sync the output file to disk before closing it")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	comment := c.comment
	if c.commentFile != "" {
		b, err := os.ReadFile(c.commentFile)
		if err != nil {
			return err
		}
		comment = string(b)
	}

	a, err := gotxtar.FromDir(c.dir, gotxtar.WithComment(comment))
	if err != nil {
		return err
	}
	if v := gotxtar.Validate(a); !v.Valid() {
		log.Warnf("%s", v)
	}

	if c.output == "" {
		_, err = gotxtar.NewMarshaler().Marshal(out, a)
		return err
	}
	if err := gotxtar.WriteFile(c.output, a, gotxtar.WithFlush(c.flush)); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	log.Infof("Wrote %d files to %s", a.Len(), c.output)
	return nil
}
