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

package cat

import (
	"errors"
	"fmt"
	"io"

	"github.com/nlnwa/gotxtar"
	"github.com/spf13/cobra"
)

type conf struct {
	comment  bool
	marker   bool
	fileName string
	names    []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "cat <archive> [name]...",
		Short: "Print the content of files in a txtar archive",
		Long: `Print the content of files in a txtar archive.

Without names, the content of every file is printed in archive order. When a name occurs
more than once, the first file with that name is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileName = args[0]
			c.names = args[1:]
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVar(&c.comment, "comment", false, "print the archive comment first")
	cmd.Flags().BoolVarP(&c.marker, "marker", "m", false, "print the marker line before each file")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	a, err := gotxtar.ParseFile(c.fileName)
	if err != nil {
		return err
	}

	if c.comment {
		if _, err := io.WriteString(out, a.Comment()); err != nil {
			return err
		}
	}

	if len(c.names) == 0 {
		for f := range a.Files() {
			if err := printFile(out, c, f); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range c.names {
		f, ok := a.Get(name)
		if !ok {
			return fmt.Errorf("%s: no file named %q", c.fileName, name)
		}
		if err := printFile(out, c, f); err != nil {
			return err
		}
	}
	return nil
}

func printFile(out io.Writer, c *conf, f gotxtar.File) (err error) {
	if c.marker {
		_, err = io.WriteString(out, f.String())
	} else {
		_, err = io.WriteString(out, f.Content)
	}
	return
}
