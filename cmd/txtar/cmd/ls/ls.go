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

package ls

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/cmd/txtar/internal"
	"github.com/spf13/cobra"
)

type conf struct {
	long      bool
	fileNames []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "ls <archive>...",
		Short: "List files in txtar archives",
		Long:  ``,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileNames = args
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVarP(&c.long, "long", "l", false, "show index, size and line count of each file")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	for i, fileName := range c.fileNames {
		a, err := gotxtar.ParseFile(fileName)
		if err != nil {
			return err
		}
		if len(c.fileNames) > 1 {
			if i > 0 {
				_, _ = fmt.Fprintln(out)
			}
			_, _ = fmt.Fprintf(out, "%s:\n", fileName)
		}
		for idx, f := range a.All() {
			printFile(out, c, idx, f)
		}
	}
	return nil
}

func printFile(out io.Writer, c *conf, idx int, f gotxtar.File) {
	name := internal.Name(internal.CropString(f.Name, 100))
	if f.Name == "" {
		name = internal.Warning("<empty name>")
	}
	if c.long {
		_, _ = fmt.Fprintf(out, "%s %8d %6d %s\n", internal.Faint(fmt.Sprintf("%4d", idx)), len(f.Content), strings.Count(f.Content, "\n"), name)
		return
	}
	_, _ = fmt.Fprintln(out, name)
}
