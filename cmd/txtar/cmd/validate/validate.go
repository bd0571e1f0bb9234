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

package validate

import (
	"errors"
	"fmt"
	"io"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/cmd/txtar/internal"
	"github.com/spf13/cobra"
)

// ErrFindings is returned when at least one archive has validation findings.
var ErrFindings = errors.New("validation found problems")

type conf struct {
	quiet     bool
	fileNames []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "validate <archive>...",
		Short: "Check txtar archives for names and content which might surprise",
		Long: `Check txtar archives for names and content which might surprise.

Reported are duplicate names, names which change when the archive is formatted,
names which can not be extracted and content which would be read as a file marker.
The command fails if any archive has findings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("missing file name")
			}
			c.fileNames = args
			return runE(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "only print archives with findings")

	return cmd
}

func runE(out io.Writer, c *conf) error {
	failed := false
	for _, fileName := range c.fileNames {
		a, err := gotxtar.ParseFile(fileName)
		if err != nil {
			return err
		}
		v := gotxtar.Validate(a)
		if v.Valid() {
			if !c.quiet {
				_, _ = fmt.Fprintf(out, "%s: %s\n", fileName, internal.Ok("ok"))
			}
			continue
		}
		failed = true
		_, _ = fmt.Fprintf(out, "%s: %s\n", fileName, internal.Failure(fmt.Sprintf("%d findings", len(*v))))
		for i, e := range *v {
			_, _ = fmt.Fprintf(out, "  %d: %s\n", i+1, e)
		}
	}
	if failed {
		return ErrFindings
	}
	return nil
}
