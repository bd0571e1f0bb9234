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

package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nlnwa/gotxtar"
	"github.com/nlnwa/gotxtar/cmd/txtar/internal"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type conf struct {
	write     bool
	diff      bool
	list      bool
	fileNames []string
}

func NewCommand() *cobra.Command {
	c := &conf{}
	var cmd = &cobra.Command{
		Use:   "fmt [archive]...",
		Short: "Rewrite txtar archives in canonical form",
		Long: `Rewrite txtar archives in canonical form.

The canonical form ends every file content with a newline and strips white space
around file names. Without archive arguments, or with "-", the archive is read from
standard input. By default the canonical form is printed to standard output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"-"}
			}
			c.fileNames = args
			return runE(cmd.InOrStdin(), cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().BoolVarP(&c.write, "write", "w", false, "write result to the source archive instead of standard output")
	cmd.Flags().BoolVarP(&c.diff, "diff", "d", false, "display diffs instead of rewriting archives")
	cmd.Flags().BoolVarP(&c.list, "list", "l", false, "list archives whose formatting differs from canonical form")

	return cmd
}

func runE(in io.Reader, out io.Writer, c *conf) error {
	for _, fileName := range c.fileNames {
		if err := formatFile(in, out, c, fileName); err != nil {
			return err
		}
	}
	return nil
}

func formatFile(in io.Reader, out io.Writer, c *conf, fileName string) error {
	var data []byte
	var err error
	if fileName == "-" {
		if c.write {
			return fmt.Errorf("cannot use --write with standard input")
		}
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(fileName)
	}
	if err != nil {
		return err
	}

	a, _, err := gotxtar.NewUnmarshaler().Unmarshal(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", fileName, err)
	}
	formatted := gotxtar.Format(a)
	changed := !bytes.Equal(data, formatted)

	if !c.list && !c.diff && !c.write {
		_, err = out.Write(formatted)
		return err
	}
	if !changed {
		return nil
	}
	if c.list {
		_, _ = fmt.Fprintln(out, fileName)
	}
	if c.diff {
		printDiff(out, fileName, string(data), string(formatted))
	}
	if c.write {
		info, err := os.Stat(fileName)
		if err != nil {
			return err
		}
		log.Debugf("rewriting %s", fileName)
		if err := gotxtar.WriteFile(fileName, a, gotxtar.WithFilePerm(info.Mode().Perm())); err != nil {
			return err
		}
	}
	return nil
}

// printDiff writes a line oriented diff between from and to.
// Within a run of changes all removed lines are printed before the added ones.
func printDiff(out io.Writer, fileName, from, to string) {
	dmp := diffpatch.New()
	fromChars, toChars, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(fromChars, toChars, false), lines)

	_, _ = fmt.Fprintf(out, "--- %s\n+++ %s (formatted)\n", fileName, fileName)
	var deleted, inserted strings.Builder
	flush := func() {
		printLines(out, "-", internal.Failure, deleted.String())
		printLines(out, "+", internal.Ok, inserted.String())
		deleted.Reset()
		inserted.Reset()
	}
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			deleted.WriteString(d.Text)
		case diffpatch.DiffInsert:
			inserted.WriteString(d.Text)
		default:
			flush()
			printLines(out, " ", fmt.Sprint, d.Text)
		}
	}
	flush()
}

func printLines(out io.Writer, prefix string, paint func(a ...interface{}) string, text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if !strings.HasSuffix(line, "\n") {
			line += "\n\\ No newline at end of file\n"
		}
		_, _ = fmt.Fprint(out, paint(prefix+line))
	}
}
