// Package report renders a scan result as the console table printed by the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/garethgeorge/exttally/internal/ioutil"
	"github.com/garethgeorge/exttally/internal/scanner"
)

const (
	extColumnWidth = 30
	ruleWidth      = 50
)

var rule = strings.Repeat("-", ruleWidth)

// Write prints the report for res to w.
//
// An empty tally produces a single "no files found" line. Otherwise the
// extension table is followed by totals, then the extension-less paths and any
// entries the walk had to skip.
func Write(w io.Writer, res *scanner.Result) error {
	out := ioutil.WithBufferedWrites(w)
	t := res.Tally

	if t.Empty() {
		fmt.Fprintf(out, "No files found in '%s' or its subdirectories.\n", res.Root)
		writeSkipped(out, res.Skipped)
		return out.Close()
	}

	fmt.Fprintf(out, "\nFile extension statistics for '%s' and its subdirectories:\n", res.Root)
	fmt.Fprintln(out, rule)
	writeRow(out, "Extension", "Count")
	fmt.Fprintln(out, rule)
	for _, r := range t.Rows() {
		writeRow(out, r.Extension, r.Count)
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Total: %d files, %d distinct extensions\n", t.Total(), t.Distinct())

	if files := t.NoExtensionFiles(); len(files) > 0 {
		fmt.Fprintln(out, "\nFiles without an extension:")
		fmt.Fprintln(out, rule)
		for _, p := range files {
			fmt.Fprintln(out, p)
		}
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "%d files without an extension\n", len(files))
	}

	writeSkipped(out, res.Skipped)
	return out.Close()
}

func writeRow(w io.Writer, ext string, count any) {
	fmt.Fprintf(w, "%-*s %v\n", extColumnWidth, ext, count)
}

func writeSkipped(w io.Writer, skipped []scanner.Skipped) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintf(w, "\nSkipped %d unreadable entries:\n", len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "%s: %v\n", s.Path, s.Err)
	}
}
