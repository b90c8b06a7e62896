// Package tally counts files by extension and remembers which files had none.
package tally

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/btree"
)

// NoExtension is the key under which files without an extension are counted.
const NoExtension = "no_extension"

// Classify returns the lowercase extension of a file name, without the
// separating dot. ok is false when the name has no extension: there is no dot,
// the last dot ends the name ("notes."), or the only dots are leading
// (".bashrc").
func Classify(name string) (ext string, ok bool) {
	name = strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return "", false
	}
	return strings.ToLower(name[i+1:]), true
}

// Row is one line of the extension table.
type Row struct {
	Extension string
	Count     int
}

// Tally accumulates extension counts over a single scan. Files without an
// extension are kept apart from named extensions, so a file really named
// "x.no_extension" never merges with the sentinel. The zero value is not
// usable; create one with New.
type Tally struct {
	counts      map[string]int
	noExtension []string
}

func New() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add classifies the base name of p and counts it. Extension-less paths are
// also recorded, as given, in the no-extension list.
func (t *Tally) Add(p string) {
	if ext, ok := Classify(filepath.Base(p)); ok {
		t.counts[ext]++
		return
	}
	t.noExtension = append(t.noExtension, p)
}

// Count returns the number of files counted under the named extension ext.
func (t *Tally) Count(ext string) int {
	return t.counts[ext]
}

// NoExtensionCount returns the number of files without an extension.
func (t *Tally) NoExtensionCount() int {
	return len(t.noExtension)
}

// Total returns the number of files counted.
func (t *Tally) Total() int {
	total := len(t.noExtension)
	for _, n := range t.counts {
		total += n
	}
	return total
}

// Distinct returns the number of categories, counting NoExtension as one when present.
func (t *Tally) Distinct() int {
	if len(t.noExtension) > 0 {
		return len(t.counts) + 1
	}
	return len(t.counts)
}

func (t *Tally) Empty() bool {
	return t.Total() == 0
}

// Counts returns the tally as a map, with extension-less files under
// NoExtension. A named extension spelled "no_extension" is added into the
// same key here; Rows keeps the two apart.
func (t *Tally) Counts() map[string]int {
	out := make(map[string]int, len(t.counts)+1)
	for k, v := range t.counts {
		out[k] = v
	}
	if n := len(t.noExtension); n > 0 {
		out[NoExtension] += n
	}
	return out
}

// NoExtensionFiles returns the extension-less paths in the order they were added.
func (t *Tally) NoExtensionFiles() []string {
	return slices.Clone(t.noExtension)
}

// rowLess orders by count descending, then extension ascending.
func rowLess(a, b Row) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Extension < b.Extension
}

// Rows returns the table rows. Named extensions come first ordered by
// descending count with ties broken alphabetically; the NoExtension row, when
// present, is always last.
func (t *Tally) Rows() []Row {
	index := btree.NewG[Row](32, rowLess)
	for ext, n := range t.counts {
		index.ReplaceOrInsert(Row{Extension: ext, Count: n})
	}

	rows := make([]Row, 0, index.Len()+1)
	index.Ascend(func(r Row) bool {
		rows = append(rows, r)
		return true
	})
	if n := len(t.noExtension); n > 0 {
		rows = append(rows, Row{Extension: NoExtension, Count: n})
	}
	return rows
}

// Check verifies that every recorded count is positive and that the rows
// account for every file.
func (t *Tally) Check() error {
	for ext, n := range t.counts {
		if n <= 0 {
			return fmt.Errorf("extension %q has non-positive count %d", ext, n)
		}
	}
	sum := 0
	for _, r := range t.Rows() {
		sum += r.Count
	}
	if sum != t.Total() {
		return fmt.Errorf("rows sum to %d but %d files were counted", sum, t.Total())
	}
	return nil
}
