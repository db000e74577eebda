package format

import (
	"fmt"
	"strings"
)

// LineType marks a line of a diff hunk.
type LineType int

const (
	LineTypeContext LineType = iota
	LineTypeAdded
	LineTypeRemoved
)

// Line represents a single line in a diff.
type Line struct {
	Type    LineType
	Content string
}

// Hunk represents a contiguous block of changes.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Header returns the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// DiffStat summarizes a diff.
type DiffStat struct {
	Added   int
	Removed int
}

// edit is one step of the line alignment.
type edit struct {
	typ  LineType
	a, b int // line indexes in original and modified
}

// Diff returns the unified diff of original and modified with context
// lines around each change, or "" when they are equal.
func Diff(filename, original, modified string, context int) string {
	hunks := Hunks(original, modified, context)
	if len(hunks) == 0 {
		return ""
	}
	var out strings.Builder
	fmt.Fprintf(&out, "--- %s\t(original)\n", filename)
	fmt.Fprintf(&out, "+++ %s\t(formatted)\n", filename)
	for _, h := range hunks {
		out.WriteString(h.Header())
		out.WriteByte('\n')
		for _, l := range h.Lines {
			switch l.Type {
			case LineTypeContext:
				out.WriteByte(' ')
			case LineTypeAdded:
				out.WriteByte('+')
			case LineTypeRemoved:
				out.WriteByte('-')
			}
			out.WriteString(l.Content)
			out.WriteByte('\n')
		}
	}
	return out.String()
}

// Stat counts the added and removed lines of hunks.
func Stat(hunks []Hunk) DiffStat {
	var s DiffStat
	for _, h := range hunks {
		for _, l := range h.Lines {
			switch l.Type {
			case LineTypeAdded:
				s.Added++
			case LineTypeRemoved:
				s.Removed++
			}
		}
	}
	return s
}

// Hunks aligns the lines of original and modified by longest common
// subsequence and groups the changes into hunks.
func Hunks(original, modified string, context int) []Hunk {
	a, b := splitLines(original), splitLines(modified)
	edits := align(a, b)

	var hunks []Hunk
	for i := 0; i < len(edits); {
		if edits[i].typ == LineTypeContext {
			i++
			continue
		}
		start := max(0, i-context)
		end := i
		// Extend over changes separated by at most 2*context equal lines.
		for end < len(edits) {
			if edits[end].typ != LineTypeContext {
				end++
				continue
			}
			run := end
			for run < len(edits) && edits[run].typ == LineTypeContext {
				run++
			}
			if run == len(edits) || run-end > 2*context {
				end = min(len(edits), end+context)
				break
			}
			end = run
		}

		h := Hunk{OriginalStart: edits[start].a + 1, ModifiedStart: edits[start].b + 1}
		for _, e := range edits[start:end] {
			switch e.typ {
			case LineTypeContext:
				h.Lines = append(h.Lines, Line{LineTypeContext, a[e.a]})
				h.OriginalCount++
				h.ModifiedCount++
			case LineTypeRemoved:
				h.Lines = append(h.Lines, Line{LineTypeRemoved, a[e.a]})
				h.OriginalCount++
			case LineTypeAdded:
				h.Lines = append(h.Lines, Line{LineTypeAdded, b[e.b]})
				h.ModifiedCount++
			}
		}
		hunks = append(hunks, h)
		i = end
	}
	return hunks
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// align computes the edit script with a quadratic LCS table. Source files
// handed to the formatter are small enough for that.
func align(a, b []string) []edit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	edits := make([]edit, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			edits = append(edits, edit{LineTypeContext, i, j})
			i++
			j++
		case i < n && (j == m || lcs[i+1][j] >= lcs[i][j+1]):
			edits = append(edits, edit{LineTypeRemoved, i, j})
			i++
		default:
			edits = append(edits, edit{LineTypeAdded, i, j})
			j++
		}
	}
	return edits
}
