package compare

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of change a diff line represents.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "equal"
	}
}

// Prefix is the unified-diff marker for the op.
func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a line diff. LeftNo and RightNo are 1-based line numbers
// on each side; 0 means the line does not exist on that side.
type Line struct {
	Op      Op
	LeftNo  int
	RightNo int
	Text    string
}

// Lines diffs left against right by whole lines.
func Lines(left, right string) []Line {
	dmp := diffpatch.New()
	a, b, index := dmp.DiffLinesToChars(withNewline(left), withNewline(right))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []Line
	ln, rn := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffpatch.DiffEqual:
				ln++
				rn++
				out = append(out, Line{Op: Equal, LeftNo: ln, RightNo: rn, Text: text})
			case diffpatch.DiffDelete:
				ln++
				out = append(out, Line{Op: Delete, LeftNo: ln, Text: text})
			case diffpatch.DiffInsert:
				rn++
				out = append(out, Line{Op: Insert, RightNo: rn, Text: text})
			}
		}
	}
	return out
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Changed returns only the inserted and deleted lines.
func Changed(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Op != Equal {
			out = append(out, l)
		}
	}
	return out
}

// Stats counts the lines of a diff by op.
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Identical reports whether the diff has no changes.
func (s Stats) Identical() bool { return s.Added == 0 && s.Removed == 0 }

// Count tallies lines by op.
func Count(lines []Line) Stats {
	var s Stats
	for _, l := range lines {
		switch l.Op {
		case Insert:
			s.Added++
		case Delete:
			s.Removed++
		default:
			s.Unchanged++
		}
	}
	return s
}

// Stats tallies the pair's diff.
func (p *Pair) Stats() Stats { return Count(p.Diff()) }

// Unified renders lines with +, - and space markers.
func Unified(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.Op.Prefix())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Unified renders the pair's diff.
func (p *Pair) Unified() string { return Unified(p.Diff()) }

// Side is one half of a split row. A zero No means the side is blank.
type Side struct {
	No   int
	Text string
	Op   Op
}

// Row pairs the left and right halves of a side-by-side diff.
type Row struct {
	Left  Side
	Right Side
}

// Rows aligns a diff into side-by-side rows. A run of deletions followed by a
// run of insertions is shown as modified lines next to each other.
func Rows(lines []Line) []Row {
	var rows []Row
	for i := 0; i < len(lines); {
		l := lines[i]
		if l.Op == Equal {
			rows = append(rows, Row{
				Left:  Side{No: l.LeftNo, Text: l.Text},
				Right: Side{No: l.RightNo, Text: l.Text},
			})
			i++
			continue
		}
		var dels, ins []Line
		for i < len(lines) && lines[i].Op == Delete {
			dels = append(dels, lines[i])
			i++
		}
		for i < len(lines) && lines[i].Op == Insert {
			ins = append(ins, lines[i])
			i++
		}
		for j := 0; j < max(len(dels), len(ins)); j++ {
			var r Row
			if j < len(dels) {
				r.Left = Side{No: dels[j].LeftNo, Text: dels[j].Text, Op: Delete}
			}
			if j < len(ins) {
				r.Right = Side{No: ins[j].RightNo, Text: ins[j].Text, Op: Insert}
			}
			rows = append(rows, r)
		}
	}
	return rows
}
