package compare

import (
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
)

const splitGutter = " │ "

// Split renders lines side by side within width columns. Each half shows a
// line number, a change marker and the text, truncated to fit.
func Split(lines []Line, width int) []string {
	rows := Rows(lines)
	numW := 1
	for _, r := range rows {
		numW = max(numW, len(strconv.Itoa(r.Left.No)), len(strconv.Itoa(r.Right.No)))
	}
	half := (width - runewidth.StringWidth(splitGutter)) / 2
	textW := half - numW - 3
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = splitSide(r.Left, numW, textW) + splitGutter + splitSide(r.Right, numW, textW)
	}
	return out
}

// Split renders the pair's diff side by side.
func (p *Pair) Split(width int) []string { return Split(p.Diff(), width) }

func splitSide(s Side, numW, textW int) string {
	no := ""
	if s.No > 0 {
		no = strconv.Itoa(s.No)
	}
	text := s.Text
	if textW > 0 {
		text = runewidth.FillRight(runewidth.Truncate(text, textW, "…"), textW)
	}
	return fmt.Sprintf("%*s %s %s", numW, no, s.Op.Prefix(), text)
}
