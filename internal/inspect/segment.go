package inspect

import (
	"iter"
	"regexp"
	"strings"
)

var elementOpenPattern = regexp.MustCompile(`^(\w+):\s+Factory Details:`)

// Chunk is the contiguous slice of a multi-element dump that belongs to one
// element.
type Chunk struct {
	Name string
	Text string
	// Line is the zero-based index of the element-open line in the dump.
	Line int
}

// Segment splits a gst-inspect --print-all dump into per-element chunks. Each
// chunk starts at a "<name>: Factory Details:" line and runs up to, but not
// including, the next such line or the end of text. Matches are produced
// strictly in dump order; duplicate names are yielded as-is.
func Segment(text string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for chunk := range Chunks(text) {
			if !yield(chunk.Name, chunk.Text) {
				return
			}
		}
	}
}

// Chunks is Segment with line positions attached.
func Chunks(text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		lines := strings.Split(text, "\n")
		starts := make([]int, 0, 16)
		names := make([]string, 0, 16)
		for i, line := range lines {
			if m := elementOpenPattern.FindStringSubmatch(line); m != nil {
				starts = append(starts, i)
				names = append(names, m[1])
			}
		}
		for n, start := range starts {
			end := len(lines)
			if n+1 < len(starts) {
				end = starts[n+1]
			}
			chunk := Chunk{
				Name: names[n],
				Text: strings.Join(lines[start:end], "\n"),
				Line: start,
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// CountElements returns the number of element-open lines in text.
func CountElements(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if elementOpenPattern.MatchString(line) {
			count++
		}
	}
	return count
}
