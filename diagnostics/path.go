package diagnostics

import (
	"strings"

	"github.com/speakeasy-api/apireader/jsonpointer"
)

// Path tracks the current location within a document as a stack of segments.
type Path struct {
	segments []string
}

// Enter pushes a segment.
func (p *Path) Enter(segment string) {
	p.segments = append(p.segments, segment)
}

// Exit pops the last segment. Calling Exit without a matching Enter panics.
func (p *Path) Exit() {
	if len(p.segments) == 0 {
		panic("diagnostics: Exit called without matching Enter")
	}
	p.segments = p.segments[:len(p.segments)-1]
}

func (p *Path) Depth() int {
	return len(p.segments)
}

// Segments returns a copy of the current segments.
func (p *Path) Segments() []string {
	return append([]string(nil), p.segments...)
}

// String renders the path as a JSON pointer fragment, e.g. #/paths/~1pets/get.
func (p *Path) String() string {
	var sb strings.Builder
	sb.WriteString("#/")
	for i, s := range p.segments {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(jsonpointer.EscapeString(s))
	}
	return sb.String()
}
