package pipeline

import "fmt"

// WarningKind classifies a non-fatal problem found in the source.
type WarningKind string

// Warning kinds.
const (
	WarnUnterminatedFence    WarningKind = "unterminated-fence"
	WarnEmptyLink            WarningKind = "empty-link"
	WarnUnresolvedRef        WarningKind = "unresolved-reference"
	WarnRawHTMLOmitted       WarningKind = "raw-html-omitted"
	WarnMalformedFrontMatter WarningKind = "front-matter"
)

// Warning is a non-fatal problem in the source document.
// Line is 1-based and counts from the start of the file; 0 means unknown.
type Warning struct {
	Line    int
	Kind    WarningKind
	Message string
}

// String formats the warning as "line N: message".
func (w Warning) String() string {
	if w.Line <= 0 {
		return w.Message
	}
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// ShiftWarnings adds offset to every known line number.
func ShiftWarnings(ws []Warning, offset int) {
	if offset == 0 {
		return
	}
	for i := range ws {
		if ws[i].Line > 0 {
			ws[i].Line += offset
		}
	}
}
