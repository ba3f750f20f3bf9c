// Package diagfmt renders expansion outcomes for people and tools:
// human-readable diagnostic listings, artifact summaries and a stable
// JSON document.
package diagfmt

// PrettyOpts configures pretty-printing of diagnostics and artifacts.
type PrettyOpts struct {
	Color           bool
	Width           int // максимальная ширина строки, 0 - не ограничено
	ShowContexts    bool
	ShowCorrections bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	IncludeContexts  bool
	IncludeArtifacts bool
	Max              int // обрезка вывода, не Bag
}
