package types

// SourceKind identifies where a query's text comes from.
type SourceKind int

const (
	// SourceRaw is an inline SQL string; no I/O is needed to resolve it.
	SourceRaw SourceKind = iota
	// SourceFile is a full path to a file holding the SQL text.
	SourceFile
	// SourceLib is a file name resolved under the pool's configured query
	// library directory.
	SourceLib
)

// Source is a query text source. It is an immutable value; build one with
// Raw, File or Lib and hand it to an executor operation. Raw sources carry
// the SQL directly, File and Lib sources are re-read from disk on every
// resolution so the text is always fresh (repeated executions are amortized
// by the statement cache downstream, not by caching file contents).
type Source struct {
	kind SourceKind
	text string
}

// Raw returns an inline SQL source.
func Raw(sql string) Source { return Source{kind: SourceRaw, text: sql} }

// File returns a source read from the given path.
func File(path string) Source { return Source{kind: SourceFile, text: path} }

// Lib returns a source read from the pool's query library directory. It can
// only be resolved by call paths that carry a pool handle, since the library
// root lives on the pool.
func Lib(name string) Source { return Source{kind: SourceLib, text: name} }

// Kind returns the source kind.
func (s Source) Kind() SourceKind { return s.kind }

// Text returns the raw SQL, file path, or library entry name depending on
// the kind.
func (s Source) Text() string { return s.text }
