package source

import "fmt"

type (
	// FileID identifies a source file inside a FileSet.
	FileID uint32
	// FileFlags records how a file entered the FileSet.
	FileFlags uint8
)

const (
	// FileVirtual marks text that did not come from disk (REPL line, -c snippet, test input).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one compilation input with its precomputed line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human position.
type LineCol struct {
	Line uint32
	Col  uint32
}

func (lc LineCol) String() string {
	return fmt.Sprintf("%d:%d", lc.Line, lc.Col)
}
