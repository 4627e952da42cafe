package sixtyasm

import (
	"os"
	"path/filepath"
)

// SourceProvider resolves a logical file name to UTF-8 source bytes. It is
// the only collaborator the core needs for .include and .incbin handling;
// everything else (argument parsing, dump formatting) lives outside the
// core per spec §1.
type SourceProvider interface {
	// Read returns the bytes named by name, or an error (wrapped as
	// KindFileNotFound by the caller) if it cannot be read.
	Read(name string) ([]byte, error)
}

// FileSource reads files from disk relative to a base directory. .include
// and .incbin paths are resolved relative to that same base directory
// (not the process's current working directory), matching how the CLI
// resolves the top-level input file's own directory.
type FileSource struct {
	baseDir string
}

// NewFileSource returns a FileSource rooted at baseDir.
func NewFileSource(baseDir string) *FileSource {
	return &FileSource{baseDir: baseDir}
}

// Read implements SourceProvider.
func (f *FileSource) Read(name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.baseDir, name)
	}
	return os.ReadFile(path)
}
