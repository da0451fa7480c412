package savebridge

import "io"

// Mode selects how FS.Open prepares a file.
type Mode int

const (
	// Read opens an existing file for reading.
	Read Mode = iota
	// Write creates the file or truncates an existing one.
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// FileInfo is what Stat reports about a stored file.
type FileInfo struct {
	Name string
	Size int64
}

// File is an open handle returned by FS.Open.
type File interface {
	io.Reader
	io.Writer
	io.Closer
}

// FS is the storage the bridge persists through. Stat returns an error
// wrapping fs.ErrNotExist when name is absent.
type FS interface {
	Stat(name string) (FileInfo, error)
	Open(name string, mode Mode) (File, error)
}
