// Package savebridge loads and stores cartridge battery RAM as
// "<identity>.sav" through an injected FS.
package savebridge

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// Ext is appended to the game identity to name its save file.
const Ext = ".sav"

type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

type Bridge struct {
	fs  FS
	log Logger
}

func New(fsys FS, logger Logger) *Bridge {
	return &Bridge{fs: fsys, log: logger}
}

// FileName is the stored name for identity.
func FileName(identity string) string { return identity + Ext }

// Load returns the stored blob for identity. A missing or unreadable save is
// not an error: the result is then expected zero bytes. A stored blob of a
// different size is returned as it is; the core decides what to do with it.
func (b *Bridge) Load(identity string, expected int) []byte {
	name := FileName(identity)
	data, err := b.read(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b.log.Info("no save file", "name", name)
		} else {
			b.log.Warn("save file unreadable, starting blank", "name", name, "err", err)
		}
		return make([]byte, expected)
	}
	if len(data) != expected {
		b.log.Debug("save size differs from cartridge RAM", "name", name, "size", len(data), "expected", expected)
	}
	b.log.Info("loaded save", "name", name, "size", len(data))
	return data
}

func (b *Bridge) read(name string) ([]byte, error) {
	st, err := b.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	f, err := b.fs.Open(name, Read)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, st.Size)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// Save overwrites the stored blob for identity. It is attempted once; any
// failure is returned and callers treat it as fatal.
func (b *Bridge) Save(identity string, blob []byte) error {
	name := FileName(identity)
	f, err := b.fs.Open(name, Write)
	if err != nil {
		return fmt.Errorf("savebridge: open %s: %w", name, err)
	}
	n, err := f.Write(blob)
	if err == nil && n < len(blob) {
		err = io.ErrShortWrite
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("savebridge: write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("savebridge: close %s: %w", name, err)
	}
	b.log.Info("saved", "name", name, "size", len(blob))
	return nil
}
