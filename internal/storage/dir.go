// Package storage provides the filesystem collaborators the save bridge and
// ROM loader read and write through: a plain directory, or a SQLite
// database holding the same named blobs.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/FabianRolfMatthiasNoll/monoboy/internal/savebridge"
)

// Dir stores each name as a file directly inside root.
type Dir struct {
	root string
}

// OpenDir creates root if needed.
func OpenDir(root string) (*Dir, error) {
	root, err := expandHome(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", root, err)
	}
	return &Dir{root: root}, nil
}

// Root is the directory backing d.
func (d *Dir) Root() string { return d.root }

func (d *Dir) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("storage: invalid name %q", name)
	}
	return filepath.Join(d.root, name), nil
}

func (d *Dir) Stat(name string) (savebridge.FileInfo, error) {
	p, err := d.path(name)
	if err != nil {
		return savebridge.FileInfo{}, err
	}
	fi, err := os.Stat(p)
	if err != nil {
		return savebridge.FileInfo{}, err
	}
	return savebridge.FileInfo{Name: name, Size: fi.Size()}, nil
}

func (d *Dir) Open(name string, mode savebridge.Mode) (savebridge.File, error) {
	p, err := d.path(name)
	if err != nil {
		return nil, err
	}
	var f *os.File
	if mode == savebridge.Write {
		f, err = os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	} else {
		f, err = os.Open(p)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the stored files whose names end in ext, sorted by name.
func (d *Dir) List(ext string) ([]savebridge.FileInfo, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("storage: list %s: %w", d.root, err)
	}
	var out []savebridge.FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, savebridge.FileInfo{Name: e.Name(), Size: fi.Size()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func expandHome(p string) (string, error) {
	if p == "" || p[0] != '~' {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, p[1:]), nil
}
