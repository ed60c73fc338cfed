package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store is the file storage boundary: submissions upload into it and
// receive back a public URL to persist in the response record.
type Store interface {
	Upload(path string, r io.Reader) (url string, err error)
	PublicURL(path string) string
	Remove(path string) error
}

// Disk stores uploads under a local directory served at BaseURL.
type Disk struct {
	Root    string
	BaseURL string
}

func NewDisk(root, baseURL string) *Disk {
	return &Disk{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (d *Disk) Upload(p string, r io.Reader) (string, error) {
	full, err := d.resolve(p)
	if err != nil {
		return "", err
	}

	err = os.MkdirAll(filepath.Dir(full), 0o755)
	if err != nil {
		return "", err
	}

	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	if err != nil {
		os.Remove(full)
		return "", err
	}
	return d.PublicURL(p), nil
}

func (d *Disk) PublicURL(p string) string {
	return d.BaseURL + "/" + strings.TrimLeft(path.Clean(p), "/")
}

func (d *Disk) Remove(p string) error {
	full, err := d.resolve(p)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

// resolve rejects paths that would escape the upload root.
func (d *Disk) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.HasPrefix(clean, "/..") {
		return "", fmt.Errorf("invalid upload path %q", p)
	}
	return filepath.Join(d.Root, filepath.FromSlash(clean)), nil
}
