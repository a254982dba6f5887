package atl06

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/robert-malhotra/go-icesat2/internal/h5"
)

// File is an open granule container.
type File struct {
	hf *h5.File
}

// openFile is swapped in tests to observe handles opened from paths.
var openFile = h5.Open

// Open opens a granule for reading. A leading "~" is expanded to the
// user's home directory and the path is made absolute first.
func Open(path string) (*File, error) {
	abs, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	f, err := openFile(abs)
	if err != nil {
		return nil, err
	}
	return &File{hf: f}, nil
}

// OpenStream opens a granule from a byte stream, such as an HTTP or S3
// response body. The stream is read to the end; r is not closed.
func OpenStream(r io.Reader) (*File, error) {
	f, err := h5.OpenStream(r)
	if err != nil {
		return nil, err
	}
	return &File{hf: f}, nil
}

// Close releases the container. It is safe to call Close more than once.
func (f *File) Close() error {
	return f.hf.Close()
}

// Closed returns true once Close has been called.
func (f *File) Closed() bool {
	return f.hf.Closed()
}

// Name returns the path the granule was opened from.
func (f *File) Name() string {
	return f.hf.Name()
}

// resolvePath expands a leading "~" and makes p absolute.
func resolvePath(p string) (string, error) {
	if p == "" {
		return "", errors.New("empty path")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", p, err)
		}
		p = filepath.Join(home, p[1:])
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return abs, nil
}

// Source names the granule a read works on. Sources built with FromPath
// and FromStream are owned: the read opens them and closes them again.
// FromFile borrows a handle the caller already holds.
type Source struct {
	path   string
	stream io.Reader
	file   *File
}

// FromPath reads the granule at path.
func FromPath(path string) Source {
	return Source{path: path}
}

// FromStream reads the granule from r.
func FromStream(r io.Reader) Source {
	return Source{stream: r}
}

// FromFile reads from an already open handle.
func FromFile(f *File) Source {
	return Source{file: f}
}

// open returns the handle to read from and whether the read owns it.
func (s Source) open() (*File, bool, error) {
	switch {
	case s.file != nil:
		if s.file.Closed() {
			return nil, false, ErrClosed
		}
		return s.file, false, nil
	case s.stream != nil:
		f, err := OpenStream(s.stream)
		return f, true, err
	default:
		f, err := Open(s.path)
		return f, true, err
	}
}

// release applies the ownership rules once a read is done: owned handles
// close unless kept, borrowed handles stay open unless WithClose was given.
// WithKeepOpen wins over WithClose. Failed reads never keep an owned handle.
func release(f *File, owned bool, o *options, err error) error {
	if o.keep != nil && err == nil {
		*o.keep = f
		return nil
	}

	if owned || o.close {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", f.Name(), cerr)
		}
	}
	return err
}
