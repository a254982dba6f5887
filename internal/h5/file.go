package h5

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scigolib/hdf5"
)

// signature is the 8-byte HDF5 format signature at offset 0.
const signature = "\x89HDF\r\n\x1a\n"

// File represents an open HDF5 container.
type File struct {
	name   string
	root   Group
	closer func() error
	closed bool
}

// NewFile wraps an already loaded container tree. closer is called once by
// Close and may be nil.
func NewFile(name string, root Group, closer func() error) *File {
	return &File{
		name:   name,
		root:   root,
		closer: closer,
	}
}

// Open opens an HDF5 file for reading.
func Open(path string) (*File, error) {
	if err := checkSignature(path); err != nil {
		return nil, err
	}

	hf, err := hdf5.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	f := &File{name: path, closer: hf.Close}
	f.root = &sgGroup{file: f, g: hf.Root()}
	return f, nil
}

// OpenStream copies r into a private temporary file and opens it. The
// temporary file is removed when the returned File is closed.
func OpenStream(r io.Reader) (*File, error) {
	tmp, err := os.CreateTemp("", "granule-*.h5")
	if err != nil {
		return nil, fmt.Errorf("creating spool file: %w", err)
	}
	tmpPath := tmp.Name()

	_, err = io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("spooling stream: %w", err)
	}

	f, err := Open(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	f.name = streamName(r)
	closeFile := f.closer
	f.closer = func() error {
		err := closeFile()
		if rerr := os.Remove(tmpPath); err == nil {
			err = rerr
		}
		return err
	}
	return f, nil
}

// streamName returns the name of r if it carries one (for example an
// *os.File), or "<stream>".
func streamName(r io.Reader) string {
	if n, ok := r.(interface{ Name() string }); ok && n.Name() != "" {
		return n.Name()
	}
	return "<stream>"
}

func checkSignature(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	buf := make([]byte, len(signature))
	if _, err := io.ReadFull(f, buf); err != nil || string(buf) != signature {
		return fmt.Errorf("%s: %w", path, ErrNotHDF5)
	}
	return nil
}

// Close releases the container. It is safe to call Close more than once.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.closer == nil {
		return nil
	}
	return f.closer()
}

// Closed returns true once Close has been called.
func (f *File) Closed() bool {
	return f.closed
}

// Name returns the path the file was opened from.
func (f *File) Name() string {
	return f.name
}

// Root returns the root group of the file.
func (f *File) Root() (Group, error) {
	if f.closed {
		return nil, ErrClosed
	}
	return f.root, nil
}

// OpenGroupPath opens a group by slash separated path relative to g.
func OpenGroupPath(g Group, path string) (Group, error) {
	current := g
	for _, name := range splitPath(path) {
		next, err := current.OpenGroup(name)
		if err != nil {
			return nil, fmt.Errorf("opening group %q: %w", path, err)
		}
		current = next
	}
	return current, nil
}

// OpenDatasetPath opens a dataset by slash separated path relative to g.
func OpenDatasetPath(g Group, path string) (Dataset, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, ErrNotDataset
	}

	parent, err := OpenGroupPath(g, strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return nil, err
	}

	ds, err := parent.OpenDataset(parts[len(parts)-1])
	if err != nil {
		return nil, fmt.Errorf("opening dataset %q: %w", path, err)
	}
	return ds, nil
}

// Exists reports whether path names a member below g. A missing link or an
// intermediate component that is not a group both report false.
func Exists(g Group, path string) (bool, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return true, nil
	}

	parent, err := OpenGroupPath(g, strings.Join(parts[:len(parts)-1], "/"))
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotGroup) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return HasMember(parent, parts[len(parts)-1])
}

// HasMember returns true if g has a direct child called name.
func HasMember(g Group, name string) (bool, error) {
	members, err := g.Members()
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m == name {
			return true, nil
		}
	}
	return false, nil
}

// splitPath splits a path into its components.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
