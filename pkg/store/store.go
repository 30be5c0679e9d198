// Package store keeps named conversation transcripts in a single directory.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	fileExt         = ".json"
	tempPattern     = ".tmp-*"
	defaultName     = "untitled"
	dirPerm         = 0700
	maxSaveAttempts = 16
	// maxNameBytes leaves room for a _<n> suffix and the extension within
	// the usual 255 byte file name limit.
	maxNameBytes = 100
)

// Swapped in tests to simulate I/O failures.
var (
	syncFile = func(f *os.File) error { return f.Sync() }
	linkFile = os.Link
)

// ConversationStore manages `<name>.json` files inside one directory. It
// holds no mutable state and is safe for concurrent use; writes never
// replace an existing conversation.
type ConversationStore struct {
	dir string
}

// New returns a store rooted at dir. The directory is not touched until
// EnsureDirectory or a write.
func New(dir string) *ConversationStore {
	return &ConversationStore{dir: filepath.Clean(dir)}
}

// Dir returns the save directory.
func (s *ConversationStore) Dir() string {
	return s.dir
}

// Path returns the file path a conversation name maps to.
func (s *ConversationStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// EnsureDirectory creates the save directory if needed and checks that it
// can be written to. It is idempotent.
func (s *ConversationStore) EnsureDirectory() error {
	info, err := os.Stat(s.dir)
	switch {
	case err == nil && !info.IsDir():
		return &StorageError{Op: "ensure directory", Path: s.dir, Err: ErrNotDirectory}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return &StorageError{Op: "ensure directory", Path: s.dir, Err: err}
	case err != nil:
		if err := os.MkdirAll(s.dir, dirPerm); err != nil {
			return &StorageError{Op: "ensure directory", Path: s.dir, Err: err}
		}
		slog.Debug("store_directory_created", "dir", s.dir)
	}

	probe, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return &StorageError{Op: "ensure directory", Path: s.dir, Err: fmt.Errorf("directory is not writable: %w", err)}
	}
	probe.Close()
	_ = os.Remove(probe.Name())
	return nil
}

// ListNames returns the stored conversation names, extension stripped,
// sorted lexicographically. Files are not opened, so corrupt conversations
// are listed too.
func (s *ConversationStore) ListNames() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &StorageError{Op: "list", Path: s.dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || strings.HasPrefix(fileName, ".") || !strings.HasSuffix(fileName, fileExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(fileName, fileExt))
	}
	sort.Strings(names)
	return names, nil
}

// NormalizeName turns a user supplied title into a file name: lowercase,
// with every run of non letter/digit characters collapsed into a single
// underscore. The result is cut on a rune boundary at maxNameBytes. Titles
// with nothing usable become "untitled".
func NormalizeName(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			pendingSep = true
			continue
		}
		sep := pendingSep && b.Len() > 0
		size := utf8.RuneLen(r)
		if sep {
			size++
		}
		if b.Len()+size > maxNameBytes {
			break
		}
		if sep {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return defaultName
	}
	return b.String()
}

// UniqueNameFor normalizes candidate and appends _1, _2, ... until the name
// is not taken in the save directory.
func (s *ConversationStore) UniqueNameFor(candidate string) (string, error) {
	base := NormalizeName(candidate)
	name := base
	for n := 1; ; n++ {
		taken, err := s.exists(name)
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d", base, n)
	}
}

// Write stores data under name. The content is written to a temporary file,
// synced, and only then linked into place, so the canonical path either
// does not exist or holds the complete content. An existing conversation is
// never replaced: the write fails with ErrExists instead.
func (s *ConversationStore) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return &StorageError{Op: "write", Name: name, Path: s.dir, Err: err}
	}
	path := s.Path(name)

	f, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return &StorageError{Op: "write", Name: name, Path: path, Err: err}
	}
	tempPath := f.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &StorageError{Op: "write", Name: name, Path: path, Err: err}
	}
	if err := syncFile(f); err != nil {
		f.Close()
		return &StorageError{Op: "write", Name: name, Path: path, Err: fmt.Errorf("sync: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &StorageError{Op: "write", Name: name, Path: path, Err: err}
	}

	if err := commit(tempPath, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &StorageError{Op: "write", Name: name, Path: path, Err: ErrExists}
		}
		return &StorageError{Op: "write", Name: name, Path: path, Err: err}
	}

	slog.Debug("store_write_done", "name", name, "path", path, "bytes", len(data))
	return nil
}

// Save claims a unique name derived from title and writes data under it,
// retrying when another writer takes the name first. It returns the name
// used.
func (s *ConversationStore) Save(title string, data []byte) (string, error) {
	for attempt := 1; attempt <= maxSaveAttempts; attempt++ {
		name, err := s.UniqueNameFor(title)
		if err != nil {
			return "", err
		}
		err = s.Write(name, data)
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, ErrExists) {
			return "", err
		}
		slog.Debug("store_save_name_taken", "name", name, "attempt", attempt)
	}
	return "", &StorageError{Op: "save", Name: NormalizeName(title), Path: s.dir, Err: ErrExists}
}

// Read returns the raw content of a stored conversation. A missing
// conversation yields ErrNotFound; content is not validated here.
func (s *ConversationStore) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, &StorageError{Op: "read", Name: name, Path: s.dir, Err: err}
	}
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StorageError{Op: "read", Name: name, Path: path, Err: ErrNotFound}
		}
		return nil, &StorageError{Op: "read", Name: name, Path: path, Err: err}
	}
	return data, nil
}

// Delete removes a stored conversation and confirms the file is gone.
func (s *ConversationStore) Delete(name string) error {
	if err := validateName(name); err != nil {
		return &StorageError{Op: "delete", Name: name, Path: s.dir, Err: err}
	}
	path := s.Path(name)

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &StorageError{Op: "delete", Name: name, Path: path, Err: ErrNotFound}
		}
		return &StorageError{Op: "delete", Name: name, Path: path, Err: err}
	}
	if info.IsDir() {
		return &StorageError{Op: "delete", Name: name, Path: path, Err: errors.New("is a directory")}
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &StorageError{Op: "delete", Name: name, Path: path, Err: ErrNotFound}
		}
		return &StorageError{Op: "delete", Name: name, Path: path, Err: err}
	}
	if _, err := os.Lstat(path); !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "delete", Name: name, Path: path, Err: errors.New("file still present after removal")}
	}

	slog.Debug("store_delete_done", "name", name, "path", path)
	return nil
}

func (s *ConversationStore) exists(name string) (bool, error) {
	_, err := os.Lstat(s.Path(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, &StorageError{Op: "stat", Name: name, Path: s.Path(name), Err: err}
}

// commit moves the finished temp file to path without replacing an existing
// file. Hard links give that atomically; filesystems without them fall back
// to check-then-rename.
func commit(tempPath, path string) error {
	err := linkFile(tempPath, path)
	if err == nil || errors.Is(err, fs.ErrExist) {
		return err
	}
	slog.Debug("store_link_unsupported", "error", err)
	if _, statErr := os.Lstat(path); statErr == nil {
		return fs.ErrExist
	}
	return os.Rename(tempPath, path)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return ErrInvalidName
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}
	return nil
}
