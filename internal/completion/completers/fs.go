// Package completers provides the individual candidate sources used by the
// completion engine: filesystem executables, named commands, per-command
// argument rules and callable symbols.
package completers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrInaccessible marks a directory that could not be listed. Providers skip
// such directories silently; it never aborts a candidate-generation pass.
var ErrInaccessible = errors.New("directory inaccessible")

// Entry is a single directory entry as seen by a provider.
type Entry struct {
	Name  string
	IsDir bool
}

// ListDirFunc lists the entries of a directory. Implementations report
// unreadable directories by wrapping ErrInaccessible.
type ListDirFunc func(path string) ([]Entry, error)

// OSListDir is the default ListDirFunc backed by os.ReadDir. Entries come
// back in filename order.
func OSListDir(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInaccessible, path)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entries = append(entries, Entry{Name: de.Name(), IsDir: de.IsDir()})
	}
	return entries, nil
}

// OSIsExecutable reports whether path is a regular file with any execute bit
// set.
func OSIsExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0111 != 0
}

// OSIsReadable reports whether path can be opened for reading. Used instead
// of OSIsExecutable when force-execution mode relaxes the predicate.
func OSIsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// matchesPrefix reports whether name completes stub. Case folding applies to
// matching only; candidates keep their original case.
func matchesPrefix(name, stub string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.HasPrefix(strings.ToLower(name), strings.ToLower(stub))
	}
	return strings.HasPrefix(name, stub)
}

// hiddenEntry reports whether name is a dot entry that should stay out of the
// candidates because the stub itself does not start with a dot.
func hiddenEntry(name, stub string) bool {
	return strings.HasPrefix(name, ".") && !strings.HasPrefix(stub, ".")
}

// splitStubPath splits a path-shaped stub into the directory part as typed
// (including a trailing slash) and the basename being completed.
func splitStubPath(stub string) (dir, base string) {
	idx := strings.LastIndex(stub, "/")
	if idx < 0 {
		return "", stub
	}
	return stub[:idx+1], stub[idx+1:]
}

// resolveDir turns the directory part of a stub into an absolute search
// directory relative to pwd.
func resolveDir(dir, pwd string) string {
	switch {
	case dir == "":
		return pwd
	case strings.HasPrefix(dir, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return dir
		}
		return filepath.Join(home, dir[2:])
	case filepath.IsAbs(dir):
		return dir
	default:
		return filepath.Join(pwd, dir)
	}
}
