package completers

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableCompleter lists command names from an ordered search path plus
// the current working directory. Subdirectories found in search-path
// directories are excluded (directories on PATH are noise for command
// completion), but subdirectories of the working directory are offered so
// that ./subdir invocations complete.
type ExecutableCompleter struct {
	// SearchPath returns the ordered list of directories to scan.
	SearchPath func() []string
	// Pwd returns the current working directory.
	Pwd func() string

	List         ListDirFunc
	IsExecutable func(path string) bool
	IsReadable   func(path string) bool
}

// NewExecutableCompleter creates an ExecutableCompleter wired to the real
// filesystem, $PATH and the process working directory.
func NewExecutableCompleter() *ExecutableCompleter {
	return &ExecutableCompleter{
		SearchPath: func() []string {
			return filepath.SplitList(os.Getenv("PATH"))
		},
		Pwd: func() string {
			pwd, err := os.Getwd()
			if err != nil {
				return "."
			}
			return pwd
		},
		List:         OSListDir,
		IsExecutable: OSIsExecutable,
		IsReadable:   OSIsReadable,
	}
}

// Complete returns command-name candidates whose prefix matches stub. With
// force set, the executability predicate is relaxed to a readability check.
// Inaccessible directories are skipped silently.
func (c *ExecutableCompleter) Complete(stub string, ignoreCase, force bool) []string {
	var out []string

	for _, dir := range c.SearchPath() {
		entries, err := c.List(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir {
				continue
			}
			if !matchesPrefix(entry.Name, stub, ignoreCase) || hiddenEntry(entry.Name, stub) {
				continue
			}
			if c.allowed(filepath.Join(dir, entry.Name), force) {
				out = append(out, entry.Name)
			}
		}
	}

	// Working-directory pass: the one place where directories are
	// legitimate command candidates.
	pwd := c.Pwd()
	entries, err := c.List(pwd)
	if err != nil {
		return out
	}
	for _, entry := range entries {
		if !matchesPrefix(entry.Name, stub, ignoreCase) || hiddenEntry(entry.Name, stub) {
			continue
		}
		if entry.IsDir {
			out = append(out, entry.Name)
			continue
		}
		if c.allowed(filepath.Join(pwd, entry.Name), force) {
			out = append(out, entry.Name)
		}
	}
	return out
}

// IsPathStub reports whether stub refers to an explicit path rather than a
// bare command name.
func IsPathStub(stub string) bool {
	return strings.HasPrefix(stub, "/") ||
		strings.HasPrefix(stub, "./") ||
		strings.HasPrefix(stub, "../") ||
		strings.HasPrefix(stub, "~/") ||
		strings.Contains(stub, "/")
}

// CompletePath returns executable candidates for a path-shaped stub such as
// ./scripts/bu or /usr/local/bin/fo.
func (c *ExecutableCompleter) CompletePath(stub string, ignoreCase, force bool) []string {
	dir, base := splitStubPath(stub)
	entries, err := c.List(resolveDir(dir, c.Pwd()))
	if err != nil {
		return nil
	}

	var out []string
	for _, entry := range entries {
		if !matchesPrefix(entry.Name, base, ignoreCase) || hiddenEntry(entry.Name, base) {
			continue
		}
		if entry.IsDir {
			out = append(out, dir+entry.Name+"/")
			continue
		}
		if c.allowed(filepath.Join(resolveDir(dir, c.Pwd()), entry.Name), force) {
			out = append(out, dir+entry.Name)
		}
	}
	return out
}

func (c *ExecutableCompleter) allowed(path string, force bool) bool {
	if force {
		return c.IsReadable(path)
	}
	return c.IsExecutable(path)
}
