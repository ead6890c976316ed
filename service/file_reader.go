package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/jarscn/domain"
)

// FileReaderImpl implements the JarFileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectJarFiles expands the given paths into jar files. Regular files are
// passed through unchanged so the caller can validate their extension;
// directories are searched for *.jar, recursively when asked.
func (f *FileReaderImpl) CollectJarFiles(paths []string, recursive bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, recursive)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	return files, nil
}

// IsValidJarFile checks the .jar extension, case-insensitively
func (f *FileReaderImpl) IsValidJarFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), domain.JarExtension)
}

// FileExists checks if a regular file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// collectFromDirectory finds jars below dirPath, skipping hidden directories
func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool) ([]string, error) {
	pattern := "*" + domain.JarExtension
	if recursive {
		pattern = domain.DefaultJarDiscoveryPattern
	}

	var files []string
	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped
			return nil
		}

		if d.IsDir() {
			if path == dirPath {
				return nil
			}
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dirPath, path)
		if err != nil {
			return nil
		}
		// Extensions match case-insensitively
		if matched, _ := doublestar.Match(pattern, strings.ToLower(filepath.ToSlash(rel))); matched {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	sort.Strings(files)
	return files, nil
}

// ValidatePaths validates that all provided paths exist and are accessible
func (f *FileReaderImpl) ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return domain.NewFileNotFoundError(path, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}
	}
	return nil
}
