package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/ofront/internal/config"
	"github.com/funvibe/ofront/internal/pipeline"
)

// HasSourceExt checks if a file has a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ExpandPaths replaces every directory in paths with the source files it
// contains, sorted by name. Subdirectories are not searched. Plain files
// are kept whatever their extension.
func ExpandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && HasSourceExt(e.Name()) {
				files = append(files, filepath.Join(path, e.Name()))
			}
		}
	}
	return files, nil
}

// CollectSources reads every source file named by paths.
func CollectSources(paths []string) ([]pipeline.Source, error) {
	files, err := ExpandPaths(paths)
	if err != nil {
		return nil, err
	}
	sources := make([]pipeline.Source, 0, len(files))
	for _, file := range files {
		code, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		sources = append(sources, pipeline.Source{Path: file, Code: string(code)})
	}
	return sources, nil
}
