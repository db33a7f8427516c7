package decode

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

var videoExts = []string{".mp4", ".mov", ".mkv", ".avi", ".m4v", ".webm"}

// IsVideoFile reports whether name has a known video container extension.
func IsVideoFile(name string) bool {
	return slices.Contains(videoExts, strings.ToLower(filepath.Ext(name)))
}

// FindVideos lists the video files in dir in lexical order. Subdirectories
// are descended only when recursive is set.
func FindVideos(dir string, recursive bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if IsVideoFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
