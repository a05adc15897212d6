package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/panbanda/waypoint/pkg/models"
)

// CountLines returns the number of lines in content. A trailing
// newline does not start a new line and empty content has zero lines.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// ReadRecords loads the given files into records with paths relative to root.
// Unreadable files and files above the configured size limit are skipped.
func (s *Scanner) ReadRecords(root string, paths []string) []models.FileRecord {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}
	if resolved, err := filepath.EvalSymlinks(absRoot); err == nil {
		absRoot = resolved
	}

	records := make([]models.FileRecord, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			s.logger.Debug("stat failed", "path", path, "error", err)
			continue
		}
		if limit := s.config.Scan.MaxFileSize; limit > 0 && info.Size() > limit {
			s.logger.Debug("file above size limit", "path", path, "size", info.Size(), "limit", limit)
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Debug("read failed", "path", path, "error", err)
			continue
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			rel = path
		}
		content := string(data)
		records = append(records, models.FileRecord{
			Path:    filepath.ToSlash(rel),
			Content: content,
			Size:    info.Size(),
			Lines:   CountLines(content),
			Ext:     strings.ToLower(filepath.Ext(path)),
		})
	}
	return records
}
