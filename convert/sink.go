package convert

import (
	"os"
	"path/filepath"
)

// WriteDir writes each document to dir/<base>.<ext> and returns the paths in
// document order. dir is created when missing.
func WriteDir(dir, base string, docs []Document) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, ioIssue(err)
	}
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		p := filepath.Join(dir, base+"."+d.Format.Ext())
		if err := os.WriteFile(p, d.Data, 0o644); err != nil {
			return paths, ioIssue(err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}
