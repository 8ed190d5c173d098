package gar

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

// FileSource resolves extracted GAR XML files for a table under a local
// directory. Per-region tables live in numbered subdirectories of the
// dump; dictionaries live at the root.
type FileSource struct {
	dir    string
	region string
}

// NewFileSource creates a FileSource over dir. A non-empty region
// restricts per-region tables to that subdirectory.
func NewFileSource(dir, region string) *FileSource {
	return &FileSource{dir: dir, region: region}
}

// Files returns the sorted XML file paths feeding the table. It is an
// error for a table to have no source files.
func (s *FileSource) Files(table Table) ([]string, error) {
	dirs := []string{s.dir}
	if table.PerRegion {
		dirs, _ = s.regionDirs()
	}

	// AS_ADDR_OBJ must not match AS_ADDR_OBJ_TYPES files, so the prefix
	// is anchored to the date segment of the file name.
	pattern, err := regexp.Compile(fmt.Sprintf(`^%s_\d{8}_.*\.(XML|xml)$`, regexp.QuoteMeta(table.FilePrefix)))
	if err != nil {
		return nil, err
	}

	var out []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if pattern.MatchString(e.Name()) {
				out = append(out, filepath.Join(dir, e.Name()))
			}
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no source file for table %s under %s", table.Name, s.dir)
	}
	sort.Strings(out)
	return out, nil
}

// regionDirs lists the subdirectories holding per-region files.
func (s *FileSource) regionDirs() ([]string, error) {
	if s.region != "" {
		return []string{filepath.Join(s.dir, s.region)}, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(s.dir, e.Name()))
		}
	}
	return out, nil
}
