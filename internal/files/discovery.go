package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"housingdata/pkg/contracts/domain"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// DatasetStatus reports whether a catalog entry's backing file is present
type DatasetStatus struct {
	Spec    domain.DatasetSpec
	Path    string
	Present bool
}

// Discovery provides file discovery operations inside a data directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExcelFiles finds all Excel workbooks in the data directory
func (d *Discovery) FindExcelFiles() ([]FileInfo, error) {
	return d.findByExtension(".xlsx", ".xlsm")
}

// FindCSVFiles finds all CSV files in the data directory
func (d *Discovery) FindCSVFiles() ([]FileInfo, error) {
	return d.findByExtension(".csv")
}

// findByExtension lists regular files with one of the given extensions,
// sorted by name. Excel lock files ("~$...") are skipped.
func (d *Discovery) findByExtension(exts ...string) ([]FileInfo, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.basePath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}

		name := entry.Name()
		if !hasExtension(name, exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(d.basePath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// AvailableDatasets checks every catalog entry against the data directory
func (d *Discovery) AvailableDatasets() []DatasetStatus {
	statuses := make([]DatasetStatus, 0, len(domain.Catalog))
	for _, spec := range domain.Catalog {
		path := filepath.Join(d.basePath, spec.FileName())
		info, err := os.Stat(path)
		statuses = append(statuses, DatasetStatus{
			Spec:    spec,
			Path:    path,
			Present: err == nil && !info.IsDir(),
		})
	}
	return statuses
}

// PresentDatasets returns the names of catalog entries whose file exists
func (d *Discovery) PresentDatasets() []string {
	var names []string
	for _, status := range d.AvailableDatasets() {
		if status.Present {
			names = append(names, status.Spec.Name)
		}
	}
	return names
}

func hasExtension(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
