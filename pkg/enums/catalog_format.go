package enums

import (
	"fmt"
	"path/filepath"
	"strings"
)

// CatalogFormat names a catalog file serialization.
type CatalogFormat string

const (
	CatalogFormatPipe CatalogFormat = "pipe"
	CatalogFormatJSON CatalogFormat = "json"
	CatalogFormatCSV  CatalogFormat = "csv"
	CatalogFormatYAML CatalogFormat = "yaml"
)

func (f CatalogFormat) String() string {
	return string(f)
}

func (f CatalogFormat) IsValid() bool {
	switch f {
	case CatalogFormatPipe, CatalogFormatJSON, CatalogFormatCSV, CatalogFormatYAML:
		return true
	}
	return false
}

func ParseCatalogFormat(value string) (CatalogFormat, error) {
	format := CatalogFormat(strings.ToLower(strings.TrimSpace(value)))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid catalog format: %q", value)
	}
	return format, nil
}

// CatalogFormatForPath maps a file extension to its format. The .txt
// extension keeps the pipe-delimited layout of the original register
// files.
func CatalogFormatForPath(path string) (CatalogFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return CatalogFormatPipe, nil
	case ".json":
		return CatalogFormatJSON, nil
	case ".csv":
		return CatalogFormatCSV, nil
	case ".yaml", ".yml":
		return CatalogFormatYAML, nil
	default:
		return "", fmt.Errorf("no catalog format for path %q", path)
	}
}
