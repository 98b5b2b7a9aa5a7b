package cards

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CatalogFileName is the optional catalog extension read from the data directory.
const CatalogFileName = "cards.csv"

func parseListCell(s string) []string {
	s = strings.ReplaceAll(s, "|", "/")
	parts := strings.Split(s, "/")
	out := []string{}
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" && t != "-" {
			out = append(out, t)
		}
	}
	return out
}

// LoadCatalogDir loads dataDir/cards.csv if present. A missing file yields no cards and no error.
func LoadCatalogDir(dataDir string) ([]Card, error) {
	path := filepath.Join(dataDir, CatalogFileName)
	cs, err := LoadCatalogFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return cs, err
}

// LoadCatalogFile reads a CSV with a name,elixir,roles,tags header.
// List cells are separated by "/". Cards without roles are tagged.
func LoadCatalogFile(path string) ([]Card, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	cs, err := ReadCatalogCSV(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cs, nil
}

// ReadCatalogCSV parses catalog rows from r.
func ReadCatalogCSV(r io.Reader) ([]Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("csv header has no name column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	raw := make([]RawCard, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := get(row, "name")
		rc := RawCard{
			Name:  &name,
			Roles: parseListCell(get(row, "roles")),
			Tags:  parseListCell(get(row, "tags")),
		}
		if v, err := strconv.Atoi(get(row, "elixir")); err == nil {
			rc.Elixir = &v
		}
		raw = append(raw, rc)
	}
	return ApplyTags(Normalize(raw)), nil
}
