package constellation

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/iburimskiy/hand-constellation/internal/geom"
)

//go:embed data/*.json
var embeddedTemplates embed.FS

// DefaultName is the template used when none is configured.
const DefaultName = "heart"

type templateFile struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

// LoadEmbedded loads a template shipped with the binary.
func LoadEmbedded(name string) (Template, error) {
	data, err := embeddedTemplates.ReadFile(fmt.Sprintf("data/%s.json", name))
	if err != nil {
		return Template{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return parseTemplateJSON(name, data)
}

// LoadFromFile loads a custom template from a JSON file on disk. The file name
// is used when the document has no name.
func LoadFromFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read template file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parseTemplateJSON(name, data)
}

// Load resolves nameOrPath: a path to a .json file is read from disk,
// anything else is looked up among the embedded templates.
func Load(nameOrPath string) (Template, error) {
	if strings.HasSuffix(nameOrPath, ".json") {
		return LoadFromFile(nameOrPath)
	}
	return LoadEmbedded(nameOrPath)
}

// ListEmbedded returns the names of all embedded templates.
func ListEmbedded() ([]string, error) {
	entries, err := embeddedTemplates.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return names, nil
}

func parseTemplateJSON(name string, data []byte) (Template, error) {
	var f templateFile
	if err := json.Unmarshal(data, &f); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	if len(f.Points) == 0 {
		return Template{}, fmt.Errorf("%w: %q has no points", ErrInvalidTemplate, name)
	}
	if f.Name == "" {
		f.Name = name
	}

	t := Template{Name: f.Name, Points: make([]geom.Point2D, len(f.Points))}
	for i, p := range f.Points {
		if math.Abs(p[0]) > 1 || math.Abs(p[1]) > 1 {
			return Template{}, fmt.Errorf("%w: point %d (%v, %v) outside [-1,1]", ErrInvalidTemplate, i, p[0], p[1])
		}
		t.Points[i] = geom.Point2D{X: p[0], Y: p[1]}
	}
	return t, nil
}
