package extl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

type Component struct {
	// Name of the component, unique within an engine.
	Name string `json:"name"`
	// Version of the component.
	Version string `json:"version"`
	// Description of the component.
	Description string `json:"description"`
	// Matches is the list of CSS selectors of the elements the component
	// is mounted on. Defaults to [data-mount~="<name>"].
	Matches []string `json:"matches"`
	// main file for the component (default: main.js)
	Entrypoint string `json:"entrypoint,omitempty"`
	// component directory on the engine filesystem
	dir string
}

// OpenComponent reads the manifest of the component stored in dir.
func OpenComponent(fsys afero.Fs, dir string) (*Component, error) {
	manifestPath := path.Join(dir, MANIFEST_FILE)
	file, err := fsys.Open(manifestPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrInvalidComponent
		}
		return nil, err
	}
	defer file.Close()
	var c = Component{
		dir: strings.TrimSuffix(dir, "/"),
	}
	err = json.NewDecoder(file).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}
	if c.Name == "" {
		return nil, fmt.Errorf("%s: %w: missing name", manifestPath, ErrInvalidComponent)
	}
	if c.Entrypoint == "" {
		c.Entrypoint = DEF_COMPONENT_ENTRY
	}
	if len(c.Matches) == 0 {
		c.Matches = []string{fmt.Sprintf(`[data-mount~=%q]`, c.Name)}
	}
	ok, err := afero.Exists(fsys, path.Join(c.dir, c.Entrypoint))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEntrypointNotFound
	}
	return &c, nil
}

// modulePath is the path handed to require, relative to the engine root.
// Components are direct children of the root, so only the base of the
// directory is kept.
func (c *Component) modulePath() string {
	return "./" + path.Join(path.Base(c.dir), c.Entrypoint)
}
