package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var PrefabsFS embed.FS

// DiskDir is checked before the embedded copy, relative to the working
// directory. Files there win so hot reload can pick up edits.
var DiskDir = "prefabs"

// Load reads a prefab spec by base name ("player.yaml" or
// "prefabs/player.yaml").
func Load(name string) ([]byte, error) {
	return read(cleanPrefabPath(name))
}

// LoadScript reads a script by name; a bare name resolves under scripts/.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

func read(clean string) ([]byte, error) {
	if clean == "" {
		return nil, fs.ErrNotExist
	}
	if DiskDir != "" {
		if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "prefabs/")
	return path.Clean(s)
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return path.Join("scripts", s)
}
