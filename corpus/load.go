package corpus

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/exp/slices"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/schema"
)

// scriptDoc is the on-disk shape of one corpus script file: the name of
// the schema interface its tree is rooted at, plus the value tree itself
// in gtype.DecodeValue's wire format.
type scriptDoc struct {
	Root  string          `json:"root"`
	Value json.RawMessage `json:"value"`
}

// LoadSchema reads and decodes a single schema document from fs.
func LoadSchema(fs afero.Fs, path string) (*schema.Schema, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading schema %s: %w", path, err)
	}
	s, err := schema.DecodeSchema(data)
	if err != nil {
		return nil, fmt.Errorf("corpus: decoding schema %s: %w", path, err)
	}
	return s, nil
}

// SchemaFileName is the reserved name LoadScripts skips when scanning
// --script-dir for script files: the schema document itself lives
// alongside the scripts it types, loaded separately via LoadSchema.
const SchemaFileName = "schema.json"

// LoadScripts reads every "*.json" file directly under dir other than
// SchemaFileName (sorted by name, for deterministic corpus ordering) and
// decodes each into a Script rooted at s.
func LoadScripts(fs afero.Fs, s *schema.Schema, dir string) ([]Script, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("corpus: reading script dir %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") || e.Name() == SchemaFileName {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)

	scripts := make([]Script, 0, len(names))
	for _, name := range names {
		script, err := loadScript(fs, s, filepath.Join(dir, name), name)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, script)
	}
	return scripts, nil
}

func loadScript(fs afero.Fs, s *schema.Schema, path, name string) (Script, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Script{}, fmt.Errorf("corpus: reading script %s: %w", path, err)
	}
	var doc scriptDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Script{}, fmt.Errorf("corpus: decoding script %s: %w", path, err)
	}
	rootTy, err := s.GetDecl(gtype.TypeName(doc.Root))
	if err != nil {
		return Script{}, fmt.Errorf("corpus: script %s: %w", path, err)
	}
	root, err := s.Flatten(s.Registry.MakeIface(rootTy.Name()))
	if err != nil {
		return Script{}, fmt.Errorf("corpus: script %s: flatten root %q: %w", path, doc.Root, err)
	}
	value, err := gtype.DecodeValue(doc.Value)
	if err != nil {
		return Script{}, fmt.Errorf("corpus: script %s: %w", path, err)
	}
	return Script{Name: name, Root: root, Tree: value}, nil
}
