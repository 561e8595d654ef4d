package corpus

import (
	"testing"

	"github.com/spf13/afero"
)

const loadTestSchemaJSON = `{
	"ifaces": [
		{"name": "Program", "isNode": true, "fields": [
			{"name": "value", "type": {"kind": "primitive", "primitive": "Int"}}
		]}
	]
}`

func TestLoadSchemaAndScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/in/schema.json", []byte(loadTestSchemaJSON), 0o644); err != nil {
		t.Fatalf("seed schema: %v", err)
	}
	scriptA := `{"root": "Program", "value": {"kind": "instance", "type": "Program", "fields": {
		"value": {"kind": "int", "value": 1}
	}}}`
	scriptB := `{"root": "Program", "value": {"kind": "instance", "type": "Program", "fields": {
		"value": {"kind": "int", "value": 2}
	}}}`
	if err := afero.WriteFile(fs, "/in/scripts/a.json", []byte(scriptA), 0o644); err != nil {
		t.Fatalf("seed script a: %v", err)
	}
	if err := afero.WriteFile(fs, "/in/scripts/b.json", []byte(scriptB), 0o644); err != nil {
		t.Fatalf("seed script b: %v", err)
	}

	s, err := LoadSchema(fs, "/in/schema.json")
	if err != nil {
		t.Fatalf("LoadSchema: %v", err)
	}
	scripts, err := LoadScripts(fs, s, "/in/scripts")
	if err != nil {
		t.Fatalf("LoadScripts: %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("len(scripts) = %d, want 2", len(scripts))
	}
	if scripts[0].Name != "a.json" || scripts[1].Name != "b.json" {
		t.Errorf("script order = [%s %s], want [a.json b.json]", scripts[0].Name, scripts[1].Name)
	}
	for _, sc := range scripts {
		if sc.Tree.Kind().String() != "instance" {
			t.Errorf("%s: Tree.Kind() = %v, want instance", sc.Name, sc.Tree.Kind())
		}
	}
}
