package corpus

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// WritableSentinel is the file whose presence marks a result-dir file store
// as writable; its absence means every write must fail rather than
// silently no-op.
const WritableSentinel = "WRITABLE"

// ErrCorpusArtifactMissing covers an absent or malformed JSON artifact:
// the store couldn't find, open, or unmarshal the file asked for.
var ErrCorpusArtifactMissing = fmt.Errorf("corpus: artifact missing")

// ErrStoreReadOnly is returned by any write attempted against a store
// backed by a directory with no WRITABLE sentinel.
var ErrStoreReadOnly = fmt.Errorf("corpus: store is read-only")

// Store is the JSON artifact file store backing --result-dir (or
// --script-dir for input reads), wrapping an afero.Fs so tests can swap in
// an in-memory filesystem without touching disk.
type Store struct {
	fs       afero.Fs
	root     string
	writable bool
}

// OpenStore opens root on fs and checks for the WRITABLE sentinel. The
// store is usable for reads regardless; Write* methods fail with
// ErrStoreReadOnly if the sentinel is absent.
func OpenStore(fs afero.Fs, root string) (*Store, error) {
	writable := false
	if ok, err := afero.Exists(fs, path.Join(root, WritableSentinel)); err == nil && ok {
		writable = true
	}
	return &Store{fs: fs, root: root, writable: writable}, nil
}

// Writable reports whether this store accepts writes.
func (s *Store) Writable() bool { return s.writable }

// ReadJSON reads and unmarshals the JSON artifact at the given
// root-relative path into v.
func (s *Store) ReadJSON(relPath string, v interface{}) error {
	full := path.Join(s.root, relPath)
	data, err := afero.ReadFile(s.fs, full)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorpusArtifactMissing, full, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorpusArtifactMissing, full, err)
	}
	return nil
}

// WriteJSON marshals v and writes it to the given root-relative path,
// creating any intermediate directories. Fails if the store is read-only.
func (s *Store) WriteJSON(relPath string, v interface{}) error {
	if !s.writable {
		return fmt.Errorf("%w: %s", ErrStoreReadOnly, s.root)
	}
	full := path.Join(s.root, relPath)
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return fmt.Errorf("corpus: mkdir for %s: %w", full, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("corpus: marshal %s: %w", full, err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return fmt.Errorf("corpus: write %s: %w", full, err)
	}
	return nil
}

// WriteRaw writes raw bytes (an entropy-coded payload, not JSON) to the
// given root-relative path.
func (s *Store) WriteRaw(relPath string, data []byte) error {
	if !s.writable {
		return fmt.Errorf("%w: %s", ErrStoreReadOnly, s.root)
	}
	full := path.Join(s.root, relPath)
	if err := s.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return fmt.Errorf("corpus: mkdir for %s: %w", full, err)
	}
	if err := afero.WriteFile(s.fs, full, data, 0o644); err != nil {
		return fmt.Errorf("corpus: write %s: %w", full, err)
	}
	return nil
}

// PathSuffixArtifactPath returns the root-relative path for a given
// suffix length's aggregate artifact.
func PathSuffixArtifactPath(length int) string {
	return fmt.Sprintf("path-suffix/%d/ALL.json", length)
}

// StringWindowArtifactPath returns the root-relative path for a given
// window size's aggregate artifact.
func StringWindowArtifactPath(size int) string {
	return fmt.Sprintf("string-window/%d/ALL.json", size)
}

// GlobalStringsArtifactPath is the root-relative path for the global
// dictionary aggregate artifact.
const GlobalStringsArtifactPath = "global-strings/ALL.json"
