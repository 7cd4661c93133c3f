package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// tokenFile persists the current session across process invocations so a
// login in one command is visible to the next.
type tokenFile struct {
	path string
}

// newTokenFile resolves the session file location. An empty path falls back
// to the user config directory.
func newTokenFile(path string) (*tokenFile, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "luxgrid-admin", "session.json")
	}
	return &tokenFile{path: path}, nil
}

// load reads the persisted session. A missing file means no session.
func (f *tokenFile) load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &sess, nil
}

// save writes the session with owner-only permissions.
func (f *tokenFile) save(sess Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// clear removes the persisted session. A missing file is fine.
func (f *tokenFile) clear() {
	_ = os.Remove(f.path)
}
