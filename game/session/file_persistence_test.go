package session

import (
	"errors"
	"testing"

	"github.com/blackbox-arcade/blackbox/game/engine"
	"github.com/blackbox-arcade/blackbox/game/service"
)

// stubConfigManager serves a single fixed configuration.
type stubConfigManager struct {
	config *engine.GameConfig
}

func (s *stubConfigManager) LoadConfig(name string) (*engine.GameConfig, error) {
	return s.config, nil
}

func (s *stubConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	return []*service.ConfigInfo{{
		Filename: "classic.json",
		ConfigID: "classic",
		Name:     s.config.Name,
		GridSize: s.config.GridSize,
	}}, nil
}

func (s *stubConfigManager) GetDefault() *engine.GameConfig {
	return s.config
}

func (s *stubConfigManager) SaveConfig(name string, config *engine.GameConfig) error {
	return nil
}

func newTestPersistence(t *testing.T) *FilePersistence {
	t.Helper()
	fp, err := NewFilePersistence(t.TempDir(), &stubConfigManager{config: createTestConfig()})
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}
	return fp
}

func TestFilePersistence_SaveLoadRoundTrip(t *testing.T) {
	fp := newTestPersistence(t)
	manager := NewManagerWithPersistence(fp)

	session, err := manager.Create("round-trip", createTestConfig(), false)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Play a little so the persisted state is non-trivial
	if _, err := session.Engine.FireRay(engine.Position{X: -1, Y: 0}, engine.DirRight); err != nil {
		t.Fatalf("FireRay failed: %v", err)
	}
	if _, err := session.Engine.ToggleGuess(engine.Position{X: 2, Y: 2}); err != nil {
		t.Fatalf("ToggleGuess failed: %v", err)
	}
	if err := manager.Save("round-trip"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fp.Load("round-trip")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	original := session.Engine.GetState()
	restored := loaded.Engine.GetState()

	if restored.Score != original.Score {
		t.Errorf("Expected restored score %d, got %d", original.Score, restored.Score)
	}
	if restored.TotalRays != original.TotalRays {
		t.Errorf("Expected restored total rays %d, got %d", original.TotalRays, restored.TotalRays)
	}
	if len(restored.Atoms) != len(original.Atoms) {
		t.Fatalf("Expected %d restored atoms, got %d", len(original.Atoms), len(restored.Atoms))
	}
	for i, atom := range original.Atoms {
		if restored.Atoms[i] != atom {
			t.Errorf("Atom %d mismatch: %v vs %v", i, restored.Atoms[i], atom)
		}
	}
	if len(restored.Guesses) != 1 || restored.Guesses[0] != (engine.Position{X: 2, Y: 2}) {
		t.Errorf("Expected restored guess at (2,2), got %v", restored.Guesses)
	}
	if len(restored.Rays) != 1 {
		t.Errorf("Expected 1 restored ray, got %d", len(restored.Rays))
	}
}

func TestFilePersistence_LoadMissing(t *testing.T) {
	fp := newTestPersistence(t)

	_, err := fp.Load("missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistence_Delete(t *testing.T) {
	fp := newTestPersistence(t)
	manager := NewManagerWithPersistence(fp)

	if _, err := manager.Create("transient", createTestConfig(), false); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	if !fp.Exists("transient") {
		t.Fatal("Expected session file after creation")
	}

	if err := fp.Delete("transient"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("transient") {
		t.Error("Expected session file to be removed")
	}

	if err := fp.Delete("transient"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestManager_LoadPersistedSessions(t *testing.T) {
	fp := newTestPersistence(t)
	first := NewManagerWithPersistence(fp)

	for _, id := range []string{"s1", "s2", "s3"} {
		if _, err := first.Create(id, createTestConfig(), false); err != nil {
			t.Fatalf("Failed to create session %s: %v", id, err)
		}
	}
	if err := first.SaveAllSessions(); err != nil {
		t.Fatalf("SaveAllSessions failed: %v", err)
	}

	// A fresh manager over the same directory sees the saved sessions
	second := NewManagerWithPersistence(fp)
	if err := second.LoadPersistedSessions(); err != nil {
		t.Fatalf("LoadPersistedSessions failed: %v", err)
	}
	if second.Count() != 3 {
		t.Errorf("Expected 3 restored sessions, got %d", second.Count())
	}
	if _, err := second.Get("s2"); err != nil {
		t.Errorf("Expected restored session s2: %v", err)
	}
}
