package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/llehouerou/songbrowser/internal/songsort"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	// Every connection to :memory: is a distinct database.
	db.SetMaxOpenConns(1)

	if err := configure(db); err != nil {
		db.Close()
		t.Fatalf("failed to set pragmas: %v", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("query schema_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestGetSettings_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings on empty db, got %+v", s)
	}
}

func TestSaveAndGetSettings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, mode := range songsort.Modes() {
		want := Settings{Sort: songsort.SortState{Mode: mode, Inverted: mode == songsort.Newest}}
		if err := saveSettings(db, want); err != nil {
			t.Fatalf("saveSettings failed: %v", err)
		}

		got, err := getSettings(db)
		if err != nil {
			t.Fatalf("getSettings failed: %v", err)
		}
		if got == nil || *got != want {
			t.Errorf("getSettings() = %+v, want %+v", got, want)
		}
	}
}

func TestGetSettings_UnknownModeFallsBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if _, err := db.Exec(`INSERT INTO browser_settings (id, sort_mode, inverted) VALUES (1, 'difficulty', 1)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := getSettings(db)
	if err != nil {
		t.Fatalf("getSettings failed: %v", err)
	}
	want := Settings{Sort: songsort.SortState{Mode: songsort.Default, Inverted: true}}
	if got == nil || *got != want {
		t.Errorf("getSettings() = %+v, want %+v", got, want)
	}
}

func TestSaveFavorites_KeepsAddedAt(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first := time.Unix(1000, 0)
	if err := saveFavorites(db, songsort.NewFavorites("s1", "s2"), first); err != nil {
		t.Fatalf("saveFavorites failed: %v", err)
	}

	later := time.Unix(2000, 0)
	if err := saveFavorites(db, songsort.NewFavorites("s2", "s3"), later); err != nil {
		t.Fatalf("saveFavorites failed: %v", err)
	}

	favs, err := getFavorites(db)
	if err != nil {
		t.Fatalf("getFavorites failed: %v", err)
	}
	ids := favs.IDs()
	if len(ids) != 2 || ids[0] != "s2" || ids[1] != "s3" {
		t.Fatalf("favorites = %v, want [s2 s3]", ids)
	}

	var addedAt int64
	if err := db.QueryRow(`SELECT added_at FROM favorites WHERE level_id = 's2'`).Scan(&addedAt); err != nil {
		t.Fatalf("query added_at: %v", err)
	}
	if addedAt != first.Unix() {
		t.Errorf("s2 added_at = %d, want %d", addedAt, first.Unix())
	}
}

func TestSaveFavorites_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveFavorites(db, songsort.NewFavorites("s1"), time.Now()); err != nil {
		t.Fatalf("saveFavorites failed: %v", err)
	}
	if err := saveFavorites(db, nil, time.Now()); err != nil {
		t.Fatalf("saveFavorites(nil) failed: %v", err)
	}

	favs, err := getFavorites(db)
	if err != nil {
		t.Fatalf("getFavorites failed: %v", err)
	}
	if favs.Len() != 0 {
		t.Errorf("favorites = %v, want empty", favs.IDs())
	}
}

func TestManager_FlushWritesPending(t *testing.T) {
	db := setupTestDB(t)
	m := &Manager{db: db}
	defer m.Close()

	m.SaveSettings(Settings{Sort: songsort.SortState{Mode: songsort.Author}})
	m.SaveSettings(Settings{Sort: songsort.SortState{Mode: songsort.PlayCount, Inverted: true}})
	m.SaveFavorites(songsort.NewFavorites("s9"))

	if err := m.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	want := Settings{Sort: songsort.SortState{Mode: songsort.PlayCount, Inverted: true}}
	if s == nil || *s != want {
		t.Errorf("settings = %+v, want %+v (latest save wins)", s, want)
	}

	favs, err := m.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if !favs.Has("s9") || favs.Len() != 1 {
		t.Errorf("favorites = %v, want [s9]", favs.IDs())
	}
}

func TestManager_FlushWithoutPending(t *testing.T) {
	db := setupTestDB(t)
	m := &Manager{db: db}
	defer m.Close()

	if err := m.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s != nil {
		t.Errorf("settings = %+v, want nil", s)
	}
}

func TestOpen_CloseFlushes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "test.db")

	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	m.SaveSettings(Settings{Sort: songsort.SortState{Mode: songsort.Original}})
	m.SaveFavorites(songsort.NewFavorites("s1"))
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s == nil || s.Sort.Mode != songsort.Original {
		t.Errorf("settings = %+v, want mode original", s)
	}
	favs, err := m.GetFavorites()
	if err != nil {
		t.Fatalf("GetFavorites failed: %v", err)
	}
	if !favs.Has("s1") {
		t.Errorf("favorites = %v, want s1", favs.IDs())
	}
}

func TestManager_CloseWaitsForRunningFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	m.SaveSettings(Settings{Sort: songsort.SortState{Mode: songsort.Newest}})

	// Stand in for the debounce timer having fired: the save is mid-write.
	m.flushMu.Lock()
	closed := make(chan error, 1)
	go func() { closed <- m.Close() }()

	select {
	case err := <-closed:
		m.flushMu.Unlock()
		t.Fatalf("Close returned during a running save: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if err := m.flushLocked(); err != nil {
		t.Errorf("background save failed: %v", err)
	}
	m.flushMu.Unlock()

	if err := <-closed; err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()
	s, err := m.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if s == nil || s.Sort.Mode != songsort.Newest {
		t.Errorf("settings = %+v, want mode newest", s)
	}
}

func TestManager_SaveAfterClose(t *testing.T) {
	db := setupTestDB(t)
	m := &Manager{db: db}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m.SaveSettings(Settings{Sort: songsort.SortState{Mode: songsort.Author}})
	m.SaveFavorites(songsort.NewFavorites("s1"))

	m.saveMu.Lock()
	timer := m.saveTimer
	m.saveMu.Unlock()
	if timer != nil {
		t.Error("save scheduled on a closed manager")
	}
	if err := m.Flush(); err != nil {
		t.Errorf("Flush after Close = %v, want nil", err)
	}
}
