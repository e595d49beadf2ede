package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "none", ConfigFileName))

	settings, found, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for missing file")
	}
	if settings != Default() {
		t.Errorf("expected defaults, got %+v", settings)
	}
	if store.Exists() {
		t.Error("Exists() should be false")
	}
}

func TestStore_SaveAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", ConfigFileName))

	want := Default()
	want.OutputDirectory = "/media/videos"
	want.EnableSponsorBlock = true
	want.SponsorBlockCategories = "sponsor,intro"
	want.ExtraArguments = "--no-mtime --restrict-filenames"

	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists() {
		t.Fatal("expected file to exist after Save")
	}

	got, found, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !found {
		t.Error("expected found=true")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestStore_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("proxy: socks5://127.0.0.1:1080\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Proxy != "socks5://127.0.0.1:1080" {
		t.Errorf("expected proxy from file, got %q", got.Proxy)
	}
	if got.FilenameTemplate != DefaultFilenameTemplate || got.YtDlpPath != DefaultYtDlpPath {
		t.Errorf("expected defaults for missing keys, got %+v", got)
	}
}

func TestStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("proxy: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, _, err := NewStore(path).Load()
	if err == nil {
		t.Fatal("expected parse error")
	}
	if got != Default() {
		t.Errorf("expected defaults on parse error, got %+v", got)
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), ConfigFileName))

	// Deleting a missing file is fine
	if err := store.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Save(Default()); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if store.Exists() {
		t.Error("expected file to be removed")
	}
}
