package core

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"remotebrowse/config"
)

func tempStore(t *testing.T) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
[[endpoints]]
id = "1"
name = "a"
protocol = "ftp"
`), 0644); err != nil {
		t.Fatal(err)
	}
	store, err := config.LoadStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestReloaderEmptySpecIsDisabled(t *testing.T) {
	r := NewReloader(tempStore(t), zap.NewNop())
	if err := r.Start(""); err != nil {
		t.Fatalf("Start(\"\"): %v", err)
	}
	r.Stop()
}

func TestReloaderRejectsBadSpec(t *testing.T) {
	r := NewReloader(tempStore(t), zap.NewNop())
	if err := r.Start("not a cron spec"); err == nil {
		t.Error("bad cron spec accepted")
	}
}
