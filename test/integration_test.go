// ABOUTME: Integration tests for memopad CLI commands.
// ABOUTME: Builds the binary and runs full workflows against a temp sqlite file.

package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var memoBin string

var createdRe = regexp.MustCompile(`Created memo (\d+)`)

func TestMain(m *testing.M) {
	cmd := exec.Command("go", "build", "-o", "bin/memopad", "./cmd/memopad")
	cmd.Dir = ".."
	if err := cmd.Run(); err != nil {
		panic(err)
	}

	wd, _ := os.Getwd()
	memoBin = filepath.Join(wd, "..", "bin", "memopad")

	os.Exit(m.Run())
}

func TestAddListShowDelete(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	out, err := runMemo(t, dbPath, "add", "Test Memo", "--content", "Test content here")
	if err != nil {
		t.Fatalf("add failed: %v\n%s", err, out)
	}
	id := createdID(t, out)

	out, err = runMemo(t, dbPath, "list")
	if err != nil {
		t.Fatalf("list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Test Memo") {
		t.Errorf("expected 'Test Memo' in list: %s", out)
	}
	if !strings.Contains(out, "no tag") {
		t.Errorf("expected untagged memo under 'no tag': %s", out)
	}

	out, err = runMemo(t, dbPath, "show", id)
	if err != nil {
		t.Fatalf("show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Test content") {
		t.Errorf("expected 'Test content' in show: %s", out)
	}

	out, err = runMemo(t, dbPath, "rm", id, "--force")
	if err != nil {
		t.Fatalf("rm failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Deleted") {
		t.Errorf("expected 'Deleted' in output: %s", out)
	}

	out, err = runMemo(t, dbPath, "show", id)
	if err == nil {
		t.Errorf("expected show of deleted memo to fail: %s", out)
	}
}

func TestTagOperations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, _ = runMemo(t, dbPath, "add", "Tagged Memo", "--content", "Content", "--tags", "work,urgent")

	out, _ := runMemo(t, dbPath, "list", "--tag", "work")
	if !strings.Contains(out, "Tagged Memo") {
		t.Errorf("expected memo in tag filter: %s", out)
	}

	out, _ = runMemo(t, dbPath, "tag", "list")
	if !strings.Contains(out, "urgent") {
		t.Errorf("expected 'urgent' tag in list: %s", out)
	}

	out, err := runMemo(t, dbPath, "tag", "add", "reading")
	if err != nil {
		t.Fatalf("tag add failed: %v\n%s", err, out)
	}
	out, _ = runMemo(t, dbPath, "tag", "list")
	if !strings.Contains(out, "reading") {
		t.Errorf("expected 'reading' tag in list: %s", out)
	}

	out, err = runMemo(t, dbPath, "tag", "rm", "reading")
	if err != nil {
		t.Fatalf("tag rm failed: %v\n%s", err, out)
	}
	out, _ = runMemo(t, dbPath, "tag", "list")
	if strings.Contains(out, "reading") {
		t.Errorf("did not expect 'reading' after removal: %s", out)
	}
}

func TestSearch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, _ = runMemo(t, dbPath, "add", "Go Programming", "--content", "Learn about goroutines")
	_, _ = runMemo(t, dbPath, "add", "Cooking", "--content", "How to make pasta")

	out, _ := runMemo(t, dbPath, "list", "--search", "GOROUTINES")
	if !strings.Contains(out, "Go Programming") {
		t.Errorf("expected 'Go Programming' in search: %s", out)
	}
	if strings.Contains(out, "Cooking") {
		t.Errorf("did not expect 'Cooking' in search: %s", out)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	exportPath := filepath.Join(dir, "export.json")

	_, _ = runMemo(t, src, "add", "Portable", "--content", "travels well", "--tags", "ideas")

	out, err := runMemo(t, src, "export", "--format", "json", "--output", exportPath)
	if err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}

	out, err = runMemo(t, dst, "import", exportPath)
	if err != nil {
		t.Fatalf("import failed: %v\n%s", err, out)
	}

	out, _ = runMemo(t, dst, "list", "--tag", "ideas")
	if !strings.Contains(out, "Portable") {
		t.Errorf("expected imported memo in tag filter: %s", out)
	}
}

func TestSyncConfigWritesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	configHome := t.TempDir()

	out, err := runMemoEnv(t, dbPath, configHome, "sync", "config", "--host", "charm.example.com", "--auto-sync=false")
	if err != nil {
		t.Fatalf("sync config failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(filepath.Join(configHome, "memopad", "config.json"))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), `"charm_host": "charm.example.com"`) {
		t.Errorf("expected charm_host in config: %s", data)
	}

	out, _ = runMemoEnv(t, dbPath, configHome, "sync", "status")
	if !strings.Contains(out, "charm.example.com") || !strings.Contains(out, "disabled") {
		t.Errorf("expected saved settings in status: %s", out)
	}
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	m := createdRe.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("expected 'Created memo <id>' in output: %s", out)
	}
	return m[1]
}

func runMemo(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	return runMemoEnv(t, dbPath, t.TempDir(), args...)
}

func runMemoEnv(t *testing.T, dbPath, configHome string, args ...string) (string, error) {
	t.Helper()
	allArgs := append([]string{"--backend", "sqlite", "--db", dbPath}, args...)
	cmd := exec.Command(memoBin, allArgs...) //nolint:gosec // Running our own test binary is expected in integration tests
	cmd.Env = append(os.Environ(), "XDG_CONFIG_HOME="+configHome, "NO_COLOR=1", "MEMOPAD_CHARM_HOST=", "MEMOPAD_AUTO_SYNC=")
	cmd.Dir = t.TempDir()
	out, err := cmd.CombinedOutput()
	return string(out), err
}
