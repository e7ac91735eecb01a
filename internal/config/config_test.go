package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Point at an absent file so only defaults apply.
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "data" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if c.ListenAddr != "127.0.0.1:8980" {
		t.Errorf("ListenAddr = %q", c.ListenAddr)
	}
	if c.CacheEntries != 16 || c.DefaultTopN != 10 {
		t.Errorf("cache=%d topN=%d", c.CacheEntries, c.DefaultTopN)
	}
	if c.MBTIFile != "countriesMBTI_16types.csv" {
		t.Errorf("MBTIFile = %q", c.MBTIFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "data_dir: /srv/data\nlisten_addr: 0.0.0.0:9000\ndefault_top_n: 25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataDir != "/srv/data" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if c.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %q", c.ListenAddr)
	}
	if c.DefaultTopN != 25 {
		t.Errorf("DefaultTopN = %d", c.DefaultTopN)
	}
	// Unset keys fall back to defaults.
	if c.RidershipFile != "subway_daily.csv" {
		t.Errorf("RidershipFile = %q", c.RidershipFile)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.DataDir = "/tmp/datasets"
	c.CacheEntries = 4
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.DataDir != "/tmp/datasets" || back.CacheEntries != 4 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestDatasetPath(t *testing.T) {
	c := &Global{DataDir: "/srv/data"}
	if got := c.DatasetPath("daily.csv"); got != filepath.Join("/srv/data", "daily.csv") {
		t.Errorf("DatasetPath = %q", got)
	}
	if got := c.DatasetPath("/abs/file.csv"); got != "/abs/file.csv" {
		t.Errorf("DatasetPath(abs) = %q", got)
	}
}
