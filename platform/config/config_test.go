package config

import "testing"

func TestLoadRequiresDatabaseAndRedis(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without DATABASE_URL")
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/zgw")
	t.Setenv("REDIS_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without REDIS_URL")
	}
}

func TestLoadParsesActionConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/zgw")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("INTAKE_ACTION_CONFIG", `{"source":"simxml","listens":["simxml.inbound"]}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetIntakeActionConfig()["source"] != "simxml" {
		t.Fatalf("expected action config passthrough, got %v", cfg.GetIntakeActionConfig())
	}
	if cfg.GetMinioBucketDocuments() != "drc-documenten" {
		t.Fatalf("expected default documents bucket, got %q", cfg.GetMinioBucketDocuments())
	}
	if cfg.IsMinIOEnabled() {
		t.Fatalf("expected MinIO disabled without endpoint")
	}
}

func TestLoadRejectsInvalidActionConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/zgw")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("INTAKE_ACTION_CONFIG", `[1,2]`)

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-object action config")
	}
}

func TestSplitCSVTrimsAndSkipsEmpty(t *testing.T) {
	got := splitCSV(" a, ,b ,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected split result %v", got)
	}
}
