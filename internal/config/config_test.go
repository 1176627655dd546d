package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "blogman_test")
	t.Setenv("ACCESS_TOKEN_SECRET", "test-secret")
}

func TestLoad_AllRequired_Succeeds(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Errorf("MongoURI = %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "blogman_test" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.AccessTokenSecret != "test-secret" {
		t.Errorf("AccessTokenSecret = %q", cfg.AccessTokenSecret)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("COOKIE_DOMAIN", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.ServerPort != "5000" {
		t.Errorf("ServerPort = %q, want 5000", cfg.ServerPort)
	}
	if cfg.CookieDomain != "" {
		t.Errorf("CookieDomain = %q, want empty", cfg.CookieDomain)
	}
	if cfg.CORSAllowedOrigin != "http://localhost:5173" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}

func TestLoad_MissingRequired_ReturnsError(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("MONGO_DB", "")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required variables")
	}
	// 不足している変数名をすべて列挙すること
	for _, name := range []string{"MONGO_URI", "MONGO_DB", "ACCESS_TOKEN_SECRET"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q should mention %s", err.Error(), name)
		}
	}
}

func TestLoad_PartialMissing_ReturnsError(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MONGO_DB", "blogman_test")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when ACCESS_TOKEN_SECRET is missing")
	}
	if !strings.Contains(err.Error(), "ACCESS_TOKEN_SECRET") {
		t.Errorf("error %q should mention ACCESS_TOKEN_SECRET", err.Error())
	}
	if strings.Contains(err.Error(), "MONGO_URI") {
		t.Errorf("error %q should not mention variables that are set", err.Error())
	}
}

func TestLoad_CustomTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want 30m", cfg.TokenTTL)
	}
}

func TestLoad_InvalidTTL_FallsBackToDefault(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOKEN_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want default 1h", cfg.TokenTTL)
	}
}
