package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:3000,https://leave.college.edu")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerPort != "8080" || cfg.DB.Driver != "mysql" || cfg.JWT.Secret != "s3cret" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.JWT.TTL() != 24*time.Hour {
		t.Fatalf("ttl = %v", cfg.JWT.TTL())
	}
	if len(cfg.CORSAllowOrigins) != 2 || cfg.CORSAllowOrigins[1] != "https://leave.college.edu" {
		t.Fatalf("origins = %v", cfg.CORSAllowOrigins)
	}
	if cfg.IsProduction() {
		t.Fatal("default environment should not be production")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail")
	}
}

func TestDSN(t *testing.T) {
	mysqlCfg := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", Database: "eduleave", Username: "root", Password: "pw"}
	dsn, err := mysqlCfg.DSN()
	if err != nil {
		t.Fatalf("mysql DSN: %v", err)
	}
	if dsn != "root:pw@tcp(db:3306)/eduleave?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Fatalf("mysql dsn = %s", dsn)
	}

	pgCfg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", Database: "eduleave", Username: "app", Password: "pw", SSLMode: "disable"}
	dsn, err = pgCfg.DSN()
	if err != nil {
		t.Fatalf("postgres DSN: %v", err)
	}
	if !strings.Contains(dsn, "host=db") || !strings.Contains(dsn, "sslmode=disable") {
		t.Fatalf("postgres dsn = %s", dsn)
	}

	if _, err := (DatabaseConfig{Driver: "sqlite"}).DSN(); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestJWTTTLFallback(t *testing.T) {
	if got := (JWTConfig{ExpireHours: 0}).TTL(); got != 24*time.Hour {
		t.Fatalf("ttl = %v", got)
	}
	if got := (JWTConfig{ExpireHours: 2}).TTL(); got != 2*time.Hour {
		t.Fatalf("ttl = %v", got)
	}
}

func TestMailerNotConfigured(t *testing.T) {
	m := NewMailer(SMTPConfig{Host: "smtp.college.edu"})
	if m.Configured() {
		t.Fatal("mailer without From should not be configured")
	}
	if err := m.SendMail([]string{"a@college.edu"}, "s", "<p>x</p>"); !errors.Is(err, ErrMailerNotConfigured) {
		t.Fatalf("err = %v", err)
	}
	if err := m.SendMail(nil, "s", "x"); err != nil {
		t.Fatalf("empty recipients err = %v", err)
	}

	var nilMailer *Mailer
	if nilMailer.Configured() {
		t.Fatal("nil mailer should not be configured")
	}
}
