package config

import (
	"os"
	"strings"
	"testing"
)

// chdirTemp moves into an empty directory so no .env file is picked up
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.JWT.AccessTokenMins != 120 {
		t.Errorf("AccessTokenMins = %d, want 120", cfg.JWT.AccessTokenMins)
	}
	if cfg.Notify.Driver != NotifyDriverMemory {
		t.Errorf("Notify.Driver = %q, want memory", cfg.Notify.Driver)
	}
	if cfg.Cron.ReminderSpec != "0 30 8 * * *" || cfg.Cron.ReminderAfterDays != 3 {
		t.Errorf("Cron = %+v", cfg.Cron)
	}
	if cfg.GetAllowedOrigins() != "*" {
		t.Errorf("dev origins = %q, want *", cfg.GetAllowedOrigins())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad mode", map[string]string{"APP_MODE": "staging"}, "APP_MODE"},
		{"prod default secret", map[string]string{"APP_MODE": "prod"}, "PROD_JWT_SECRET"},
		{"bad driver", map[string]string{"APP_MODE": "dev", "NOTIFY_DRIVER": "kafka"}, "NOTIFY_DRIVER"},
		{"rabbit without url", map[string]string{"APP_MODE": "dev", "NOTIFY_DRIVER": "rabbitmq"}, "RABBIT_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ProdPrefix(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_SMTP_HOST", "smtp.internal")
	t.Setenv("PROD_SMTP_PORT", "2525")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Host != "db.internal" || cfg.SMTP.Host != "smtp.internal" || cfg.SMTP.Port != 2525 {
		t.Errorf("prod values not picked up: db=%s smtp=%s:%d", cfg.Database.Host, cfg.SMTP.Host, cfg.SMTP.Port)
	}
}
