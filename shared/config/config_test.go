package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")
	t.Setenv("PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("AUTO_MIGRATE", "")
	t.Setenv("AUTH_DISABLED", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("expected redis db 0, got %d", cfg.Redis.DB)
	}
	if cfg.AutoMigrate {
		t.Error("expected AutoMigrate to default to false")
	}
	if cfg.IsProduction() {
		t.Error("expected development environment by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "rahasia")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("ADMIN_BOOTSTRAP_USERNAME", "budi")
	t.Setenv("ADMIN_BOOTSTRAP_PASSWORD", "rahasia123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" || cfg.Redis.DB != 3 || !cfg.AutoMigrate {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.BootstrapAdmin.Username != "budi" || cfg.BootstrapAdmin.Password != "rahasia123" {
		t.Errorf("bootstrap admin not read: %+v", cfg.BootstrapAdmin)
	}
	if !cfg.IsProduction() {
		t.Error("expected production environment")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing jwt secret with auth enabled",
			env:  map[string]string{"JWT_SECRET": "", "AUTH_DISABLED": "false"},
		},
		{
			name: "non-numeric redis db",
			env:  map[string]string{"JWT_SECRET": "x", "REDIS_DB": "satu"},
		},
		{
			name: "invalid bool",
			env:  map[string]string{"JWT_SECRET": "x", "AUTO_MIGRATE": "mungkin"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REDIS_DB", "")
			t.Setenv("AUTO_MIGRATE", "")
			t.Setenv("AUTH_DISABLED", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Errorf("[%s] expected error", tt.name)
			}
		})
	}
}

func TestLoadAuthDisabledWithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("AUTH_DISABLED", "true")
	t.Setenv("REDIS_DB", "")
	t.Setenv("AUTO_MIGRATE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AuthDisabled {
		t.Error("expected AuthDisabled")
	}
}
