package appConfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		value, ok := values[name]
		return value, ok
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
		want AppConfig
	}{
		{
			name: "all arguments",
			args: []string{"https://space.example.com", "tok", "/backups", "backup@example.com"},
			want: AppConfig{BaseURL: "https://space.example.com", Token: "tok", BackupRoot: "/backups", AuthorEmail: "backup@example.com"},
		},
		{
			name: "all environment",
			env: map[string]string{
				EnvBaseURL: "https://env.example.com", EnvToken: "envtok", EnvBackupRoot: "/env", EnvAuthorEmail: "env@example.com",
			},
			want: AppConfig{BaseURL: "https://env.example.com", Token: "envtok", BackupRoot: "/env", AuthorEmail: "env@example.com"},
		},
		{
			name: "arguments win over environment, empty argument falls back",
			args: []string{"https://space.example.com", ""},
			env: map[string]string{
				EnvBaseURL: "https://env.example.com", EnvToken: "envtok", EnvBackupRoot: "/env", EnvAuthorEmail: "env@example.com",
			},
			want: AppConfig{BaseURL: "https://space.example.com", Token: "envtok", BackupRoot: "/env", AuthorEmail: "env@example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.args, envFrom(tt.env), Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.want.Options = Options{}.WithDefaults()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_MissingValues(t *testing.T) {
	_, err := Resolve([]string{"https://space.example.com"}, envFrom(map[string]string{EnvToken: ""}), Options{})

	var missing *MissingValuesError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingValuesError, got %v", err)
	}
	if len(missing.Values) != 3 {
		t.Errorf("expected 3 missing values, got %v", missing.Values)
	}
	for _, name := range []string{EnvToken, EnvBackupRoot, EnvAuthorEmail} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("expected diagnostic to name %s, got %q", name, err.Error())
		}
	}
}

func TestResolve_InvalidOptions(t *testing.T) {
	args := []string{"https://space.example.com", "tok", "/backups", "backup@example.com"}
	if _, err := Resolve(args, envFrom(nil), Options{Concurrency: -1}); err == nil {
		t.Errorf("expected error for negative concurrency")
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	got := Options{Concurrency: 4, AuthorName: "Nightly Mirror"}.WithDefaults()
	want := Options{
		GitUsername:      DefaultGitUsername,
		AuthorName:       "Nightly Mirror",
		OperationTimeout: DefaultOperationTimeout,
		RequestTimeout:   DefaultRequestTimeout,
		Concurrency:      4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithDefaults() mismatch (-want +got):\n%s", diff)
	}
}

func TestAppConfig_StringRedactsToken(t *testing.T) {
	config := AppConfig{BaseURL: "https://space.example.com", Token: "super-secret"}
	if strings.Contains(config.String(), "super-secret") {
		t.Errorf("token leaked into %q", config.String())
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	content := `gitUsername: x-token
authorName: Nightly Mirror
operationTimeout: 10m
concurrency: 3
rateLimitPerSecond: 5
metricsTextfile: /var/lib/node_exporter/spacemirror.prom
every: 6h
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	want := Options{
		GitUsername:        "x-token",
		AuthorName:         "Nightly Mirror",
		OperationTimeout:   10 * time.Minute,
		Concurrency:        3,
		RateLimitPerSecond: 5,
		MetricsTextfile:    "/var/lib/node_exporter/spacemirror.prom",
		Every:              6 * time.Hour,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadOptions() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOptions_Errors(t *testing.T) {
	dir := t.TempDir()
	unknownKey := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknownKey, []byte("concurency: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadOptions(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("expected error for explicit missing file")
	}
	if _, err := LoadOptions(unknownKey); err == nil {
		t.Errorf("expected error for unknown key")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.env")
	if err := os.WriteFile(path, []byte("SPACEMIRROR_TEST_ONLY=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPACEMIRROR_TEST_ONLY", "")
	os.Unsetenv("SPACEMIRROR_TEST_ONLY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile failed: %v", err)
	}
	if got := os.Getenv("SPACEMIRROR_TEST_ONLY"); got != "from-file" {
		t.Errorf("expected variable from env file, got %q", got)
	}
	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Errorf("expected error for explicit missing env file")
	}
}
