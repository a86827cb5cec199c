package gitrepo

import (
	"testing"

	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

func TestCredentialBridge_Credentials(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		wantUsername string
	}{
		{"default username", "", DefaultTokenUsername},
		{"configured username", "x-token", "x-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := NewCredentialBridge("secret", tt.username)

			auth, ok := bridge.Credentials().(*githttp.BasicAuth)
			if !ok {
				t.Fatalf("expected *http.BasicAuth, got %T", bridge.Credentials())
			}
			if auth.Username != tt.wantUsername {
				t.Errorf("expected username %q, got %q", tt.wantUsername, auth.Username)
			}
			if auth.Password != "secret" {
				t.Errorf("expected token as password, got %q", auth.Password)
			}
		})
	}
}

func TestCredentialBridge_FreshPerCall(t *testing.T) {
	bridge := NewCredentialBridge("secret", "")
	first := bridge.Credentials().(*githttp.BasicAuth)
	first.Password = "tampered"

	second := bridge.Credentials().(*githttp.BasicAuth)
	if second.Password != "secret" {
		t.Errorf("expected a new credential value per call, got %q", second.Password)
	}
}
