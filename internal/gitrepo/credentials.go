package gitrepo

import (
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

// DefaultTokenUsername is sent as the username when authenticating with a token; the server only checks the password.
const DefaultTokenUsername = "token"

// CredentialsFunc is invoked by a Transport once per clone or pull.
type CredentialsFunc func() transport.AuthMethod

// CredentialBridge turns the Space bearer token into git HTTP basic credentials.
type CredentialBridge struct {
	username string
	token    string
}

func NewCredentialBridge(token, username string) *CredentialBridge {
	if username == "" {
		username = DefaultTokenUsername
	}
	return &CredentialBridge{username: username, token: token}
}

// Credentials returns a fresh auth method on every call.
func (b *CredentialBridge) Credentials() transport.AuthMethod {
	return &githttp.BasicAuth{
		Username: b.username,
		Password: b.token,
	}
}
