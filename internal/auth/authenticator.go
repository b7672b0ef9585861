package auth

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// Authenticator abstracts over authentication methods so the service layer
// does not care whether credentials are passwords, OAuth tokens, or passkeys.
type Authenticator interface {
	// Register creates a new user account with the given email and
	// credential, returning the created user.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// requirements.
	ValidateCredential(credential string) error
}
