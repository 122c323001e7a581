package token

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/openexpo/jurypanel/internal/model"
	"github.com/openexpo/jurypanel/internal/storage"
)

// Errors
var (
	ErrInvalidToken = errors.New("invalid or malformed token")
)

// Service issues and verifies opaque bearer tokens.
//
// A token is the base64url encoding of "jurorID:secret". The encoding is
// deliberately reversible and non-cryptographic: tamper evidence comes from
// comparing the embedded secret against the juror's currently stored secret,
// which is rotated on every successful PIN verification. Only the most
// recently issued token per juror is therefore valid.
type Service struct {
	storage storage.Storage
}

// New creates a new token service
func New(store storage.Storage) *Service {
	return &Service{storage: store}
}

// Mint produces a bearer token binding jurorID to the given secret
func (s *Service) Mint(jurorID model.JurorID, secret string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(string(jurorID) + ":" + secret))
}

// Verify decodes a token and checks its secret against the stored account.
// Returns the juror identity on success.
func (s *Service) Verify(ctx context.Context, tok string) (model.JurorID, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil {
		return "", ErrInvalidToken
	}

	// The secret never contains a colon, so split at the last one to
	// allow colons in juror identifiers.
	idx := strings.LastIndex(string(decoded), ":")
	if idx <= 0 {
		return "", ErrInvalidToken
	}
	jurorID := model.JurorID(decoded[:idx])
	secret := string(decoded[idx+1:])
	if secret == "" {
		return "", ErrInvalidToken
	}

	account, err := s.storage.GetAccount(ctx, jurorID)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if account.Secret == "" || account.Secret != secret {
		return "", ErrInvalidToken
	}

	return jurorID, nil
}
