package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geonote/chat-service/internal/domain"
	"github.com/geonote/chat-service/internal/security"
)

type TokenParser interface {
	ParseAndValidate(tokenStr string) (*security.AccessClaims, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}

// IdentityService resolves a bearer credential to a directory user.
// Malformed, expired and mis-signed tokens (and unknown subjects) all
// collapse to ErrInvalidCredential; the peer must not learn which check
// failed. The detail goes to the debug log only.
type IdentityService struct {
	verifier TokenParser
	users    UserDirectory
}

func NewIdentityService(verifier TokenParser, users UserDirectory) *IdentityService {
	return &IdentityService{verifier: verifier, users: users}
}

func (s *IdentityService) Verify(ctx context.Context, credential string) (*domain.User, error) {
	claims, err := s.verifier.ParseAndValidate(credential)
	if err != nil {
		slog.Debug("credential rejected", "err", err)
		return nil, domain.ErrInvalidCredential
	}

	uid, err := security.SubjectAsUserID(claims)
	if err != nil {
		slog.Debug("credential subject rejected", "err", err)
		return nil, domain.ErrInvalidCredential
	}

	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			slog.Debug("credential subject unknown", "user", uid)
			return nil, domain.ErrInvalidCredential
		}
		return nil, fmt.Errorf("users.FindByID: %w", err)
	}

	return u, nil
}
