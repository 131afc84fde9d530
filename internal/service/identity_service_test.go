package service

import (
	"context"
	"errors"
	"testing"

	"github.com/geonote/chat-service/internal/domain"
	"github.com/geonote/chat-service/internal/security"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

type stubParser struct {
	claims *security.AccessClaims
	err    error
}

func (s *stubParser) ParseAndValidate(string) (*security.AccessClaims, error) {
	return s.claims, s.err
}

type stubDirectory struct {
	users map[int64]domain.User
	err   error
}

func (s *stubDirectory) FindByID(_ context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func claimsWithSubject(sub string) *security.AccessClaims {
	return &security.AccessClaims{StandardClaims: jwt.StandardClaims{Subject: sub}}
}

func TestIdentityService_Verify(t *testing.T) {
	dir := &stubDirectory{users: map[int64]domain.User{42: {ID: 42, Username: "alice"}}}

	tests := []struct {
		name    string
		parser  TokenParser
		wantErr error
	}{
		{
			name:   "valid",
			parser: &stubParser{claims: claimsWithSubject("42")},
		},
		{
			name:    "bad signature",
			parser:  &stubParser{err: security.ErrInvalidToken},
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:    "expired",
			parser:  &stubParser{err: security.ErrTokenExpired},
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:    "garbage subject",
			parser:  &stubParser{claims: claimsWithSubject("not-a-number")},
			wantErr: domain.ErrInvalidCredential,
		},
		{
			name:    "unknown user",
			parser:  &stubParser{claims: claimsWithSubject("7")},
			wantErr: domain.ErrInvalidCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewIdentityService(tt.parser, dir)
			u, err := svc.Verify(context.Background(), "whatever")

			if tt.wantErr != nil {
				// every rejection collapses to the same error
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, int64(42), u.ID)
			require.Equal(t, "alice", u.Username)
		})
	}
}

func TestIdentityService_DirectoryOutageIsNotCredentialError(t *testing.T) {
	dir := &stubDirectory{err: errors.New("pg down")}
	svc := NewIdentityService(&stubParser{claims: claimsWithSubject("42")}, dir)

	_, err := svc.Verify(context.Background(), "tok")
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrInvalidCredential,
		"an infrastructure failure must not look like a bad credential")
}
