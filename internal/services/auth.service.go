package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cardealer/dealership-gateway/internal/model"
	"github.com/cardealer/dealership-gateway/internal/repository"
	"github.com/cardealer/dealership-gateway/pkg/redis"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

const sessionKeyPrefix = "session:"

type OperatorRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Operator, error)
}

// AuthService checks operator credentials against stored password digests
// and keeps authenticated sessions in redis under a TTL. Unknown user and
// wrong password are indistinguishable to the caller.
type AuthService struct {
	operators  OperatorRepository
	sessions   redis.RedisAdapter
	sessionTTL time.Duration
}

func NewAuthService(operators OperatorRepository, sessions redis.RedisAdapter, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		operators:  operators,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

// HashPassword returns the hex SHA-256 digest under which operator
// passwords are stored. The dealership's old system kept passwords in
// clear text; digests are the deliberate replacement.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Login verifies the credentials and, on success, issues a session token
// with the configured TTL.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Session, error) {
	op, err := s.operators.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrOperatorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup operator: %w", err)
	}

	given := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(given), []byte(op.PasswordHash)) != 1 {
		return nil, ErrInvalidCredentials
	}

	session := &model.Session{
		Token:    uuid.NewString(),
		Username: op.Username,
		Role:     op.Role,
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.sessions.Set(sessionKeyPrefix+session.Token, payload, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return session, nil
}

// Verify resolves a session token back to the operator session, or
// ErrSessionNotFound once the token has expired or been logged out.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	payload, err := s.sessions.Get(sessionKeyPrefix + token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Del(sessionKeyPrefix + token)
}
