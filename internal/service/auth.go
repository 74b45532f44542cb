package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/mail"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/hash"
	jwthelp "github.com/Skotchmaster/storefront/pkg/jwt"
	"github.com/Skotchmaster/storefront/pkg/logging"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

type AuthService struct {
	Repo *repo.GormRepo
	Mail mail.Sender

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*tokens.Pair, error) {
	log := logging.FromContext(ctx).With("svc", "auth")

	cli, err := s.Repo.GetClientByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !hash.CheckPassword(cli.PasswordHash, password) {
		log.Warn("login_rejected", "client_id", cli.ID)
		return nil, ErrUnauthorized
	}

	pair, rt, err := s.issue(cli)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, rt); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	log.Info("login_succeeded", "client_id", cli.ID)
	return pair, nil
}

// Refresh rotates a refresh token: the presented one is revoked and a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*tokens.Pair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	clientID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrUnauthorized
	}

	cli, err := s.Repo.GetClient(ctx, uint(clientID))
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	pair, next, err := s.issue(cli)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, next); err != nil {
		if repo.IsNotFound(err) || errors.Is(err, repo.ErrTokenRevoked) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}

// Forgot replaces the client's password with a random one and mails it.
func (s *AuthService) Forgot(ctx context.Context, email string) error {
	log := logging.FromContext(ctx).With("svc", "auth")

	cli, err := s.Repo.GetClientByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("%w: Email not found", ErrNotFound)
		}
		return err
	}

	pw := newPassword()
	h, err := hash.HashPassword(pw)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Repo.UpdatePassword(ctx, cli.ID, h); err != nil {
		return err
	}
	if err := s.Repo.RevokeClientTokens(ctx, cli.ID); err != nil {
		log.Error("revoke_tokens_error", "client_id", cli.ID, "error", err)
	}
	if s.Mail != nil {
		if err := s.Mail.Send(ctx, mail.NewPassword(cli, pw)); err != nil {
			log.Error("new_password_mail_error", "client_id", cli.ID, "error", err)
			recordFailure("mail")
		}
	}
	return nil
}

func newPassword() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (s *AuthService) issue(cli *models.Client) (*tokens.Pair, *models.RefreshToken, error) {
	now := time.Now()
	accessExp := now.Add(s.AccessTTL)
	refreshExp := now.Add(s.RefreshTTL)

	access, err := tokens.SignAccessToken(tokens.Principal{
		ClientID: cli.ID,
		Email:    cli.Email,
		Roles:    cli.RoleList(),
	}, accessExp, s.AccessSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}

	jti := jwthelp.NewJTI()
	refresh, err := tokens.SignRefreshToken(cli.ID, jti, refreshExp, s.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}

	rt := &models.RefreshToken{
		TokenHash: jwthelp.Sha256Hex(refresh),
		ClientID:  cli.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}
	return &tokens.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, rt, nil
}
