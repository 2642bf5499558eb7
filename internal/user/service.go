package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"shopledger/internal/events"
	"shopledger/internal/logger"
)

// Service maintains the user directory. Signup/Login serve locally
// registered accounts; RecordLogin is the entry point for an external
// identity provider that has already authenticated the user.
type Service interface {
	Signup(ctx context.Context, email, password, displayName string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	// RecordLogin upserts the directory record after a successful
	// external authentication, bumping lastLogin and loginCount.
	RecordLogin(ctx context.Context, id, email, displayName string) (*User, error)
	SetActive(ctx context.Context, id string, active bool) (*User, error)
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

type service struct {
	repo Repository
	bus  *events.Bus
}

func NewService(repo Repository, bus *events.Bus) Service {
	return &service{repo: repo, bus: bus}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultDisplayName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func (s *service) Signup(ctx context.Context, email, password, displayName string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}

	now := time.Now()
	created := User{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		CreatedAt:    now,
		LastLogin:    now,
		LoginCount:   1,
		IsActive:     true,
		PasswordHash: hash,
	}

	err = s.repo.Update(ctx, func(users []User) ([]User, error) {
		for _, u := range users {
			if normalizeEmail(u.Email) == email {
				return nil, fmt.Errorf("%w: %s", ErrEmailExists, email)
			}
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("user registered",
		zap.String("user_id", created.ID),
		zap.String("email", email),
	)
	s.bus.Publish(events.Change{Kind: events.KindUser, UserID: created.ID, Ref: created.ID})

	pub := created.Public()
	return &pub, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, ErrMissingEmail
	}

	var logged *User
	err := s.repo.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if normalizeEmail(users[i].Email) != email {
				continue
			}
			if !CheckPasswordHash(password, users[i].PasswordHash) {
				return nil, ErrInvalidCredentials
			}
			if !users[i].IsActive {
				return nil, ErrInactive
			}
			users[i].LastLogin = time.Now()
			users[i].LoginCount++
			cp := users[i].Public()
			logged = &cp
			return users, nil
		}
		return nil, ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindUser, UserID: logged.ID, Ref: logged.ID})
	return logged, nil
}

func (s *service) RecordLogin(ctx context.Context, id, email, displayName string) (*User, error) {
	if id == "" {
		return nil, ErrUserNotFound
	}
	email = normalizeEmail(email)
	if displayName == "" {
		displayName = defaultDisplayName(email)
	}

	var rec *User
	err := s.repo.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].LastLogin = time.Now()
				users[i].LoginCount++
				cp := users[i].Public()
				rec = &cp
				return users, nil
			}
		}
		now := time.Now()
		created := User{
			ID:          id,
			Email:       email,
			DisplayName: displayName,
			CreatedAt:   now,
			LastLogin:   now,
			LoginCount:  1,
			IsActive:    true,
		}
		cp := created
		rec = &cp
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("login recorded",
		zap.String("user_id", id),
		zap.Int("login_count", rec.LoginCount),
	)
	s.bus.Publish(events.Change{Kind: events.KindUser, UserID: id, Ref: id})

	return rec, nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) (*User, error) {
	var updated *User
	err := s.repo.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].IsActive = active
				cp := users[i].Public()
				updated = &cp
				return users, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(events.Change{Kind: events.KindUser, UserID: id, Ref: id})
	return updated, nil
}

func (s *service) Get(ctx context.Context, id string) (*User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			pub := u.Public()
			return &pub, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

func (s *service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
