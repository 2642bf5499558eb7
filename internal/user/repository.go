package user

import (
	"context"

	"shopledger/internal/codec"
)

// Repository persists the directory as one collection under the users key.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, mutate func(users []User) ([]User, error)) error
}

type repository struct {
	codec *codec.Codec
}

func NewRepository(c *codec.Codec) Repository {
	return &repository{codec: c}
}

func (r *repository) load(ctx context.Context) ([]User, error) {
	var users []User
	if err := r.codec.LoadList(ctx, codec.KeyUsers, &users); err != nil {
		return nil, err
	}
	valid := users[:0]
	for _, u := range users {
		if u.ID != "" {
			valid = append(valid, u)
		}
	}
	return valid, nil
}

func (r *repository) List(ctx context.Context) ([]User, error) {
	return r.load(ctx)
}

func (r *repository) Update(ctx context.Context, mutate func([]User) ([]User, error)) error {
	return r.codec.WithLock(codec.KeyUsers, func() error {
		users, err := r.load(ctx)
		if err != nil {
			return err
		}
		next, err := mutate(users)
		if err != nil {
			return err
		}
		return r.codec.SaveList(ctx, codec.KeyUsers, next)
	})
}
