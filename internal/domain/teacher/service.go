package teacher

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"taqyim/internal/domain/auth"
)

const (
	initialPasswordLength = 12
	passwordAlphabet      = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// Provision creates the teacher's login and profile and returns the one-time
// initial password. The password is random; deriving it from profile data
// (the old birth-date scheme) made credentials guessable.
func (s *Service) Provision(ctx context.Context, t Teacher) (string, string, error) {
	password, err := GeneratePassword(initialPasswordLength)
	if err != nil {
		return "", "", err
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", "", err
	}

	id, err := s.Store.CreateWithLogin(ctx, t, hash)
	if err != nil {
		return "", "", err
	}
	return id, password, nil
}

func GeneratePassword(length int) (string, error) {
	if length < 8 {
		return "", fmt.Errorf("password length %d too short", length)
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
