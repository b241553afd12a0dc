package services

import (
	"golang.org/x/crypto/bcrypt"

	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher over bcrypt. Out-of-range costs fall
// back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) domainagg.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(plain string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *bcryptHasher) Compare(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
