// Package password implements the one-way transform of account secrets.
// Digests are opaque to every caller: only Hash produces them and only
// Verify inspects them.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsemenov/accountd/internal/common"
)

// DefaultCost matches bcrypt's adaptive work factor of 10 rounds, slow
// enough to resist brute force and cheap enough for interactive logins.
const DefaultCost = bcrypt.DefaultCost

// Hasher produces and checks salted bcrypt digests.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash transforms a plaintext secret into a storable digest. bcrypt salts
// every call, so two hashes of the same plaintext are unequal.
func (h *Hasher) Hash(plaintext string) ([]byte, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorHashing, err)
	}
	return digest, nil
}

// Verify reports whether digest was produced from an equal plaintext.
// A mismatch is a normal false, not an error.
func (h *Hasher) Verify(plaintext string, digest []byte) bool {
	return bcrypt.CompareHashAndPassword(digest, []byte(plaintext)) == nil
}
