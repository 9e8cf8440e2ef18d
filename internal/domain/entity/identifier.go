package entity

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Identifier prefixes
const (
	UIDPrefix     = "UID"
	OrderIDPrefix = "ORDER"
)

// GenerateUID returns "UID" followed by 9 random base-36 characters.
// Uniqueness is enforced by the store; callers retry on a constraint violation.
func GenerateUID() string {
	return UIDPrefix + randomBase36(9)
}

// GenerateOrderID returns "ORDER" followed by the unix millisecond timestamp
// and 4 random base-36 characters
func GenerateOrderID(now time.Time) string {
	return OrderIDPrefix + strconv.FormatInt(now.UnixMilli(), 10) + randomBase36(4)
}

func randomBase36(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	limit := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic("identifier: reading random source: " + err.Error())
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}
