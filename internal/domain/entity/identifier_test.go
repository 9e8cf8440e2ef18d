package entity

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUID(t *testing.T) {
	pattern := regexp.MustCompile(`^UID[0-9A-Z]{9}$`)
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		uid := GenerateUID()
		assert.Regexp(t, pattern, uid)
		seen[uid] = struct{}{}
	}

	assert.Len(t, seen, 1000, "collisions among 1000 uids are not expected")
}

func TestGenerateOrderID(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	id := GenerateOrderID(now)

	millis := strconv.FormatInt(now.UnixMilli(), 10)
	assert.Regexp(t, regexp.MustCompile(`^ORDER`+millis+`[0-9A-Z]{4}$`), id)
	assert.NotEqual(t, id, GenerateOrderID(now), "random suffix should differ")
}
