package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/models"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pa55word")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "argon2id$v=19$"))
	assert.False(t, IsLegacyHash(hash))

	assert.NoError(t, VerifyPassword(hash, "pa55word"))
	assert.ErrorIs(t, VerifyPassword(hash, "password"), ErrInvalidPassword)

	again, err := Hash("pa55word")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestVerifyLegacyDigest(t *testing.T) {
	sum := sha256.Sum256([]byte("hunter2"))
	digest := hex.EncodeToString(sum[:])
	assert.True(t, IsLegacyHash(digest))

	assert.NoError(t, VerifyPassword(digest, "hunter2"))
	assert.NoError(t, VerifyPassword(strings.ToUpper(digest), "hunter2"))
	assert.ErrorIs(t, VerifyPassword(digest, "hunter3"), ErrInvalidPassword)
}

func TestVerifyMalformedArgonHash(t *testing.T) {
	assert.Error(t, VerifyPassword("argon2id$v=19$garbage", "x"))
	assert.Error(t, VerifyPassword("argon2id$v=19$m=1,t=1,p=1$!!$!!", "x"))
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")
	session := models.Session{RestaurantID: 42, RestaurantName: "Dosa Corner"}

	token, jti, err := GenerateToken(secret, session, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)

	claims, err := VerifyJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)

	got, err := claims.Session()
	require.NoError(t, err)
	assert.Equal(t, session, got)
	assert.InDelta(t, time.Hour.Seconds(), claims.TTL(time.Now()).Seconds(), 5)
}

func TestVerifyJWTRejects(t *testing.T) {
	secret := []byte("secret")
	session := models.Session{RestaurantID: 1}

	token, _, err := GenerateToken(secret, session, time.Hour)
	require.NoError(t, err)
	_, err = VerifyJWT(token, []byte("other"))
	assert.Error(t, err)

	expired, _, err := GenerateToken(secret, session, -time.Minute)
	require.NoError(t, err)
	_, err = VerifyJWT(expired, secret)
	assert.Error(t, err)

	_, err = VerifyJWT("not.a.token", secret)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	id, ok := ParseID(" 12 ")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	for _, s := range []string{"", "0", "-3", "abc", "1.5"} {
		_, ok := ParseID(s)
		assert.False(t, ok, s)
	}

	assert.Equal(t, []string{"http://a", "http://b"}, SplitList(" http://a, ,http://b,"))
	assert.Nil(t, SplitList(""))
}
