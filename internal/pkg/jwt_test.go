package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(42, 1)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, 1, claims.Role)
	assert.Equal(t, "access", claims.Subject)
}

func TestParseAccessRejectsGarbage(t *testing.T) {
	_, err := ParseAccess("definitely-not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshTokenCannotBeUsedAsAccess(t *testing.T) {
	pair, err := GeneratePair(7, 0)
	require.NoError(t, err)

	// refresh 用另一把密钥签名，access 解析必须失败
	_, err = ParseAccess(pair.RefreshToken)
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	pair, err := GeneratePair(7, 0)
	require.NoError(t, err)

	fresh, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
}

func TestAccessTokenCannotRefresh(t *testing.T) {
	pair, err := GeneratePair(7, 0)
	require.NoError(t, err)

	_, err = Refresh(pair.AccessToken)
	assert.Error(t, err)
}
