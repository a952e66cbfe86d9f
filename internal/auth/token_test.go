package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/testutil"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

const testSecret = "test-secret"

func setupTokens(t *testing.T) (*DBTokenService, *user.User) {
	t.Helper()
	testutil.SetupDB(t, &user.User{}, &Token{})

	u := &user.User{Username: "alice", Email: "a@x.com", PasswordHash: "h"}
	require.NoError(t, user.Create(u))
	return NewDBTokenService(testSecret), u
}

func TestIssueIsIdempotent(t *testing.T) {
	svc, u := setupTokens(t)

	first, err := svc.Issue(u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := svc.Issue(u.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, database.DB.Model(&Token{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVerify(t *testing.T) {
	svc, u := setupTokens(t)

	key, err := svc.Issue(u.ID)
	require.NoError(t, err)

	id, err := svc.Verify(key)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = svc.Verify("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signé avec un autre secret
	forged, err := NewDBTokenService("other").sign(u.ID)
	require.NoError(t, err)
	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Bien signé mais jamais enregistré
	unknown, err := svc.sign(u.ID)
	require.NoError(t, err)
	_, err = svc.Verify(unknown)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRevoke(t *testing.T) {
	svc, u := setupTokens(t)

	key, err := svc.Issue(u.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(u.ID))
	_, err = svc.Verify(key)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.ErrorIs(t, svc.Revoke(u.ID), ErrNoToken)

	// Un nouveau login produit une nouvelle clé
	fresh, err := svc.Issue(u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, key, fresh)
}
