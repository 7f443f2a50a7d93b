package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Iqbalshah786/inventory/internal/core/apperror"
	"github.com/Iqbalshah786/inventory/internal/core/id"
)

type fakeAdminRepo struct {
	byID map[id.ID]*Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: make(map[id.ID]*Admin)}
}

func (f *fakeAdminRepo) Create(_ context.Context, a *Admin) error {
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAdminRepo) GetByUsername(_ context.Context, username string) (*Admin, error) {
	for _, a := range f.byID {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) GetByID(_ context.Context, adminID id.ID) (*Admin, error) {
	if a, ok := f.byID[adminID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAdminRepo) UpdateUsername(_ context.Context, adminID id.ID, username string) error {
	f.byID[adminID].Username = username
	return nil
}

func (f *fakeAdminRepo) UpdatePassword(_ context.Context, adminID id.ID, hash string) error {
	f.byID[adminID].PasswordHash = hash
	return nil
}

func (f *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, NewTokenIssuer("test-secret", time.Hour), nil)
}

func TestEnsureAdminAndLogin(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "s3cretpass"))

	// Second call must not overwrite the existing account.
	require.NoError(t, svc.EnsureAdmin(ctx, "other", "otherpass"))
	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(1), count)

	token, admin, err := svc.Login(ctx, "admin", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", admin.Username)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, admin.ID.String(), claims.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "s3cretpass"))

	_, _, err := svc.Login(ctx, "admin", "wrong")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)

	// Unknown user yields the same error shape.
	_, _, err2 := svc.Login(ctx, "nobody", "wrong")
	require.Error(t, err2)
	appErr2, _ := apperror.AsAppError(err2)
	assert.Equal(t, appErr.Message, appErr2.Message)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestService(newFakeAdminRepo())

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuerA := NewTokenIssuer("secret-a", time.Hour)
	issuerB := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuerA.Issue(id.New(), "admin")
	require.NoError(t, err)

	_, err = issuerB.Validate(token)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "s3cretpass"))
	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, admin.ID, "wrong", "newpassword")
	require.Error(t, err)

	err = svc.ChangePassword(ctx, admin.ID, "s3cretpass", "short")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(ctx, admin.ID, "s3cretpass", "newpassword"))

	_, _, err = svc.Login(ctx, "admin", "newpassword")
	assert.NoError(t, err)
	_, _, err = svc.Login(ctx, "admin", "s3cretpass")
	assert.Error(t, err)
}

func TestChangeUsername(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "admin", "s3cretpass"))
	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.ChangeUsername(ctx, admin.ID, "boss"))

	_, _, err = svc.Login(ctx, "boss", "s3cretpass")
	assert.NoError(t, err)
}
