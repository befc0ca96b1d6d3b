package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"userhub-backend/internal/models"
	"userhub-backend/internal/store"
)

func newTestService(t *testing.T) *UserService {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewUserService(st, nil)
}

func janeDraft() models.UserDraft {
	return models.UserDraft{
		Fullname: "Jane Doe",
		Email:    "jane@x.com",
		Username: "jane_d",
		Password: "secret1",
		Gender:   "female",
		Hobbies:  []string{"reading"},
		Country:  "Norway",
	}
}

func TestRegisterAndFind(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Register(janeDraft())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// The stored credential is a hash, never the plaintext.
	assert.NotEqual(t, "secret1", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))

	found, err := svc.GetUserByUsername("jane_d")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	byID, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)
}

func TestRegisterDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.UserDraft)
		wantErr error
	}{
		{
			name:    "same username",
			mutate:  func(d *models.UserDraft) { d.Email = "other@x.com" },
			wantErr: ErrUsernameTaken,
		},
		{
			name: "same email different case",
			mutate: func(d *models.UserDraft) {
				d.Username = "someone_else"
				d.Email = "JANE@X.COM"
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			_, err := svc.Register(janeDraft())
			require.NoError(t, err)

			dup := janeDraft()
			tt.mutate(&dup)
			_, err = svc.Register(dup)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterUsernameCaseSensitive(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(janeDraft())
	require.NoError(t, err)

	other := janeDraft()
	other.Username = "JANE_D"
	other.Email = "other@x.com"
	_, err = svc.Register(other)
	assert.NoError(t, err, "usernames differing only in case are distinct")
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(janeDraft())
	require.NoError(t, err)

	user, err := svc.Authenticate("jane_d", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jane_d", user.Username)
	assert.NotEmpty(t, user.Password, "service returns the record as stored; callers strip the hash")

	// Wrong password and unknown username yield the identical failure.
	_, errWrongPass := svc.Authenticate("jane_d", "wrong")
	_, errNoUser := svc.Authenticate("nobody", "secret1")
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
}

func TestExistsChecks(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(janeDraft())
	require.NoError(t, err)

	taken, err := svc.UsernameExists("jane_d")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = svc.UsernameExists("jane_D")
	require.NoError(t, err)
	assert.False(t, taken, "username comparison is case-sensitive")

	taken, err = svc.EmailExists("Jane@X.com")
	require.NoError(t, err)
	assert.True(t, taken, "email comparison is case-insensitive")

	taken, err = svc.EmailExists("unknown@x.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateUser(t *testing.T) {
	svc := newTestService(t)
	created, err := svc.Register(janeDraft())
	require.NoError(t, err)

	fullname := "Jane A. Doe"
	country := "Sweden"
	updated, err := svc.UpdateUser(created.ID, models.UserUpdate{
		Fullname: &fullname,
		Country:  &country,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane A. Doe", updated.Fullname)
	assert.Equal(t, "Sweden", updated.Country)
	// Untouched fields survive the merge.
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	persisted, err := svc.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, persisted)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(janeDraft())
	require.NoError(t, err)

	second := janeDraft()
	second.Username = "john_s"
	second.Email = "john@x.com"
	john, err := svc.Register(second)
	require.NoError(t, err)

	conflicting := "JANE@x.com"
	_, err = svc.UpdateUser(john.ID, models.UserUpdate{Email: &conflicting})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := newTestService(t)
	name := "Nobody"
	_, err := svc.UpdateUser("missing-id", models.UserUpdate{Fullname: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserIdempotence(t *testing.T) {
	svc := newTestService(t)
	created, err := svc.Register(janeDraft())
	require.NoError(t, err)

	second := janeDraft()
	second.Username = "john_s"
	second.Email = "john@x.com"
	_, err = svc.Register(second)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(created.ID))

	_, err = svc.GetUserByID(created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Second delete reports not-found and leaves the collection unchanged.
	err = svc.DeleteUser(created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	remaining, err := svc.GetUserByUsername("john_s")
	require.NoError(t, err)
	assert.Equal(t, "john@x.com", remaining.Email)
}
