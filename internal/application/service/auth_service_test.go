package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sulayman101/puntrms/internal/domain/entity"
	"github.com/sulayman101/puntrms/pkg/apperror"
	"github.com/sulayman101/puntrms/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*AuthService, *StaffService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	staffRepo := &fakeStaffRepo{store: store}
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(staffRepo, jwtManager), NewStaffService(staffRepo), store
}

func seedStaffWithPIN(t *testing.T, store *fakeStore, phone, pin string) *entity.Staff {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	require.NoError(t, err)
	st := &entity.Staff{Name: "Asha", Phone: phone, PINHash: string(hash), Role: entity.RoleWaiter}
	require.NoError(t, (&fakeStaffRepo{store: store}).Create(context.Background(), st))
	return st
}

func TestLoginSuccess(t *testing.T) {
	auth, _, store := newAuthFixture(t)
	seedStaffWithPIN(t, store, "0712345678", "1234")

	staff, tokens, err := auth.Login(context.Background(), "0712345678", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Asha", staff.Name)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLoginWrongPIN(t *testing.T) {
	auth, _, store := newAuthFixture(t)
	seedStaffWithPIN(t, store, "0712345678", "1234")

	_, _, err := auth.Login(context.Background(), "0712345678", "9999")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestLoginUnknownPhoneSameError(t *testing.T) {
	auth, _, _ := newAuthFixture(t)

	_, _, err := auth.Login(context.Background(), "0700000001", "1234")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshRoundTrip(t *testing.T) {
	auth, _, store := newAuthFixture(t)
	seeded := seedStaffWithPIN(t, store, "0712345678", "1234")

	_, tokens, err := auth.Login(context.Background(), "0712345678", "1234")
	require.NoError(t, err)

	staff, fresh, err := auth.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, staff.ID)
	assert.NotEmpty(t, fresh.AccessToken)

	_, _, err = auth.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestCreateStaffValidation(t *testing.T) {
	_, staffSvc, _ := newAuthFixture(t)

	_, err := staffSvc.CreateStaff(context.Background(), &CreateStaffInput{
		Name: "Asha", Phone: "0712345678", PIN: "12", Role: entity.RoleWaiter,
	})
	assert.Error(t, err, "short PIN must be rejected")

	_, err = staffSvc.CreateStaff(context.Background(), &CreateStaffInput{
		Name: "Asha", Phone: "0712345678", PIN: "12ab", Role: entity.RoleWaiter,
	})
	assert.Error(t, err, "non-digit PIN must be rejected")

	_, err = staffSvc.CreateStaff(context.Background(), &CreateStaffInput{
		Name: "Asha", Phone: "0712345678", PIN: "1234", Role: "owner",
	})
	assert.Error(t, err, "unknown role must be rejected")

	staff, err := staffSvc.CreateStaff(context.Background(), &CreateStaffInput{
		Name: "Asha", Phone: "0712345678", PIN: "1234",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWaiter, staff.Role, "role defaults to waiter")
	assert.NotEqual(t, "1234", staff.PINHash, "PIN is stored hashed")

	_, err = staffSvc.CreateStaff(context.Background(), &CreateStaffInput{
		Name: "Other", Phone: "0712345678", PIN: "1234",
	})
	assert.Error(t, err, "duplicate phone must be rejected")
}

func TestResetPIN(t *testing.T) {
	auth, staffSvc, store := newAuthFixture(t)
	seeded := seedStaffWithPIN(t, store, "0712345678", "1234")

	require.NoError(t, staffSvc.ResetPIN(context.Background(), seeded.ID, "567890"))

	_, _, err := auth.Login(context.Background(), "0712345678", "1234")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, _, err = auth.Login(context.Background(), "0712345678", "567890")
	assert.NoError(t, err)
}
