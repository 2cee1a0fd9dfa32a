package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEngine(t)
	user := domain.User{FirstName: "Sana", LastName: "Khan", UserID: "sana", Password: "pw123"}
	require.NoError(t, e.RegisterUser(user))

	got, err := e.Login("sana", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "Sana", got.FirstName)

	_, err = e.Login("sana", "wrong")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = e.Login("nobody", "pw123")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterUserValidation(t *testing.T) {
	e := newTestEngine(t)

	err := e.RegisterUser(domain.User{Password: "pw"})
	require.ErrorIs(t, err, ErrValidation)

	err = e.RegisterUser(domain.User{UserID: "sana"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegisterUserRejectsDuplicateID(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.RegisterUser(domain.User{UserID: "sana", Password: "pw"}))

	err := e.RegisterUser(domain.User{UserID: "sana", Password: "other"})
	require.ErrorIs(t, err, ErrInvalidOperation)
	require.Len(t, e.Users(), 1)
}
