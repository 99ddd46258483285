package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hotel-pms-api/internal/application/auth"
	"github.com/jhoicas/hotel-pms-api/internal/application/dto"
	"github.com/jhoicas/hotel-pms-api/internal/domain"
	"github.com/jhoicas/hotel-pms-api/internal/domain/entity"
	"github.com/jhoicas/hotel-pms-api/pkg/jwt"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	byUsername map[string]*entity.User
	err        error
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.byUsername[u.Username] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byUsername[username], nil
}

type fakeBlacklist struct {
	tokens map[string]time.Time
	err    error
}

func (f *fakeBlacklist) IsBlacklisted(_ context.Context, token string) (bool, error) {
	_, ok := f.tokens[token]
	return ok, f.err
}

func (f *fakeBlacklist) Blacklist(_ context.Context, token string, exp time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[token] = exp
	return nil
}

func setup(t *testing.T) (*auth.AuthUseCase, *jwt.Service, *fakeBlacklist) {
	t.Helper()
	hash, err := auth.HashPassword("s3creta-larga")
	require.NoError(t, err)

	users := &fakeUsers{byUsername: map[string]*entity.User{
		"ana": {ID: "u-1", Username: "ana", PasswordHash: hash, UserTypeID: "CSH", UserTypeRole: "Cashier", Status: auth.StatusActive},
		"leo": {ID: "u-2", Username: "leo", PasswordHash: hash, UserTypeID: "RCP", Status: "suspended"},
	}}
	tokens, err := jwt.NewService("secret-de-pruebas", "hotel-pms-test", 60)
	require.NoError(t, err)
	bl := &fakeBlacklist{tokens: map[string]time.Time{}}
	return auth.NewAuthUseCase(users, tokens, bl), tokens, bl
}

// ─── Login ────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc, tokens, _ := setup(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "s3creta-larga"})
	require.NoError(t, err)
	assert.Equal(t, "ana", out.User.Username)
	assert.False(t, out.ExpiresAt.IsZero())

	claims, err := tokens.Parse(out.Token)
	require.NoError(t, err)
	assert.Equal(t, "CSH", claims.UserTypeID)
	assert.Equal(t, "Cashier", claims.UserTypeRole)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "s3creta-larga"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "leo", Password: "s3creta-larga"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─── Logout ───────────────────────────────────────────────────────────────────

func TestLogout_RegistraTokenHastaExpiracion(t *testing.T) {
	uc, tokens, bl := setup(t)
	tok, err := tokens.Generate("u-1", "ana", "CSH", "")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), tok))
	exp, ok := bl.tokens[tok]
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)
}

func TestLogout_TokenInvalido(t *testing.T) {
	uc, _, bl := setup(t)
	assert.ErrorIs(t, uc.Logout(context.Background(), ""), domain.ErrUnauthorized)
	assert.ErrorIs(t, uc.Logout(context.Background(), "no.es.jwt"), domain.ErrUnauthorized)
	assert.Empty(t, bl.tokens)
}

func TestLogout_TokenExpiradoNoSeRegistra(t *testing.T) {
	uc, _, bl := setup(t)
	expired, err := jwt.NewService("secret-de-pruebas", "hotel-pms-test", -1)
	require.NoError(t, err)
	tok, err := expired.Generate("u-1", "ana", "CSH", "")
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), tok))
	assert.Empty(t, bl.tokens)
}

func TestLogout_TokenSinExpiracionSeRechaza(t *testing.T) {
	uc, _, bl := setup(t)
	claims := jwt.Claims{
		RegisteredClaims: gojwt.RegisteredClaims{Issuer: "hotel-pms-test", Subject: "ana"},
		Username:         "ana",
		UserTypeID:       "CSH",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret-de-pruebas"))
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Logout(context.Background(), tok), domain.ErrUnauthorized)
	assert.Empty(t, bl.tokens)
}

func TestLogout_FalloDelAlmacen(t *testing.T) {
	uc, tokens, bl := setup(t)
	bl.err = errors.New("redis caído")
	tok, err := tokens.Generate("u-1", "ana", "CSH", "")
	require.NoError(t, err)

	assert.Error(t, uc.Logout(context.Background(), tok))
}
