package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Freeeeeet/courier_scheduler/internal/auth"
	"github.com/Freeeeeet/courier_scheduler/internal/model"
)

var testLinkCodes = auth.NewManager("test-secret-key-long-enough", time.Hour)

func newCourierFixture() (*memStore, *CourierService, *model.Profile) {
	st := newMemStore()
	svc := NewCourierService(memProfiles{st}, memIdentities{st}, testLinkCodes, zap.NewNop())
	return st, svc, st.addProfile(model.RoleAdmin, "Куратор")
}

func TestCreateCourier(t *testing.T) {
	st, svc, admin := newCourierFixture()

	profile, err := svc.Create(context.Background(), admin.ID, NewCourier{
		Email:    "  Ivan@Example.com ",
		Name:     " Иван ",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RoleCourier, profile.Role)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "Иван", *profile.Name)
	require.NotNil(t, profile.Email)
	assert.Equal(t, "ivan@example.com", *profile.Email)

	identity := st.identities["ivan@example.com"]
	require.NotNil(t, identity)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("secret1")))
}

func TestCreateCourier_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		in      NewCourier
		actor   func(st *memStore, admin *model.Profile) *model.Profile
		wantErr error
	}{
		{
			name:    "missing email",
			in:      NewCourier{Password: "secret1"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing password",
			in:      NewCourier{Email: "a@b.ru"},
			wantErr: ErrMissingFields,
		},
		{
			name: "missing fields checked before role",
			in:   NewCourier{Email: "a@b.ru"},
			actor: func(st *memStore, _ *model.Profile) *model.Profile {
				return st.addProfile(model.RoleCourier, "")
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "not admin",
			in:   NewCourier{Email: "a@b.ru", Password: "secret1"},
			actor: func(st *memStore, _ *model.Profile) *model.Profile {
				return st.addProfile(model.RoleCourier, "")
			},
			wantErr: ErrNotAdmin,
		},
		{
			name:    "weak password",
			in:      NewCourier{Email: "a@b.ru", Password: "12345"},
			wantErr: ErrWeakPassword,
		},
		{
			name:    "invalid email",
			in:      NewCourier{Email: "not-an-email", Password: "secret1"},
			wantErr: ErrInvalidEmail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, svc, admin := newCourierFixture()
			actor := admin
			if tt.actor != nil {
				actor = tt.actor(st, admin)
			}
			_, err := svc.Create(ctx, actor.ID, tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, st.identities)
		})
	}
}

func TestCreateCourier_DuplicateEmail(t *testing.T) {
	_, svc, admin := newCourierFixture()
	ctx := context.Background()
	in := NewCourier{Email: "a@b.ru", Password: "secret1"}

	_, err := svc.Create(ctx, admin.ID, in)
	require.NoError(t, err)

	in.Email = "A@B.ru"
	_, err = svc.Create(ctx, admin.ID, in)
	assert.ErrorIs(t, err, ErrIdentityExists)
	assert.Equal(t, "Пользователь с таким email уже существует", ErrorMessage(err))
}

func TestCreateAdmin(t *testing.T) {
	_, svc, _ := newCourierFixture()

	profile, err := svc.CreateAdmin(context.Background(), NewCourier{Email: "boss@b.ru", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, profile.IsAdmin())
	assert.Nil(t, profile.Name)
}

func TestRename(t *testing.T) {
	st, svc, admin := newCourierFixture()
	ctx := context.Background()
	courier := st.addProfile(model.RoleCourier, "Иван")

	renamed, err := svc.Rename(ctx, admin.ID, courier.ID, "  Иван Петров ")
	require.NoError(t, err)
	require.NotNil(t, renamed.Name)
	assert.Equal(t, "Иван Петров", *renamed.Name)

	cleared, err := svc.Rename(ctx, admin.ID, courier.ID, "   ")
	require.NoError(t, err)
	assert.Nil(t, cleared.Name)

	_, err = svc.Rename(ctx, courier.ID, admin.ID, "Хакер")
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestListCouriers(t *testing.T) {
	st, svc, admin := newCourierFixture()
	courier := st.addProfile(model.RoleCourier, "Иван")

	profiles, err := svc.ListCouriers(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	_, err = svc.ListCouriers(context.Background(), courier.ID)
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestLinkTelegram(t *testing.T) {
	st, svc, _ := newCourierFixture()
	ctx := context.Background()
	first := st.addProfile(model.RoleCourier, "Иван")
	second := st.addProfile(model.RoleCourier, "Пётр")
	chatID := int64(1001)

	code, err := testLinkCodes.GenerateLinkCode(chatID)
	require.NoError(t, err)

	linked, err := svc.LinkTelegram(ctx, first.ID, &code)
	require.NoError(t, err)
	require.NotNil(t, linked.TelegramChatID)
	assert.Equal(t, chatID, *linked.TelegramChatID)

	found, err := svc.ByTelegramChat(ctx, chatID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	_, err = svc.LinkTelegram(ctx, second.ID, &code)
	assert.ErrorIs(t, err, ErrChatLinked)

	unlinked, err := svc.LinkTelegram(ctx, first.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, unlinked.TelegramChatID)

	missing, err := svc.ByTelegramChat(ctx, chatID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLinkTelegram_RequiresValidCode(t *testing.T) {
	st, svc, _ := newCourierFixture()
	ctx := context.Background()
	courier := st.addProfile(model.RoleCourier, "Иван")

	foreign, err := auth.NewManager("another-secret-key-long-enough", time.Hour).GenerateLinkCode(1001)
	require.NoError(t, err)
	access, err := testLinkCodes.GenerateToken(courier.ID, string(model.RoleCourier))
	require.NoError(t, err)
	blank := "   "

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"bare chat id", "1001", ErrInvalidLinkCode},
		{"foreign signature", foreign, ErrInvalidLinkCode},
		{"access token", access, ErrInvalidLinkCode},
		{"blank", blank, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := tt.code
			_, err := svc.LinkTelegram(ctx, courier.ID, &code)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	profile, err := memProfiles{st}.GetByID(ctx, courier.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.TelegramChatID)
}
