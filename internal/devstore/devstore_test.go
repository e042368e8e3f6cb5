package devstore

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalldk/storefront/pkg/config"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/security"
	"github.com/metalldk/storefront/pkg/storefront"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	hasher := security.NewHasher(config.PasswordConfig{ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32})
	return New(hasher)
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, err := s.CreateUser(ctx, CreateUserInput{Email: " Ivan@Example.com ", Phone: "+7 (912) 345-67-89", Password: "secret", FirstName: "Иван", LastName: "Петров"})
	require.NoError(t, err)
	assert.Equal(t, "ivan@example.com", user.Email)
	assert.NotEqual(t, "secret", user.PasswordHash)

	byEmail, err := s.Authenticate(ctx, "IVAN@example.com", "", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byPhone, err := s.Authenticate(ctx, "", "+7 (912) 345-67-89", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byPhone.ID)

	_, err = s.Authenticate(ctx, "ivan@example.com", "", "wrong")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = s.Authenticate(ctx, "nobody@example.com", "", "secret")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	profile := user.Profile()
	assert.Equal(t, "Иван Петров", profile.Name)
	assert.Equal(t, "ИП", profile.Initials())
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.CreateUser(ctx, CreateUserInput{Email: "a@b.ru", Phone: "+7 (900) 000-00-01", Password: "x"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, CreateUserInput{Email: "A@B.ru", Phone: "+7 (900) 000-00-02", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = s.CreateUser(ctx, CreateUserInput{Email: "c@d.ru", Phone: "+7 (900) 000-00-01", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = s.CreateUser(ctx, CreateUserInput{Email: "c@d.ru", Phone: "", Password: "x"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ivan, err := s.CreateUser(ctx, CreateUserInput{Email: "ivan@example.com", Phone: "+7 (912) 345-67-89", Password: "secret"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, CreateUserInput{Email: "olga@example.com", Phone: "+7 (921) 111-22-33", Password: "secret"})
	require.NoError(t, err)

	// keeping the same email and phone is not a conflict
	updated, err := s.UpdateProfile(ctx, ivan.ID, UpdateProfileInput{FirstName: " Иван ", Email: "ivan@example.com", Phone: "+7 (912) 345-67-89"})
	require.NoError(t, err)
	assert.Equal(t, "Иван", updated.Profile().Name)

	_, err = s.UpdateProfile(ctx, ivan.ID, UpdateProfileInput{Email: "OLGA@example.com", Phone: "+7 (912) 345-67-89"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))
	_, err = s.UpdateProfile(ctx, ivan.ID, UpdateProfileInput{Email: "ivan@example.com", Phone: "+7 (921) 111-22-33"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeConflict))

	_, err = s.UpdateProfile(ctx, ivan.ID, UpdateProfileInput{Email: "ivan.p@example.com", Phone: "+7 (912) 000-00-00"})
	require.NoError(t, err)
	_, err = s.Authenticate(ctx, "ivan@example.com", "", "secret")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	byPhone, err := s.Authenticate(ctx, "", "+7 (912) 000-00-00", "secret")
	require.NoError(t, err)
	assert.Equal(t, ivan.ID, byPhone.ID)

	// the released email is free again
	_, err = s.CreateUser(ctx, CreateUserInput{Email: "ivan@example.com", Phone: "+7 (999) 999-99-99", Password: "x"})
	require.NoError(t, err)

	_, err = s.UpdateProfile(ctx, uuid.New(), UpdateProfileInput{Email: "a@b.cd", Phone: "+7 (900) 000-00-00"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	_, err = s.UpdateProfile(ctx, ivan.ID, UpdateProfileInput{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUserByIDUnknown(t *testing.T) {
	s := newTestStore(t)
	_, err := s.UserByID(context.Background(), [16]byte{1})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestCartUpsertSetAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.AddToCart(ctx, "c1", storefront.CartItem{ID: "rebar", Title: "Rebar", Price: 100, Qty: 2}))
	require.NoError(t, s.AddToCart(ctx, "c1", storefront.CartItem{ID: "rebar", Qty: 3}))
	require.NoError(t, s.AddToCart(ctx, "c1", storefront.CartItem{ID: "pipe", Title: "Pipe"}))

	lines := s.Cart(ctx, "c1")
	require.Len(t, lines, 2)
	assert.Equal(t, 5, lines[0].Qty)
	assert.Equal(t, 1, lines[1].Qty)
	assert.Empty(t, s.Cart(ctx, "other"))

	err := s.AddToCart(ctx, "c1", storefront.CartItem{ID: "  "})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	require.NoError(t, s.SetCartQty(ctx, "c1", "pipe", 0))
	require.NoError(t, s.SetCartQty(ctx, "c1", "rebar", 7))
	lines = s.Cart(ctx, "c1")
	assert.Equal(t, 7, lines[0].Qty)
	assert.Equal(t, 1, lines[1].Qty)

	s.RemoveFromCart(ctx, "c1", "rebar")
	lines = s.Cart(ctx, "c1")
	require.Len(t, lines, 1)
	assert.Equal(t, "pipe", lines[0].ID)

	s.ClearCart(ctx, "c1")
	assert.Empty(t, s.Cart(ctx, "c1"))
}

func TestPlaceBatch(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.PlaceBatch(ctx, storefront.BatchOrder{}, nil)
	require.Error(t, err)
	assert.Equal(t, "empty items", pkgerrors.UserMessage(err))

	user := &User{Email: "ivan@example.com", Phone: "+7 (912) 345-67-89"}
	batch, err := s.PlaceBatch(ctx, storefront.BatchOrder{Items: []storefront.BatchItem{
		{ItemID: "1", Title: "Арматура", Qty: 3, Price: 100.10},
		{ItemID: "2", Title: "Лист", Qty: 0, Price: 50},
	}}, user)
	require.NoError(t, err)
	require.Len(t, batch.Orders, 2)
	assert.Equal(t, "+7 (912) 345-67-89", batch.Phone)
	assert.Equal(t, 1, batch.Orders[1].Qty)
	assert.Equal(t, "300.3", batch.Orders[0].Total.String())
	assert.Equal(t, "350.3", batch.Total.String())
	assert.True(t, strings.HasSuffix(batch.Summary(), "Total: 350.30 ₽"))

	guest, err := s.PlaceBatch(ctx, storefront.BatchOrder{Phone: " +7 (900) 111-22-33 ", Items: []storefront.BatchItem{{ItemID: "3", Title: "Балка", Qty: 1, Price: 10}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "+7 (900) 111-22-33", guest.Phone)
	assert.Empty(t, guest.UserEmail)

	orders := s.ItemOrders(ctx)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(3), orders[0].ID)
	assert.Equal(t, "active", orders[0].Status)
}

func TestCreateServiceOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	o, err := s.CreateServiceOrder(ctx, storefront.ServiceOrder{Service: " Резка ", Name: "Иван", Phone: "+7 (912) 345-67-89"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, "Резка", o.Service)
	assert.Equal(t, "active", o.Status)

	_, err = s.CreateServiceOrder(ctx, storefront.ServiceOrder{Service: "Резка"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Len(t, s.ServiceOrders(ctx), 1)
}

func TestSeedNewsAndFeatured(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.Seed(ctx)

	all := s.News(ctx, 0)
	require.Len(t, all, 9)
	assert.Equal(t, int64(9), all[0].ID)
	assert.Equal(t, int64(1), all[8].ID)

	y2024 := s.News(ctx, 2024)
	require.Len(t, y2024, 5)
	for _, item := range y2024 {
		assert.Equal(t, 2024, item.PublishedAt.Year())
	}
	assert.Empty(t, s.News(ctx, 1999))

	featured := s.Featured(ctx)
	require.NotEmpty(t, featured)
	for i := 1; i < len(featured); i++ {
		assert.Greater(t, featured[i-1].ID, featured[i].ID)
	}

	links := s.Social(ctx)
	assert.NotEmpty(t, links.Networks())
}
