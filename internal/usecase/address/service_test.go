package address

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	domaddress "example.com/storefront/internal/domain/address"
	domuser "example.com/storefront/internal/domain/user"
)

type mockAddressRepository struct {
	book       domaddress.Book
	getErr     error
	createErr  error
	defaultErr error

	created    []domaddress.NewAddress
	defaultSet []string
}

func (m *mockAddressRepository) GetBook(ctx context.Context, s domuser.Session) (domaddress.Book, error) {
	if m.getErr != nil {
		return domaddress.Book{}, m.getErr
	}
	return m.book, nil
}

func (m *mockAddressRepository) Create(ctx context.Context, s domuser.Session, in domaddress.NewAddress) ([]domaddress.ShippingAddress, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, in)
	m.book.Addresses = append(m.book.Addresses, domaddress.ShippingAddress{
		ID:           fmt.Sprintf("addr-%d", len(m.book.Addresses)+1),
		ReceiverName: in.ReceiverName,
		Phone:        in.Phone,
		Address:      in.Address,
		Ward:         in.Ward,
		District:     in.District,
		City:         in.City,
		Type:         in.Type,
	})
	return m.book.Addresses, nil
}

func (m *mockAddressRepository) SetDefault(ctx context.Context, s domuser.Session, addressID string) error {
	if m.defaultErr != nil {
		return m.defaultErr
	}
	m.defaultSet = append(m.defaultSet, addressID)
	m.book.DefaultID = addressID
	return nil
}

var testSession = domuser.Session{UserID: "u1", Email: "lan@example.com", Token: "tok"}

func newAddressInput() domaddress.NewAddress {
	return domaddress.NewAddress{
		ReceiverName: "Lan",
		Phone:        "0912345678",
		Address:      "1 Lê Đức Thọ",
		Ward:         domaddress.Place{ID: "w", Name: "Phường Mỹ Đình 1"},
		District:     domaddress.Place{ID: "d", Name: "Quận Nam Từ Liêm"},
		City:         domaddress.Place{ID: "c", Name: "Hà Nội"},
	}
}

func TestAdd_FirstAddressBecomesDefault(t *testing.T) {
	repo := &mockAddressRepository{}
	svc := NewService(repo, zerolog.Nop())

	created, err := svc.Add(context.Background(), testSession, newAddressInput(), false)

	require.NoError(t, err)
	require.Equal(t, "addr-1", created.ID)
	require.True(t, created.IsDefault)
	require.Equal(t, domaddress.TypeHome, created.Type)
	require.Equal(t, []string{"addr-1"}, repo.defaultSet)
}

func TestAdd_KeepsExistingDefaultWithoutFlag(t *testing.T) {
	repo := &mockAddressRepository{
		book: domaddress.Book{
			Addresses: []domaddress.ShippingAddress{{ID: "addr-1"}},
			DefaultID: "addr-1",
		},
	}
	svc := NewService(repo, zerolog.Nop())

	created, err := svc.Add(context.Background(), testSession, newAddressInput(), false)

	require.NoError(t, err)
	require.Equal(t, "addr-2", created.ID)
	require.False(t, created.IsDefault)
	require.Empty(t, repo.defaultSet)
}

func TestAdd_FlagOverridesExistingDefault(t *testing.T) {
	repo := &mockAddressRepository{
		book: domaddress.Book{
			Addresses: []domaddress.ShippingAddress{{ID: "addr-1"}},
			DefaultID: "addr-1",
		},
	}
	svc := NewService(repo, zerolog.Nop())

	created, err := svc.Add(context.Background(), testSession, newAddressInput(), true)

	require.NoError(t, err)
	require.True(t, created.IsDefault)
	require.Equal(t, []string{"addr-2"}, repo.defaultSet)
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *domaddress.NewAddress)
		wantErr error
	}{
		{name: "Missing receiver", mutate: func(in *domaddress.NewAddress) { in.ReceiverName = "" }, wantErr: domaddress.ErrIncompleteAddress},
		{name: "Missing phone", mutate: func(in *domaddress.NewAddress) { in.Phone = " " }, wantErr: domaddress.ErrIncompleteAddress},
		{name: "Missing ward", mutate: func(in *domaddress.NewAddress) { in.Ward = domaddress.Place{} }, wantErr: domaddress.ErrIncompleteAddress},
		{name: "Unknown type", mutate: func(in *domaddress.NewAddress) { in.Type = "warehouse" }, wantErr: domaddress.ErrInvalidAddressType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockAddressRepository{}
			svc := NewService(repo, zerolog.Nop())
			in := newAddressInput()
			tt.mutate(&in)

			_, err := svc.Add(context.Background(), testSession, in, false)

			require.ErrorIs(t, err, tt.wantErr)
			require.Empty(t, repo.created, "nothing should be sent to the backend")
		})
	}
}

func TestAdd_RequiresSession(t *testing.T) {
	repo := &mockAddressRepository{}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Add(context.Background(), domuser.Session{}, newAddressInput(), false)

	require.ErrorIs(t, err, domuser.ErrNotLoggedIn)
	require.Empty(t, repo.created)
}

func TestAdd_CreateErrorSkipsDefault(t *testing.T) {
	repo := &mockAddressRepository{createErr: errors.New("backend down")}
	svc := NewService(repo, zerolog.Nop())

	_, err := svc.Add(context.Background(), testSession, newAddressInput(), true)

	require.ErrorIs(t, err, repo.createErr)
	require.Empty(t, repo.defaultSet)
}
