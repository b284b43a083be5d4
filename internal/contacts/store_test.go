package contacts

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewStore(mock), mock
}

func TestNewStoreNilPool(t *testing.T) {
	assert.Nil(t, NewStore(nil))
}

func TestStoreFindByPhone(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT phone, name, type").
		WithArgs("+963933123456").
		WillReturnRows(pgxmock.NewRows([]string{"phone", "name", "type"}).
			AddRow("+963933123456", "محمد أحمد", "mobile"))

	c, err := store.FindByPhone(context.Background(), "+963933123456")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "محمد أحمد", c.Name)
	assert.Equal(t, LineTypeMobile, c.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindByPhoneMissing(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT phone, name, type").
		WithArgs("+963999999999").
		WillReturnRows(pgxmock.NewRows([]string{"phone", "name", "type"}))

	c, err := store.FindByPhone(context.Background(), "+963999999999")
	require.NoError(t, err)
	assert.Nil(t, c)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreFindByPhoneError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT phone, name, type").
		WithArgs("+963933123456").
		WillReturnError(errors.New("connection reset"))

	c, err := store.FindByPhone(context.Background(), "+963933123456")
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStoreInsertValidates(t *testing.T) {
	store, mock := newMockStore(t)

	err := store.Insert(context.Background(), Contact{Phone: "+963933123456"})
	assert.ErrorIs(t, err, ErrInvalidContact)

	mock.ExpectExec("INSERT INTO contacts").
		WithArgs("+963933123456", "محمد أحمد", "mobile").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, store.Insert(context.Background(), DefaultSeed[0]))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSeedIfEmptySeedsEmptyTable(t *testing.T) {
	store, mock := newMockStore(t)
	seed := DefaultSeed[:2]

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	for _, c := range seed {
		mock.ExpectExec("INSERT INTO contacts").
			WithArgs(c.Phone, c.Name, string(c.Type)).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	n, err := store.SeedIfEmpty(context.Background(), seed)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSeedIfEmptySkipsPopulatedTable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	n, err := store.SeedIfEmpty(context.Background(), DefaultSeed)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCount(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
