package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
)

// ──────────────────────────────────────────────────────────────────────────────
// Querier falso: registra la última sentencia y devuelve respuestas fijas
// ──────────────────────────────────────────────────────────────────────────────

type fakeQuerier struct {
	tag      string
	execErr  error
	queryErr error
	rowErr   error

	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	return pgconn.NewCommandTag(f.tag), nil
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return emptyRows{}, nil
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return errRow{err: f.rowErr}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT 0") }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryRepo_GetByIDSinFilasDevuelveNil(t *testing.T) {
	q := &fakeQuerier{rowErr: pgx.ErrNoRows}
	repo := postgres.NewCategoryRepository(q)

	c, err := repo.GetByID(context.Background(), "x")

	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Equal(t, []any{"x"}, q.lastArgs)
}

func TestCategoryRepo_GetByIDErrorDeConexion(t *testing.T) {
	repo := postgres.NewCategoryRepository(&fakeQuerier{rowErr: errors.New("conexión rechazada")})

	_, err := repo.GetByID(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión rechazada")
}

func TestCategoryRepo_UpdateSinFilasEsNotFound(t *testing.T) {
	repo := postgres.NewCategoryRepository(&fakeQuerier{tag: "UPDATE 0"})
	name := "Boots"

	err := repo.Update(context.Background(), "x", entity.CategoryPatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepo_UpdatePasaCamposNil(t *testing.T) {
	q := &fakeQuerier{tag: "UPDATE 1"}
	repo := postgres.NewCategoryRepository(q)
	name := "Boots"

	require.NoError(t, repo.Update(context.Background(), "x", entity.CategoryPatch{Name: &name}))

	require.Len(t, q.lastArgs, 3)
	assert.Equal(t, "x", q.lastArgs[0])
	assert.Equal(t, &name, q.lastArgs[1])
	assert.Nil(t, q.lastArgs[2], "image_url nil se conserva vía COALESCE")
}

func TestCategoryRepo_DeleteSinFilasEsNotFound(t *testing.T) {
	repo := postgres.NewCategoryRepository(&fakeQuerier{tag: "DELETE 0"})

	assert.ErrorIs(t, repo.Delete(context.Background(), "x"), domain.ErrNotFound)
}

func TestCategoryRepo_CreateIDDuplicado(t *testing.T) {
	repo := postgres.NewCategoryRepository(&fakeQuerier{execErr: &pgconn.PgError{Code: "23505"}})

	err := repo.Create(context.Background(), &entity.Category{ID: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "id duplicado")
}

func TestCategoryRepo_ListByIDsVacioNoConsulta(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewCategoryRepository(q)

	list, err := repo.ListByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, q.lastSQL)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_ListSinFiltro(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewProductRepository(q)

	list, err := repo.List(context.Background(), entity.ProductFilter{})

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotContains(t, q.lastSQL, "WHERE")
	assert.Empty(t, q.lastArgs)
}

func TestProductRepo_ListConFiltroDeCategoria(t *testing.T) {
	q := &fakeQuerier{}
	repo := postgres.NewProductRepository(q)

	_, err := repo.List(context.Background(), entity.ProductFilter{CategoryID: "cat-1"})

	require.NoError(t, err)
	assert.Contains(t, q.lastSQL, "WHERE category_id = $1")
	assert.Equal(t, []any{"cat-1"}, q.lastArgs)
}

func TestProductRepo_UpdateSinFilasEsNotFound(t *testing.T) {
	repo := postgres.NewProductRepository(&fakeQuerier{tag: "UPDATE 0"})
	price := decimal.RequireFromString("1.5")

	err := repo.Update(context.Background(), "x", entity.ProductPatch{Price: &price})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_DeleteErrorDeConexion(t *testing.T) {
	repo := postgres.NewProductRepository(&fakeQuerier{execErr: errors.New("timeout")})

	err := repo.Delete(context.Background(), "x")

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureSchema_EjecutaDDL(t *testing.T) {
	q := &fakeQuerier{tag: "CREATE TABLE"}

	require.NoError(t, postgres.EnsureSchema(context.Background(), q))

	assert.Contains(t, q.lastSQL, "products")
}
