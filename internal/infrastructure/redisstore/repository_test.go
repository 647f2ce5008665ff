package redisstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cliente Redis en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeRedis implementa solo los comandos que usan los repositorios. Las transacciones
// ejecutan los comandos en orden sin aislamiento; beforeWrite corre una vez antes de la
// siguiente escritura (SET XX o MULTI) para simular otra escritura tras la lectura.
type fakeRedis struct {
	redis.UniversalClient

	mu          sync.Mutex
	strings     map[string]string
	zsets       map[string]map[string]float64
	beforeWrite func(f *fakeRedis)
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{strings: map[string]string{}, zsets: map[string]map[string]float64{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.strings[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.strings[k]; ok {
			out[i] = v
		}
	}
	return redis.NewSliceResult(out, nil)
}

func (f *fakeRedis) ZRange(_ context.Context, key string, _, _ int64) *redis.StringSliceCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	members := make([]string, 0, len(f.zsets[key]))
	for m := range f.zsets[key] {
		members = append(members, m)
	}
	set := f.zsets[key]
	sort.Slice(members, func(i, j int) bool { return set[members[i]] < set[members[j]] })
	return redis.NewStringSliceResult(members, nil)
}

func (f *fakeRedis) ZRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	return redis.NewIntResult(f.zrem(key, members...), nil)
}

func (f *fakeRedis) SetXX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.runBeforeWrite()
	f.mu.Lock()
	defer f.mu.Unlock()
	return redis.NewBoolResult(f.setIf(key, value, true), nil)
}

func (f *fakeRedis) TxPipelined(_ context.Context, fn func(redis.Pipeliner) error) ([]redis.Cmder, error) {
	f.runBeforeWrite()
	f.mu.Lock()
	defer f.mu.Unlock()
	return nil, fn(&fakePipe{f: f})
}

func (f *fakeRedis) runBeforeWrite() {
	if hook := f.beforeWrite; hook != nil {
		f.beforeWrite = nil
		hook(f)
	}
}

// setIf escribe key si existe (xx) o si no existe (!xx). Devuelve si escribió.
func (f *fakeRedis) setIf(key string, value interface{}, xx bool) bool {
	_, exists := f.strings[key]
	if exists != xx {
		return false
	}
	f.strings[key] = toString(value)
	return true
}

func (f *fakeRedis) zrem(key string, members ...interface{}) int64 {
	var n int64
	for _, m := range members {
		name := fmt.Sprint(m)
		if _, ok := f.zsets[key][name]; ok {
			delete(f.zsets[key], name)
			n++
		}
	}
	return n
}

// deleteCategory reproduce lo que hace CategoryRepo.Delete sobre las claves.
func (f *fakeRedis) deleteCategory(k keys, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, k.category(id))
	f.zrem(k.categories(), id)
}

// deleteProduct reproduce lo que hace ProductRepo.Delete sobre las claves.
func (f *fakeRedis) deleteProduct(k keys, id, categoryID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.strings, k.product(id))
	f.zrem(k.products(), id)
	f.zrem(k.productsByCategory(categoryID), id)
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// fakePipe aplica los comandos directamente sobre fakeRedis (ya bloqueado por TxPipelined).
type fakePipe struct {
	redis.Pipeliner
	f *fakeRedis
}

func (p *fakePipe) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(p.f.setIf(key, value, false), nil)
}

func (p *fakePipe) SetXX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(p.f.setIf(key, value, true), nil)
}

func (p *fakePipe) ZAdd(_ context.Context, key string, members ...redis.Z) *redis.IntCmd {
	set, ok := p.f.zsets[key]
	if !ok {
		set = map[string]float64{}
		p.f.zsets[key] = set
	}
	var n int64
	for _, m := range members {
		name := fmt.Sprint(m.Member)
		if _, ok := set[name]; !ok {
			n++
		}
		set[name] = m.Score
	}
	return redis.NewIntResult(n, nil)
}

func (p *fakePipe) ZRem(_ context.Context, key string, members ...interface{}) *redis.IntCmd {
	return redis.NewIntResult(p.f.zrem(key, members...), nil)
}

func (p *fakePipe) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := p.f.strings[k]; ok {
			delete(p.f.strings, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) zcontains(key, member string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.zsets[key][member]
	return ok
}

func (f *fakeRedis) exists(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.strings[key]
	return ok
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryRepo_UpdatePersisteElPatch(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewCategoryRepository(rdb, "t")
	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "c1", Name: "Shoes", ImageURL: "u1", CreatedAt: time.Now()}))

	name := "Boots"
	require.NoError(t, repo.Update(ctx, "c1", entity.CategoryPatch{Name: &name}))

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Boots", got.Name)
	assert.Equal(t, "u1", got.ImageURL)
}

func TestCategoryRepo_UpdateConcurrenteConDeleteNoResucita(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewCategoryRepository(rdb, "t")
	require.NoError(t, repo.Create(ctx, &entity.Category{ID: "c1", Name: "Shoes", CreatedAt: time.Now()}))

	// El borrado ocurre entre el GET de Update y su escritura.
	rdb.beforeWrite = func(f *fakeRedis) { f.deleteCategory(repo.keys, "c1") }
	name := "Boots"
	err := repo.Update(ctx, "c1", entity.CategoryPatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, rdb.exists("t:category:c1"), "la categoría borrada no debe reaparecer")
	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_UpdateMueveDeIndice(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewProductRepository(rdb, "t")
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p1", Name: "Boot", CategoryID: "c1",
		Price: decimal.RequireFromString("10"), CreatedAt: time.Now()}))

	hats := "c2"
	price := decimal.RequireFromString("9.90")
	require.NoError(t, repo.Update(ctx, "p1", entity.ProductPatch{CategoryID: &hats, Price: &price}))

	byC1, err := repo.List(ctx, entity.ProductFilter{CategoryID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, byC1)
	byC2, err := repo.List(ctx, entity.ProductFilter{CategoryID: "c2"})
	require.NoError(t, err)
	require.Len(t, byC2, 1)
	assert.Equal(t, "9.90", entity.NewPrice(byC2[0].Price).String())
}

func TestProductRepo_UpdateConcurrenteConDeleteNoResucita(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewProductRepository(rdb, "t")
	require.NoError(t, repo.Create(ctx, &entity.Product{ID: "p1", Name: "Boot", CategoryID: "c1", CreatedAt: time.Now()}))

	// El borrado ocurre entre el GET de Update y su transacción.
	rdb.beforeWrite = func(f *fakeRedis) { f.deleteProduct(repo.keys, "p1", "c1") }
	hats := "c2"
	err := repo.Update(ctx, "p1", entity.ProductPatch{CategoryID: &hats})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.False(t, rdb.exists("t:product:p1"), "el documento borrado no debe reaparecer")
	assert.False(t, rdb.zcontains("t:products:category:c2", "p1"), "no debe quedar en el índice nuevo")
	assert.False(t, rdb.zcontains("t:products", "p1"))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
	all, err := repo.List(ctx, entity.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepo_UpdateInexistente(t *testing.T) {
	repo := NewProductRepository(newFakeRedis(), "t")

	name := "x"
	err := repo.Update(context.Background(), "nope", entity.ProductPatch{Name: &name})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
