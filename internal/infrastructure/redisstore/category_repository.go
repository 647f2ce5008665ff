package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// categoryDoc documento JSON guardado por categoría.
type categoryDoc struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRepo guarda cada categoría como documento JSON y las indexa en un sorted set
// cuyo score es la fecha de creación.
type CategoryRepo struct {
	rdb  redis.UniversalClient
	keys keys
}

// NewCategoryRepository construye el adaptador sobre Redis.
func NewCategoryRepository(rdb redis.UniversalClient, prefix string) *CategoryRepo {
	return &CategoryRepo{rdb: rdb, keys: keys{prefix: prefix}}
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	raw, err := json.Marshal(fromCategory(category))
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}
	var created *redis.BoolCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, r.keys.category(category.ID), raw, 0)
		pipe.ZAdd(ctx, r.keys.categories(), redis.Z{
			Score:  float64(category.CreatedAt.UnixNano()),
			Member: category.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	if !created.Val() {
		return fmt.Errorf("insert category: id duplicado %s", category.ID)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.get(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	ids, err := r.rdb.ZRange(ctx, r.keys.categories(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return r.ListByIDs(ctx, ids)
}

func (r *CategoryRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = r.keys.category(id)
	}
	values, err := r.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // borrada o nunca existió
		}
		var doc categoryDoc
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		list = append(list, doc.toEntity())
	}
	return list, nil
}

// Update lee, aplica el patch y reescribe el documento con SET XX: si la categoría se borró
// entre la lectura y la escritura no se recrea y se devuelve ErrNotFound.
// Entre dos updates concurrentes gana la última escritura.
func (r *CategoryRepo) Update(ctx context.Context, id string, patch entity.CategoryPatch) error {
	doc, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	category := doc.toEntity()
	patch.Apply(category)
	category.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(fromCategory(category))
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}
	updated, err := r.rdb.SetXX(ctx, r.keys.category(id), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if !updated {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	var deleted *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.keys.category(id))
		pipe.ZRem(ctx, r.keys.categories(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if deleted.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) get(ctx context.Context, id string) (*categoryDoc, error) {
	raw, err := r.rdb.Get(ctx, r.keys.category(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	var doc categoryDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	return &doc, nil
}

func fromCategory(c *entity.Category) categoryDoc {
	return categoryDoc{
		ID:        c.ID,
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d categoryDoc) toEntity() *entity.Category {
	return &entity.Category{
		ID:        d.ID,
		Name:      d.Name,
		ImageURL:  d.ImageURL,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
