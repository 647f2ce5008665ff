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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productDoc documento JSON guardado por producto.
type productDoc struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Price      entity.Price `json:"price"`
	CategoryID string       `json:"category"`
	ImageURL   string       `json:"imageUrl"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ProductRepo guarda productos como documentos JSON con dos índices ordenados:
// todos los productos y productos por categoría (para el filtro ?category=).
type ProductRepo struct {
	rdb  redis.UniversalClient
	keys keys
}

// NewProductRepository construye el adaptador sobre Redis.
func NewProductRepository(rdb redis.UniversalClient, prefix string) *ProductRepo {
	return &ProductRepo{rdb: rdb, keys: keys{prefix: prefix}}
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	raw, err := json.Marshal(fromProduct(product))
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	member := redis.Z{Score: float64(product.CreatedAt.UnixNano()), Member: product.ID}
	var created *redis.BoolCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, r.keys.product(product.ID), raw, 0)
		pipe.ZAdd(ctx, r.keys.products(), member)
		pipe.ZAdd(ctx, r.keys.productsByCategory(product.CategoryID), member)
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if !created.Val() {
		return fmt.Errorf("insert product: id duplicado %s", product.ID)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.get(ctx, id)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

// List usa el índice por categoría cuando hay filtro. Cada documento se vuelve a comprobar
// contra el filtro porque el índice puede quedar desfasado tras escrituras concurrentes.
func (r *ProductRepo) List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	index := r.keys.products()
	if filter.CategoryID != "" {
		index = r.keys.productsByCategory(filter.CategoryID)
	}
	ids, err := r.rdb.ZRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = r.keys.product(id)
	}
	values, err := r.rdb.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("mget products: %w", err)
	}
	list := make([]*entity.Product, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var doc productDoc
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p := doc.toEntity()
		if filter.Matches(p) {
			list = append(list, p)
		}
	}
	return list, nil
}

// Update reescribe el documento con SET XX y mueve el ID de índice si cambió la categoría.
// Si el producto se borró entre la lectura y la escritura no se recrea: se deshace el alta
// en el índice nuevo y se devuelve ErrNotFound.
func (r *ProductRepo) Update(ctx context.Context, id string, patch entity.ProductPatch) error {
	doc, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	product := doc.toEntity()
	oldCategory := product.CategoryID
	patch.Apply(product)
	product.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(fromProduct(product))
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	moved := product.CategoryID != oldCategory
	var updated *redis.BoolCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		updated = pipe.SetXX(ctx, r.keys.product(id), raw, 0)
		if moved {
			pipe.ZRem(ctx, r.keys.productsByCategory(oldCategory), id)
			pipe.ZAdd(ctx, r.keys.productsByCategory(product.CategoryID), redis.Z{
				Score:  float64(product.CreatedAt.UnixNano()),
				Member: id,
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if !updated.Val() {
		if moved {
			if err := r.rdb.ZRem(ctx, r.keys.productsByCategory(product.CategoryID), id).Err(); err != nil {
				return fmt.Errorf("update product: limpiar índice: %w", err)
			}
		}
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	doc, err := r.get(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	var deleted *redis.IntCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.keys.product(id))
		pipe.ZRem(ctx, r.keys.products(), id)
		pipe.ZRem(ctx, r.keys.productsByCategory(doc.CategoryID), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if deleted.Val() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) get(ctx context.Context, id string) (*productDoc, error) {
	raw, err := r.rdb.Get(ctx, r.keys.product(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	var doc productDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &doc, nil
}

func fromProduct(p *entity.Product) productDoc {
	return productDoc{
		ID:         p.ID,
		Name:       p.Name,
		Price:      entity.NewPrice(p.Price),
		CategoryID: p.CategoryID,
		ImageURL:   p.ImageURL,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (d productDoc) toEntity() *entity.Product {
	return &entity.Product{
		ID:         d.ID,
		Name:       d.Name,
		Price:      d.Price.Decimal,
		CategoryID: d.CategoryID,
		ImageURL:   d.ImageURL,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
