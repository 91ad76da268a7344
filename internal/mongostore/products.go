package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	Price     float64            `bson:"price"`
	Stock     int                `bson:"stock"`
	Unit      string             `bson:"unit"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d productDoc) product() domain.Product {
	return domain.Product{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Category:  d.Category,
		Price:     d.Price,
		Stock:     d.Stock,
		Unit:      d.Unit,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

var productSorts = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"category":  "category",
}

type ProductRepo struct{ coll *mongo.Collection }

func (r *ProductRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Product, error) {
	field, desc := store.SortField(sort, productSorts, domain.DefaultProductSort)
	docs, err := findAll[productDoc](ctx, r.coll, field, desc)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return mapSlice(docs, productDoc.product), nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	doc, err := findByID[productDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Product{}, notFound("get product", err)
	}
	return doc.product(), nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := productDoc{
		ID: primitive.NewObjectID(), Name: p.Name, Category: p.Category, Price: p.Price,
		Stock: p.Stock, Unit: p.Unit, CreatedAt: now, UpdatedAt: now,
	}
	if err := insert(ctx, r.coll, doc); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return doc.product(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	doc, err := updateByID[productDoc](ctx, r.coll, p.ID, bson.M{
		"name": p.Name, "category": p.Category, "price": p.Price, "stock": p.Stock, "unit": p.Unit,
	})
	if err != nil {
		return domain.Product{}, notFound("update product", err)
	}
	return doc.product(), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (domain.Product, error) {
	doc, err := deleteByID[productDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Product{}, notFound("delete product", err)
	}
	return doc.product(), nil
}

// AdjustStock is a single $inc; the floor becomes part of the filter so the
// check and the write cannot interleave with another sale.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int, floor *int) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": oid}
	if floor != nil {
		filter["stock"] = bson.M{"$gte": *floor - delta}
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"stock": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	if floor == nil {
		return domain.ErrNotFound
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w for product %s", domain.ErrInsufficientStock, id)
}
