// Package mongostore implements the record store on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

const (
	productsColl = "products"
	salesColl    = "sales"
	expensesColl = "expenses"
	debtsColl    = "debts"
)

type Options struct {
	URI      string
	Database string
	// Transactions requires a replica set or sharded cluster.
	Transactions bool
}

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
	inTx         bool
}

var _ store.Store = (*Store)(nil)

func Open(ctx context.Context, opts Options) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	s := &Store{client: client, db: client.Database(opts.Database), transactions: opts.Transactions}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	idx := map[string]string{
		productsColl: "createdAt",
		salesColl:    "date",
		expensesColl: "date",
		debtsColl:    "date",
	}
	for coll, field := range idx {
		_, err := s.db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: field, Value: -1}}})
		if err != nil {
			return fmt.Errorf("index %s.%s: %w", coll, field, err)
		}
	}
	return nil
}

func (s *Store) Products() store.ProductRepo { return &ProductRepo{coll: s.db.Collection(productsColl)} }
func (s *Store) Sales() store.SaleRepo       { return &SaleRepo{coll: s.db.Collection(salesColl)} }
func (s *Store) Expenses() store.ExpenseRepo { return &ExpenseRepo{coll: s.db.Collection(expensesColl)} }
func (s *Store) Debts() store.DebtRepo       { return &DebtRepo{coll: s.db.Collection(debtsColl)} }

// WithTransaction runs fn inside a multi-document transaction when enabled.
// Without it fn runs directly and each write stands alone.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if !s.transactions || s.inTx {
		return fn(ctx, s)
	}
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	txStore := &Store{client: s.client, db: s.db, transactions: true, inTx: true}
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, txStore)
	})
	return err
}

func (s *Store) Transactional() bool { return s.transactions }

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

func (s *Store) Close() error { return s.client.Disconnect(context.Background()) }

// ---------- shared helpers ----------

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id cannot name any document
		return primitive.NilObjectID, domain.ErrNotFound
	}
	return oid, nil
}

func notFound(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, domain.ErrNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func sortDoc(field string, desc bool) bson.D {
	dir := 1
	if desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func findAll[D any](ctx context.Context, coll *mongo.Collection, field string, desc bool) ([]D, error) {
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(sortDoc(field, desc)))
	if err != nil {
		return nil, err
	}
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func findByID[D any](ctx context.Context, coll *mongo.Collection, id string) (D, error) {
	var doc D
	oid, err := objectID(id)
	if err != nil {
		return doc, err
	}
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	return doc, err
}

func updateByID[D any](ctx context.Context, coll *mongo.Collection, id string, set bson.M) (D, error) {
	var doc D
	oid, err := objectID(id)
	if err != nil {
		return doc, err
	}
	set["updatedAt"] = time.Now().UTC()
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	return doc, err
}

func deleteByID[D any](ctx context.Context, coll *mongo.Collection, id string) (D, error) {
	var doc D
	oid, err := objectID(id)
	if err != nil {
		return doc, err
	}
	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	return doc, err
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) error {
	_, err := coll.InsertOne(ctx, doc)
	return err
}

func mapSlice[D, T any](docs []D, conv func(D) T) []T {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out
}
