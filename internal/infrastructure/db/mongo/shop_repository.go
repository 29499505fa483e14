package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

const shopsCollection = "shops"

type MongoShopRepository struct {
	coll *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *MongoShopRepository {
	return &MongoShopRepository{coll: db.Collection(shopsCollection)}
}

type mongoShop struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoShopRepository) Create(ctx context.Context, shop *domain.Shop) (*domain.Shop, error) {
	doc := mongoShop{
		Name:      shop.Name,
		CreatedAt: shop.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert shop: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert shop: unexpected inserted id %T", res.InsertedID)
	}

	created := *shop
	created.ID = id.Hex()
	return &created, nil
}

func (r *MongoShopRepository) FindByID(ctx context.Context, id string) (*domain.Shop, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShopNotFound
	}

	var ms mongoShop
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrShopNotFound
		}
		return nil, fmt.Errorf("find shop: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *MongoShopRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count shops: %w", err)
	}
	return count > 0, nil
}

func (r *MongoShopRepository) List(ctx context.Context) ([]*domain.Shop, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer cur.Close(ctx)

	var shops []*domain.Shop
	for cur.Next(ctx) {
		var ms mongoShop
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode shop: %w", err)
		}
		shops = append(shops, ms.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	return shops, nil
}

func (ms mongoShop) toDomain() *domain.Shop {
	return &domain.Shop{
		ID:        ms.ID.Hex(),
		Name:      ms.Name,
		CreatedAt: unixToTime(ms.CreatedAt),
	}
}
