package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onlineshop/order-system/internal/core/domain"
)

const cartsCollection = "carts"

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{coll: db.Collection(cartsCollection)}
}

type mongoCartItem struct {
	ProductID string `bson:"product_id"`
	Quantity  int    `bson:"quantity"`
}

type mongoCart struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	CustomerID string             `bson:"customer_id"`
	Items      []mongoCartItem    `bson:"items"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (m mongoCart) toDomain() *domain.Cart {
	items := make([]domain.CartItem, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, domain.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &domain.Cart{
		ID:         m.ID.Hex(),
		CustomerID: m.CustomerID,
		Items:      items,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toMongoItems(items []domain.CartItem) []mongoCartItem {
	out := make([]mongoCartItem, 0, len(items))
	for _, it := range items {
		out = append(out, mongoCartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

func (r *CartRepository) Create(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	doc := mongoCart{
		CustomerID: c.CustomerID,
		Items:      toMongoItems(c.Items),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert cart: %w", err)
	}

	created := *c
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*domain.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}

	var mc mongoCart
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CartRepository) FindByCustomer(ctx context.Context, customerID string) (*domain.Cart, error) {
	var mc mongoCart
	if err := r.coll.FindOne(ctx, bson.M{"customer_id": customerID}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("find cart by customer: %w", err)
	}
	return mc.toDomain(), nil
}

// Save replaces the cart's item list in a single document write.
func (r *CartRepository) Save(ctx context.Context, c *domain.Cart) (*domain.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, domain.ErrCartNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"items":      toMongoItems(c.Items),
		"updated_at": c.UpdatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCartNotFound
	}
	return c, nil
}

// EnsureIndexes enforces one cart per customer.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
