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

	"github.com/leadbook/crm-api/internal/core/domain"
)

const collectionLeads = "leads"

type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads)}
}

type leadDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Status      string             `bson:"status"`
	Value       float64            `bson:"value"`
	CustomerID  primitive.ObjectID `bson:"customerId"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d *leadDoc) toDomain() *domain.Lead {
	return &domain.Lead{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Status:      domain.LeadStatus(d.Status),
		Value:       d.Value,
		CustomerID:  d.CustomerID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	customer, ok := objectID(l.CustomerID)
	if !ok {
		return domain.ErrCustomerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := leadDoc{
		ID:          primitive.NewObjectID(),
		Title:       l.Title,
		Description: l.Description,
		Status:      string(l.Status),
		Value:       l.Value,
		CustomerID:  customer,
		CreatedAt:   l.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	l.ID = doc.ID.Hex()
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*domain.Lead, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc leadDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *LeadRepository) ListByCustomer(ctx context.Context, customerID string) ([]*domain.Lead, error) {
	customer, ok := objectID(customerID)
	if !ok {
		return []*domain.Lead{}, nil
	}
	return r.find(ctx, bson.M{"customerId": customer})
}

// ListByCustomersAndStatus returns the leads of any of the given customers
// whose status matches exactly.
func (r *LeadRepository) ListByCustomersAndStatus(ctx context.Context, customerIDs []string, status string) ([]*domain.Lead, error) {
	ids := make(bson.A, 0, len(customerIDs))
	for _, id := range customerIDs {
		if oid, ok := objectID(id); ok {
			ids = append(ids, oid)
		}
	}
	if len(ids) == 0 {
		return []*domain.Lead{}, nil
	}
	return r.find(ctx, bson.M{"customerId": bson.M{"$in": ids}, "status": status})
}

func (r *LeadRepository) Update(ctx context.Context, l *domain.Lead) error {
	oid, ok := objectID(l.ID)
	if !ok {
		return domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":       l.Title,
		"description": l.Description,
		"status":      string(l.Status),
		"value":       l.Value,
	}})
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrLeadNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeadNotFound
	}
	return nil
}

// DeleteByCustomer removes every lead of the customer and reports how many
// were removed.
func (r *LeadRepository) DeleteByCustomer(ctx context.Context, customerID string) (int64, error) {
	customer, ok := objectID(customerID)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"customerId": customer})
	if err != nil {
		return 0, fmt.Errorf("delete leads: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the indexes on the leads collection.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "customerId", Value: 1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "status", Value: 1}}},
	})
	return err
}

func (r *LeadRepository) find(ctx context.Context, filter bson.M) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cur.Close(ctx)

	var docs []leadDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}

	out := make([]*domain.Lead, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
