package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leadbook/crm-api/internal/core/domain"
	"github.com/leadbook/crm-api/internal/core/ports"
)

const collectionCustomers = "customers"

type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

type customerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Company   string             `bson:"company,omitempty"`
	OwnerID   primitive.ObjectID `bson:"ownerId"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d *customerDoc) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		Company:   d.Company,
		OwnerID:   d.OwnerID.Hex(),
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, ok := objectID(c.OwnerID)
	if !ok {
		return fmt.Errorf("insert customer: invalid owner id %q", c.OwnerID)
	}

	doc := customerDoc{
		ID:        primitive.NewObjectID(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		OwnerID:   owner,
		CreatedAt: c.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID = doc.ID.Hex()
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// FindOwned matches on id and owner in a single query, so a customer owned by
// someone else is indistinguishable from a missing one.
func (r *CustomerRepository) FindOwned(ctx context.Context, id, ownerID string) (*domain.Customer, error) {
	oid, ok := objectID(id)
	owner, ownerOK := objectID(ownerID)
	if !ok || !ownerOK {
		return nil, domain.ErrCustomerNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid, "ownerId": owner})
}

// List returns one page of the owner's customers, newest first, together with
// the number of customers matching the filter.
func (r *CustomerRepository) List(ctx context.Context, f ports.ListCustomersFilter) ([]*domain.Customer, int64, error) {
	owner, ok := objectID(f.OwnerID)
	if !ok {
		return []*domain.Customer{}, 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(owner, f.Search)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(f.Skip).
		SetLimit(f.Limit)

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// listFilter scopes to the owner and, when search is set, matches it as a
// literal case-insensitive substring of name or email.
func listFilter(owner primitive.ObjectID, search string) bson.M {
	filter := bson.M{"ownerId": owner}
	if search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"email": pattern},
		}
	}
	return filter
}

func (r *CustomerRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Customer, error) {
	owner, ok := objectID(ownerID)
	if !ok {
		return []*domain.Customer{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"ownerId": owner}, options.Find())
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	oid, ok := objectID(c.ID)
	if !ok {
		return domain.ErrCustomerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":    c.Name,
		"email":   c.Email,
		"phone":   c.Phone,
		"company": c.Company,
	}})
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrCustomerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the owner listing.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *CustomerRepository) findOne(ctx context.Context, filter bson.M) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Customer, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}
	defer cur.Close(ctx)

	var docs []customerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}

	out := make([]*domain.Customer, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
