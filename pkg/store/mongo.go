package store

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/khoaaminh1/pftui/internal/types"
	"github.com/khoaaminh1/pftui/pkg/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	AccountsCollection     = "accounts"
	CategoriesCollection   = "categories"
	TransactionsCollection = "transactions"
	BudgetsCollection      = "budgets"
)

// DataStore is the part of a MongoDB collection the store uses.
type DataStore interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// CollectionProvider returns collections by name.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// MongoCollection adapts *mongo.Collection to DataStore.
type MongoCollection struct {
	*mongo.Collection
}

// Find runs a query on the collection.
func (c *MongoCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	cursor, err := c.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to perform Find: %w", err)
	}

	return cursor, nil
}

// InsertMany inserts documents in one batch.
func (c *MongoCollection) InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	result, err := c.Collection.InsertMany(ctx, documents, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to perform InsertMany: %w", err)
	}

	return result, nil
}

// MongoProvider adapts a *mongo.Database to CollectionProvider.
type MongoProvider struct {
	database *mongo.Database
}

// NewMongoProvider creates a new MongoProvider for the database.
func NewMongoProvider(client *mongo.Client, database string) *MongoProvider {
	return &MongoProvider{database: client.Database(database)}
}

// Collection returns a DataStore for the given collection name.
func (p *MongoProvider) Collection(name string) DataStore {
	return &MongoCollection{p.database.Collection(name)}
}

// EnsureIndexes creates the indexes queries rely on and the unique index
// that allows only one budget per user, category and month.
func (p *MongoProvider) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		BudgetsCollection: {{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "categoryId", Value: 1}, {Key: "year", Value: 1}, {Key: "month", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("budget_user_category_month"),
		}},
		TransactionsCollection: {{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		}},
		AccountsCollection: {{
			Keys: bson.D{{Key: "userId", Value: 1}},
		}},
	}

	for collection, idx := range indexes {
		_, err := p.database.Collection(collection).Indexes().CreateMany(ctx, idx)
		if err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}

// RedactURI returns the connection string without password and options.
func RedactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "(invalid URI)"
	}

	u.RawQuery = ""
	return u.Redacted()
}

// ConnectToMongoDB establishes a connection to MongoDB and verifies it.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	log.Debug().Str("uri", RedactURI(uri)).Msg("Connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info().Msg("Connected to MongoDB")
	return client, nil
}

// Mongo is a Store backed by MongoDB.
type Mongo struct {
	provider CollectionProvider
	client   *mongo.Client
	now      func() time.Time
}

// NewMongo creates a Store that reads and writes through the provider.
//
// client may be nil, it is only used to disconnect in Close.
func NewMongo(provider CollectionProvider, client *mongo.Client) *Mongo {
	return &Mongo{
		provider: provider,
		client:   client,
		now:      time.Now,
	}
}

func (m *Mongo) Account(ctx context.Context, userID string, id uuid.UUID) (models.Account, error) {
	var docs []accountDocument
	if err := m.find(ctx, AccountsCollection, bson.M{"_id": id.String(), "userId": userID}, &docs, options.Find().SetLimit(1)); err != nil {
		return models.Account{}, fmt.Errorf("account %s of user %s: %w", id, userID, err)
	}

	if len(docs) == 0 {
		return models.Account{}, fmt.Errorf("account %s of user %s: %w account matching your query", id, userID, models.ErrResourceNotFound)
	}

	return docs[0].model()
}

func (m *Mongo) AccountsByUser(ctx context.Context, userID string) ([]models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	var docs []accountDocument
	if err := m.find(ctx, AccountsCollection, bson.M{"userId": userID}, &docs, opts); err != nil {
		return nil, fmt.Errorf("accounts of user %s: %w", userID, err)
	}

	return convert(docs, accountDocument.model)
}

func (m *Mongo) AccountsByID(ctx context.Context, ids []uuid.UUID) ([]models.Account, error) {
	if len(ids) == 0 {
		return make([]models.Account, 0), nil
	}

	var docs []accountDocument
	if err := m.find(ctx, AccountsCollection, bson.M{"_id": bson.M{"$in": idStrings(ids)}}, &docs); err != nil {
		return nil, fmt.Errorf("accounts by id: %w", err)
	}

	return convert(docs, accountDocument.model)
}

func (m *Mongo) CategoriesByID(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return make([]models.Category, 0), nil
	}

	var docs []categoryDocument
	if err := m.find(ctx, CategoriesCollection, bson.M{"_id": bson.M{"$in": idStrings(ids)}}, &docs); err != nil {
		return nil, fmt.Errorf("categories by id: %w", err)
	}

	return convert(docs, categoryDocument.model)
}

func (m *Mongo) TransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return m.FindTransactions(ctx, TransactionFilter{UserID: userID})
}

func (m *Mongo) TransactionsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	return m.FindTransactions(ctx, TransactionFilter{UserID: userID, From: from, To: to})
}

func (m *Mongo) RecentTransactions(ctx context.Context, userID string, limit int) ([]models.Transaction, error) {
	return m.FindTransactions(ctx, TransactionFilter{UserID: userID, Limit: limit})
}

func (m *Mongo) FindTransactions(ctx context.Context, filter TransactionFilter) ([]models.Transaction, error) {
	query := bson.M{"userId": filter.UserID}

	date := bson.M{}
	if !filter.From.IsZero() {
		date["$gte"] = models.Day(filter.From)
	}
	if !filter.To.IsZero() {
		date["$lt"] = dayAfter(filter.To)
	}
	if len(date) > 0 {
		query["date"] = date
	}

	if filter.AccountID != uuid.Nil {
		query["accountId"] = filter.AccountID.String()
	}

	if filter.CategoryID != uuid.Nil {
		query["categoryId"] = filter.CategoryID.String()
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	var docs []transactionDocument
	if err := m.find(ctx, TransactionsCollection, query, &docs, opts); err != nil {
		return nil, fmt.Errorf("transactions of user %s: %w", filter.UserID, err)
	}

	return convert(docs, transactionDocument.model)
}

func (m *Mongo) BudgetsForMonth(ctx context.Context, userID string, month types.Month) ([]models.Budget, error) {
	query := bson.M{
		"userId": userID,
		"year":   month.Year(),
		"month":  int(month.Month()),
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	var docs []budgetDocument
	if err := m.find(ctx, BudgetsCollection, query, &docs, opts); err != nil {
		return nil, fmt.Errorf("budgets of user %s for %s: %w", userID, month, err)
	}

	return convert(docs, budgetDocument.model)
}

func (m *Mongo) SystemCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "type", Value: -1}, {Key: "name", Value: 1}})

	var docs []categoryDocument
	if err := m.find(ctx, CategoriesCollection, bson.M{"system": true}, &docs, opts); err != nil {
		return nil, fmt.Errorf("system categories: %w", err)
	}

	return convert(docs, categoryDocument.model)
}

func (m *Mongo) CreateCategories(ctx context.Context, categories []models.Category) error {
	docs := make([]interface{}, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		m.prepare(&c.DefaultModel)
		if err := c.BeforeSave(nil); err != nil {
			return err
		}
		docs = append(docs, newCategoryDocument(*c))
	}

	return m.insert(ctx, CategoriesCollection, docs)
}

func (m *Mongo) CreateAccounts(ctx context.Context, accounts []models.Account) error {
	docs := make([]interface{}, 0, len(accounts))
	for i := range accounts {
		a := &accounts[i]
		m.prepare(&a.DefaultModel)
		if err := a.BeforeSave(nil); err != nil {
			return err
		}
		doc, err := newAccountDocument(*a)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	return m.insert(ctx, AccountsCollection, docs)
}

func (m *Mongo) CreateTransactions(ctx context.Context, transactions []models.Transaction) error {
	docs := make([]interface{}, 0, len(transactions))
	for i := range transactions {
		t := &transactions[i]
		m.prepare(&t.DefaultModel)
		if err := t.BeforeSave(nil); err != nil {
			return err
		}
		doc, err := newTransactionDocument(*t)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	return m.insert(ctx, TransactionsCollection, docs)
}

func (m *Mongo) CreateBudgets(ctx context.Context, budgets []models.Budget) error {
	docs := make([]interface{}, 0, len(budgets))
	for i := range budgets {
		b := &budgets[i]
		m.prepare(&b.DefaultModel)
		if err := b.BeforeSave(nil); err != nil {
			return err
		}
		doc, err := newBudgetDocument(*b)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	err := m.insert(ctx, BudgetsCollection, docs)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrBudgetNotUnique
	}

	return err
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	return m.client.Disconnect(ctx)
}

// prepare sets the ID and timestamps like gorm does for SQL.
func (m *Mongo) prepare(model *models.DefaultModel) {
	_ = model.BeforeCreate(nil)

	now := m.now().In(time.UTC)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now
}

func (m *Mongo) find(ctx context.Context, collection string, filter interface{}, results interface{}, opts ...*options.FindOptions) error {
	cursor, err := m.provider.Collection(collection).Find(ctx, filter, opts...)
	if err != nil {
		return err
	}

	return cursor.All(ctx, results)
}

func (m *Mongo) insert(ctx context.Context, collection string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}

	_, err := m.provider.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return nil
}

func idStrings(ids []uuid.UUID) []string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, id.String())
	}

	return s
}

func convert[D any, M any](docs []D, model func(D) (M, error)) ([]M, error) {
	result := make([]M, 0, len(docs))
	for _, d := range docs {
		m, err := model(d)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	return result, nil
}
