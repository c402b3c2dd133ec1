package database

import (
	"context"
	"time"

	"github.com/deppfellow/items-api/internal/config"
	loggerConfig "github.com/deppfellow/items-api/internal/logger"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDatabase stores items as documents in a single collection.
type MongoDatabase struct {
	Client     *mongo.Client
	collection *mongo.Collection
	log        *zerolog.Logger
}

// itemDocument is the stored shape: {_id, name, description, createdAt, updatedAt}.
type itemDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d itemDocument) toModel() model.Item {
	return model.Item{
		ID:          model.ItemID(d.ID.Hex()),
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// NewMongo connects to MongoDB and pings the primary.
//
// Command monitoring mirrors the Postgres tracing setup:
//   - New Relic datastore segments when the agent is running
//   - per-command debug logs in the local environment
//   - a warning for any command slower than the slow query threshold
func NewMongo(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*MongoDatabase, error) {
	connectTimeout := time.Duration(cfg.Database.ConnectTimeout) * time.Second

	monitor := newCommandLogger(logger, cfg.Primary.Env == "local", cfg.Observability.Logging.SlowQueryThreshold)
	if loggerService.GetApplication() != nil {
		// nrmongo wraps the logging monitor so both run.
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		SetMonitor(monitor)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongo")
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Str("collection", cfg.Database.Collection).
		Msg("connected to the database")

	return &MongoDatabase{
		Client:     client,
		collection: client.Database(cfg.Database.Name).Collection(cfg.Database.Collection),
		log:        logger,
	}, nil
}

// newCommandLogger builds the zerolog side of command monitoring.
func newCommandLogger(logger *zerolog.Logger, verbose bool, slow time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			if verbose {
				logger.Debug().
					Str("command", evt.CommandName).
					Int64("request_id", evt.RequestID).
					Msg("mongo command started")
			}
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			if slow > 0 && evt.Duration > slow {
				logger.Warn().
					Str("command", evt.CommandName).
					Dur("duration", evt.Duration).
					Msg("slow mongo command")
			}
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Error().
				Str("command", evt.CommandName).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}

func parseObjectID(id model.ItemID) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

func (db *MongoDatabase) InsertOne(ctx context.Context, item *model.Item) error {
	// BSON dates carry millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc := itemDocument{
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res, err := db.collection.InsertOne(ctx, doc)
	if err != nil {
		return errors.Wrap(err, "inserting item")
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid

	*item = doc.toModel()
	return nil
}

func (db *MongoDatabase) FindAll(ctx context.Context) ([]model.Item, error) {
	cur, err := db.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.Wrap(err, "finding items")
	}

	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decoding items")
	}

	items := make([]model.Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.toModel())
	}
	return items, nil
}

func (db *MongoDatabase) FindByID(ctx context.Context, id model.ItemID) (*model.Item, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc itemDocument
	err = db.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "finding item '%s'", id)
	}

	item := doc.toModel()
	return &item, nil
}

func (db *MongoDatabase) UpdateByID(ctx context.Context, id model.ItemID, name, description string) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	update := bson.M{
		"$set":         bson.M{"name": name},
		"$currentDate": bson.M{"updatedAt": true},
	}
	if description == "" {
		update["$unset"] = bson.M{"description": ""}
	} else {
		update["$set"] = bson.M{"name": name, "description": description}
	}

	res, err := db.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return false, errors.Wrapf(err, "updating item '%s'", id)
	}
	return res.MatchedCount > 0, nil
}

func (db *MongoDatabase) DeleteByID(ctx context.Context, id model.ItemID) (bool, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := db.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, errors.Wrapf(err, "deleting item '%s'", id)
	}
	return res.DeletedCount > 0, nil
}

func (db *MongoDatabase) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (db *MongoDatabase) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}
