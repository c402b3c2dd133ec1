package database

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/items-api/internal/config"
	loggerConfig "github.com/deppfellow/items-api/internal/logger"
	"github.com/deppfellow/items-api/internal/model"
	"github.com/google/uuid"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// PostgresDatabase keeps items in the "items" table created by Migrate.
//
// Ids are UUIDs generated by the database (gen_random_uuid), timestamps
// come from now().
type PostgresDatabase struct {
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx trace callbacks out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// NewPostgres creates a pgx pool from the DSN in cfg.Database.URI, wires
// tracing and pings the server.
//
// Tracing:
//   - nrpgx5 when the New Relic agent is running
//   - pgx tracelog through zerolog in the local environment
//   - both, chained with multiTracer, when both apply
func NewPostgres(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*PostgresDatabase, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(cfg.Database.MaxIdleConns)
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err = pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Msg("connected to the database")

	return &PostgresDatabase{
		Pool: pool,
		log:  logger,
	}, nil
}

// itemRow matches the column list selected by every item query.
type itemRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r itemRow) toModel() model.Item {
	return model.Item{
		ID:          model.ItemID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

const itemColumns = `id::text AS id, name, description, created_at, updated_at`

func parseUUID(id model.ItemID) (string, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}

func (db *PostgresDatabase) InsertOne(ctx context.Context, item *model.Item) error {
	rows, err := db.Pool.Query(ctx,
		`INSERT INTO items (name, description) VALUES ($1, $2) RETURNING `+itemColumns,
		item.Name, item.Description,
	)
	if err != nil {
		return errors.Wrap(err, "inserting item")
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		return errors.Wrap(err, "reading inserted item")
	}

	*item = row.toModel()
	return nil
}

func (db *PostgresDatabase) FindAll(ctx context.Context) ([]model.Item, error) {
	rows, err := db.Pool.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "finding items")
	}

	found, err := pgx.CollectRows(rows, pgx.RowToStructByName[itemRow])
	if err != nil {
		return nil, errors.Wrap(err, "reading items")
	}

	items := make([]model.Item, 0, len(found))
	for _, row := range found {
		items = append(items, row.toModel())
	}
	return items, nil
}

func (db *PostgresDatabase) FindByID(ctx context.Context, id model.ItemID) (*model.Item, error) {
	key, err := parseUUID(id)
	if err != nil {
		return nil, err
	}

	rows, err := db.Pool.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, key)
	if err != nil {
		return nil, errors.Wrapf(err, "finding item '%s'", id)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[itemRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading item '%s'", id)
	}

	item := row.toModel()
	return &item, nil
}

func (db *PostgresDatabase) UpdateByID(ctx context.Context, id model.ItemID, name, description string) (bool, error) {
	key, err := parseUUID(id)
	if err != nil {
		return false, err
	}

	tag, err := db.Pool.Exec(ctx,
		`UPDATE items SET name = $2, description = $3, updated_at = now() WHERE id = $1`,
		key, name, description,
	)
	if err != nil {
		return false, errors.Wrapf(err, "updating item '%s'", id)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *PostgresDatabase) DeleteByID(ctx context.Context, id model.ItemID) (bool, error) {
	key, err := parseUUID(id)
	if err != nil {
		return false, err
	}

	tag, err := db.Pool.Exec(ctx, `DELETE FROM items WHERE id = $1`, key)
	if err != nil {
		return false, errors.Wrapf(err, "deleting item '%s'", id)
	}
	return tag.RowsAffected() > 0, nil
}

func (db *PostgresDatabase) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close closes the connection pool. pgxpool.Close has no error to return.
func (db *PostgresDatabase) Close(_ context.Context) error {
	db.log.Info().Msg("closing database connection pool")
	db.Pool.Close()
	return nil
}
