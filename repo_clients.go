package shop

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Clients interface {
	repository.Repository[*Client]

	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Client, error)
	ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*Client, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error
}

type clients struct {
	repository.Repository[*Client]
	db *bun.DB
}

var (
	_ Clients                        = (*clients)(nil)
	_ repository.Repository[*Client] = (*clients)(nil)
)

func NewClientsRepository(db *bun.DB) Clients {
	repo := repository.NewRepository[*Client](db, repository.ModelHandlers[*Client]{
		NewRecord: func() *Client { return &Client{} },
		GetID: func(c *Client) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Client, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &clients{
		Repository: repo,
		db:         db,
	}
}

func (r *clients) Create(ctx context.Context, record *Client, criteria ...repository.InsertCriteria) (*Client, error) {
	return r.CreateTx(ctx, r.db, record, criteria...)
}

func (r *clients) CreateTx(ctx context.Context, tx bun.IDB, record *Client, criteria ...repository.InsertCriteria) (*Client, error) {
	prepareClientDefaults(record)
	return r.Repository.CreateTx(ctx, tx, record, criteria...)
}

func (r *clients) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*Client, error) {
	return r.ListTx(ctx, r.db, criteria...)
}

func (r *clients) ListTx(ctx context.Context, tx bun.IDB, criteria ...repository.SelectCriteria) ([]*Client, error) {
	var records []*Client

	q := tx.NewSelect().Model(&records)
	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Order("cli.created_at DESC").Scan(ctx); err != nil {
		return nil, err
	}

	if records == nil {
		records = []*Client{}
	}

	return records, nil
}

func (r *clients) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.DeleteByIDTx(ctx, r.db, id)
}

func (r *clients) DeleteByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) error {
	res, err := tx.NewDelete().
		Model((*Client)(nil)).
		Where("?TableAlias.id = ?", id.String()).
		Exec(ctx)
	if err != nil {
		return err
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func prepareClientDefaults(record *Client) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
