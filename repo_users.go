package shop

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RedeemConfirmationCodeSQL flips the verification flag and clears the
// stored code in one statement so a code can be redeemed at most once.
var RedeemConfirmationCodeSQL = `UPDATE "users" AS "usr"
SET
	"is_email_verified" = TRUE,
	"confirmation_hash" = NULL
WHERE
	"usr"."deleted_at" IS NULL
AND "usr"."id" = ?
AND "usr"."confirmation_hash" = ? RETURNING *;`

var SetConfirmationCodeSQL = `UPDATE "users" AS "usr"
SET
	"confirmation_hash" = ?
WHERE
	"usr"."deleted_at" IS NULL
AND "usr"."id" = ? RETURNING *;`

type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)

	SetConfirmationCode(ctx context.Context, id uuid.UUID, encoded string) error
	SetConfirmationCodeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, encoded string) error

	RedeemConfirmationCode(ctx context.Context, id uuid.UUID, encoded string) error
	RedeemConfirmationCodeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, encoded string) error
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	prepareUserDefaults(user)
	return a.Repository.CreateTx(ctx, tx, user)
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"email": email,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *users) SetConfirmationCode(ctx context.Context, id uuid.UUID, encoded string) error {
	return a.SetConfirmationCodeTx(ctx, a.db, id, encoded)
}

func (a *users) SetConfirmationCodeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, encoded string) error {
	res, err := a.Repository.RawTx(ctx, tx, SetConfirmationCodeSQL, encoded, id.String())
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func (a *users) RedeemConfirmationCode(ctx context.Context, id uuid.UUID, encoded string) error {
	return a.RedeemConfirmationCodeTx(ctx, a.db, id, encoded)
}

func (a *users) RedeemConfirmationCodeTx(ctx context.Context, tx bun.IDB, id uuid.UUID, encoded string) error {
	res, err := a.Repository.RawTx(ctx, tx, RedeemConfirmationCodeSQL, id.String(), encoded)
	if err != nil {
		return err
	}

	// No row matched: unknown user, stale code, or a code already redeemed.
	if len(res) == 0 {
		return ErrInvalidConfirmationCode
	}

	return nil
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
