package tokens

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users gives the orchestrator read access to principals and their granted
// authorities. Principal and authority records are owned by external
// management components; nothing here mutates them.
type Users interface {
	repository.Repository[*User]

	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error)
	GetByUserID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUserIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error)
	FindAuthoritiesByUserID(ctx context.Context, id uuid.UUID) ([]Capability, error)
	FindAuthoritiesByUserIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) ([]Capability, error)
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
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return a.GetByUsernameTx(ctx, a.db, username)
}

func (a *users) GetByUsernameTx(ctx context.Context, tx bun.IDB, username string) (*User, error) {
	if _, err := Require(username, "username"); err != nil {
		return nil, err
	}

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.username = ?", username).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
			return nil, userNotFound("username", username)
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user by username")
	}

	return record, nil
}

func (a *users) GetByUserID(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.GetByUserIDTx(ctx, a.db, id)
}

func (a *users) GetByUserIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, MissingField("userId")
	}

	record := &User{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || repository.IsRecordNotFound(err) {
			return nil, userNotFound("id", id.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user by id")
	}

	return record, nil
}

// FindAuthoritiesByUserID resolves the user's current capability set. The
// result is live data, re-read from storage on every call, and is empty but
// non-nil for a user with no grants.
func (a *users) FindAuthoritiesByUserID(ctx context.Context, id uuid.UUID) ([]Capability, error) {
	return a.FindAuthoritiesByUserIDTx(ctx, a.db, id)
}

func (a *users) FindAuthoritiesByUserIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) ([]Capability, error) {
	if id == uuid.Nil {
		return nil, MissingField("userId")
	}

	var records []Authority
	err := tx.NewSelect().
		Model(&records).
		Join("JOIN user_authorities AS uaut ON uaut.authority_id = ?TableAlias.id").
		Where("uaut.user_id = ?", id).
		Order("aut.name ASC").
		Scan(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user authorities")
	}

	names := make([]Capability, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}

	return names, nil
}
