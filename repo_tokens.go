package tokens

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Tokens exclusively owns issued-token persistence. Each operation is
// individually atomic; the orchestrator sequences them for multi-step flows
// and never touches storage directly.
type Tokens interface {
	Create(ctx context.Context, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error)
	CreateTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error)
	FindActive(ctx context.Context, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error)
	FindActiveTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error)
	Invalidate(ctx context.Context, tokenID uuid.UUID) (*Token, error)
	InvalidateTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID) (*Token, error)
}

type tokensRepo struct {
	db     *bun.DB
	logger Logger
}

var _ Tokens = (*tokensRepo)(nil)

func NewTokensRepository(db *bun.DB, logger Logger) Tokens {
	if logger == nil {
		logger = defLogger{}
	}
	return &tokensRepo{db: db, logger: logger}
}

// Create persists one issued token bound to its owner in its own
// transaction.
func (r *tokensRepo) Create(ctx context.Context, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error) {
	var record *Token
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		record, err = r.CreateTx(ctx, tx, tokenID, signed, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreateTx verifies the owning user exists, then inserts the record. A
// colliding token id or signed string surfaces as a not-unique error, never
// a silent overwrite.
func (r *tokensRepo) CreateTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error) {
	if tokenID == uuid.Nil {
		return nil, MissingField("tokenId")
	}
	if _, err := Require(signed, "token"); err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return nil, MissingField("userId")
	}

	exists, err := tx.NewSelect().
		Model((*User)(nil)).
		Where("?TableAlias.id = ?", userID).
		Exists(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve token owner")
	}
	if !exists {
		r.logger.Warn("could not find user %s while creating token %s", userID, tokenID)
		return nil, userNotFound("id", userID.String())
	}

	owner := userID
	record := &Token{
		ID:     tokenID,
		Value:  signed,
		UserID: &owner,
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrNotUnique.Clone().WithMetadata(map[string]any{
				"tokenId": tokenID.String(),
			})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to persist token")
	}

	r.logger.Debug("created token %s for user %s", tokenID, userID)
	return record, nil
}

func (r *tokensRepo) FindActive(ctx context.Context, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error) {
	return r.FindActiveTx(ctx, r.db, tokenID, signed, userID)
}

// FindActiveTx looks up the record matching id, signed string, and owner,
// loading the owner with its current authorities. Once a token has been
// invalidated no record matches, which is what makes a refresh token single
// use.
func (r *tokensRepo) FindActiveTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID, signed string, userID uuid.UUID) (*Token, error) {
	if tokenID == uuid.Nil {
		return nil, MissingField("tokenId")
	}
	if _, err := Require(signed, "token"); err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return nil, MissingField("userId")
	}

	record := &Token{}
	err := tx.NewSelect().
		Model(record).
		Relation("User").
		Relation("User.Authorities").
		Where("?TableAlias.id = ?", tokenID).
		Where("?TableAlias.token = ?", signed).
		Where("?TableAlias.user_id = ?", userID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("could not find token %s for user %s", tokenID, userID)
			return nil, tokenNotFound(tokenID.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve token")
	}

	return record, nil
}

// Invalidate destroys the record for tokenID in its own transaction.
func (r *tokensRepo) Invalidate(ctx context.Context, tokenID uuid.UUID) (*Token, error) {
	var record *Token
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		record, err = r.InvalidateTx(ctx, tx, tokenID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// InvalidateTx locates and deletes the record. Success is decided by the
// DELETE's affected rows, so two racing invalidations of the same token
// resolve to exactly one success and one not-found.
func (r *tokensRepo) InvalidateTx(ctx context.Context, tx bun.IDB, tokenID uuid.UUID) (*Token, error) {
	if tokenID == uuid.Nil {
		return nil, MissingField("tokenId")
	}

	record := &Token{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", tokenID).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Warn("could not find token %s to invalidate", tokenID)
			return nil, tokenNotFound(tokenID.String())
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to locate token")
	}

	res, err := tx.NewDelete().
		Model((*Token)(nil)).
		Where("id = ?", tokenID).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete token")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return nil, tokenNotFound(tokenID.String())
	}

	r.logger.Debug("invalidated token %s", tokenID)
	return record, nil
}

// isUniqueViolation matches the driver messages for unique index violations
// (sqlite and postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed")
}
