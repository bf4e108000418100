package tokens_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/goliatone/go-tokens"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// setupTestDB opens an isolated in-memory database with the package schema.
// A single connection keeps the :memory: database alive for the test's
// lifetime.
func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	tokens.RegisterModels(db)

	ctx := context.Background()
	models := []any{
		(*tokens.User)(nil),
		(*tokens.Authority)(nil),
		(*tokens.UserAuthority)(nil),
		(*tokens.Token)(nil),
	}
	for _, model := range models {
		_, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts a user with a hashed password and the given authorities.
func seedUser(t *testing.T, db *bun.DB, username, password string, capabilities ...tokens.Capability) *tokens.User {
	t.Helper()
	ctx := context.Background()

	hash, err := tokens.HashPassword(password)
	require.NoError(t, err)

	user := &tokens.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	}
	_, err = db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)

	for _, name := range capabilities {
		authority := &tokens.Authority{ID: uuid.New(), Name: name}
		_, err = db.NewInsert().Model(authority).Exec(ctx)
		require.NoError(t, err)

		link := &tokens.UserAuthority{UserID: user.ID, AuthorityID: authority.ID}
		_, err = db.NewInsert().Model(link).Exec(ctx)
		require.NoError(t, err)
	}

	return user
}

func newTestConfig() *tokens.StaticConfig {
	return &tokens.StaticConfig{
		SigningKey:        "test-signing-secret",
		SigningMethod:     "HS256",
		Issuer:            "go-tokens-test",
		Audience:          []string{"api.example.com"},
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 24 * time.Hour,
	}
}
