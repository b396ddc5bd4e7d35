package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/creator-platform/internal/migrations"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// setupTestStorage поднимает контейнер PostgreSQL, применяет миграции
// и возвращает готовое хранилище.
func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")).WithStartupTimeout(30*time.Second),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { storage.DB.Close() })

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	return storage
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T, username, role string) string {
	t.Helper()
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, email, username, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, username+"@example.com", username, "hashedpassword", role)
	require.NoError(t, err)
	return uid
}

// CreateSubscription создает тестовую подписку и возвращает её ID.
func (f *TestDataFactory) CreateSubscription(t *testing.T, subscriberUID, creatorUID, subType, status string,
	expiresAt *time.Time) string {
	t.Helper()
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO subscriptions
		(id, subscriber_uid, creator_uid, sub_type, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		id, subscriberUID, creatorUID, subType, status, expiresAt)
	require.NoError(t, err)
	return id
}

// CreatePost создает тестовую публикацию и возвращает её ID.
func (f *TestDataFactory) CreatePost(t *testing.T, creatorUID, title, visibility string) string {
	t.Helper()
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO posts (id, creator_uid, title, body, visibility)
		VALUES ($1, $2, $3, $4, $5)`,
		id, creatorUID, title, "body of "+title, visibility)
	require.NoError(t, err)
	return id
}

// FreeSubscription возвращает заготовку бесплатной подписки.
func FreeSubscription(subscriberUID, creatorUID string) models.Subscription {
	return models.Subscription{
		ID:            uuid.New().String(),
		SubscriberUID: subscriberUID,
		CreatorUID:    creatorUID,
		Type:          models.SubscriptionTypeFree,
		Status:        models.SubscriptionStatusActive,
	}
}
