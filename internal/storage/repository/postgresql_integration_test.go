package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

func TestStorage_SubscriptionLifecycle(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	viewerUID := factory.CreateUser(t, "viewer", models.RoleUser)
	creatorUID := factory.CreateUser(t, "creator", models.RoleCreator)

	created, err := storage.CreateSubscription(ctx, FreeSubscription(viewerUID, creatorUID))
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTypeFree, created.Type)
	assert.Equal(t, models.SubscriptionStatusActive, created.Status)
	assert.Nil(t, created.ExpiresAt)

	// Дубликат пары (зритель, автор) отклоняется уникальным индексом
	_, err = storage.CreateSubscription(ctx, FreeSubscription(viewerUID, creatorUID))
	assert.Error(t, err)

	found, err := storage.FindSubscriptionByPair(ctx, viewerUID, creatorUID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Апгрейд изменяет существующую запись, а не создаёт новую
	paidUntil := time.Now().AddDate(0, 1, 0).UTC().Truncate(time.Second)
	upgraded, err := storage.UpgradeSubscription(ctx, created.ID, paidUntil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, upgraded.ID)
	assert.Equal(t, models.SubscriptionTypePaid, upgraded.Type)
	require.NotNil(t, upgraded.ExpiresAt)
	assert.WithinDuration(t, paidUntil, *upgraded.ExpiresAt, time.Second)

	// Отмена меняет только статус
	canceled, err := storage.UpdateSubscriptionStatus(ctx, created.ID, models.SubscriptionStatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusCanceled, canceled.Status)
	assert.Equal(t, models.SubscriptionTypePaid, canceled.Type)
	require.NotNil(t, canceled.ExpiresAt)
	assert.WithinDuration(t, paidUntil, *canceled.ExpiresAt, time.Second)

	count, err := storage.RemoveSubscription(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = storage.FindSubscriptionByPair(ctx, viewerUID, creatorUID)
	assert.ErrorIs(t, err, models.ErrSubscriptionNotFound)
}

func TestStorage_FindSubscriptionByPair_NotFound(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	viewerUID := factory.CreateUser(t, "lonelyviewer", models.RoleUser)
	creatorUID := factory.CreateUser(t, "somecreator", models.RoleCreator)

	_, err := storage.FindSubscriptionByPair(ctx, viewerUID, creatorUID)
	assert.ErrorIs(t, err, models.ErrSubscriptionNotFound)
}

func TestStorage_ListFeedPosts(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	viewerUID := factory.CreateUser(t, "feedviewer", models.RoleUser)
	followedUID := factory.CreateUser(t, "followed", models.RoleCreator)
	strangerUID := factory.CreateUser(t, "stranger", models.RoleCreator)

	factory.CreateSubscription(t, viewerUID, followedUID,
		models.SubscriptionTypeFree, models.SubscriptionStatusActive, nil)

	factory.CreatePost(t, followedUID, "public post", models.VisibilityPublic)
	factory.CreatePost(t, followedUID, "members post", models.VisibilityMembersOnly)
	factory.CreatePost(t, strangerUID, "invisible post", models.VisibilityPublic)

	posts, err := storage.ListFeedPosts(ctx, viewerUID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, followedUID, p.CreatorUID)
	}
}

func TestStorage_ListPostsByCreator_Pagination(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	creatorUID := factory.CreateUser(t, "prolific", models.RoleCreator)
	for i := 0; i < 5; i++ {
		factory.CreatePost(t, creatorUID, "post", models.VisibilityPublic)
	}

	page1, err := storage.ListPostsByCreator(ctx, creatorUID, 3, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 3)

	page2, err := storage.ListPostsByCreator(ctx, creatorUID, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}

func TestStorage_FindMembershipsExpiringWithin(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	viewerUID := factory.CreateUser(t, "expviewer", models.RoleUser)
	soonUID := factory.CreateUser(t, "sooncreator", models.RoleCreator)
	lateUID := factory.CreateUser(t, "latecreator", models.RoleCreator)
	goneUID := factory.CreateUser(t, "gonecreator", models.RoleCreator)

	soon := time.Now().Add(12 * time.Hour)
	late := time.Now().Add(72 * time.Hour)
	gone := time.Now().Add(-time.Hour)

	soonID := factory.CreateSubscription(t, viewerUID, soonUID,
		models.SubscriptionTypePaid, models.SubscriptionStatusCanceled, &soon)
	factory.CreateSubscription(t, viewerUID, lateUID,
		models.SubscriptionTypePaid, models.SubscriptionStatusActive, &late)
	factory.CreateSubscription(t, viewerUID, goneUID,
		models.SubscriptionTypePaid, models.SubscriptionStatusActive, &gone)

	expiring, err := storage.FindMembershipsExpiringWithin(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, soonID, expiring[0].ID)
}

func TestStorage_Users(t *testing.T) {
	storage := setupTestStorage(t)
	ctx := context.Background()

	uid := uuid.New().String()
	registered, err := storage.RegisterUser(ctx, models.User{
		UID:          uid,
		Email:        "author@example.com",
		Username:     "author",
		PasswordHash: "hashedpassword",
		Role:         models.RoleCreator,
	})
	require.NoError(t, err)
	assert.Equal(t, uid, registered)

	byName, err := storage.GetUserByUsername(ctx, "author")
	require.NoError(t, err)
	assert.Equal(t, uid, byName.UID)
	assert.Equal(t, models.RoleCreator, byName.Role)

	byUID, err := storage.GetUserByUID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "author", byUID.Username)

	_, err = storage.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestStorage_PaymentTokens(t *testing.T) {
	storage := setupTestStorage(t)
	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	userUID := factory.CreateUser(t, "payer", models.RoleUser)

	_, found, err := storage.FindPaymentToken(ctx, userUID, "tok-1")
	require.NoError(t, err)
	assert.False(t, found)

	id, err := storage.CreatePaymentToken(ctx, userUID, "tok-1")
	require.NoError(t, err)
	assert.NotZero(t, id)

	foundID, found, err := storage.FindPaymentToken(ctx, userUID, "tok-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, id, foundID)

	tokens, err := storage.ListPaymentTokens(ctx, userUID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "tok-1", tokens[0].Token)
}
