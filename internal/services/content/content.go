// Package services содержит бизнес-логику работы с публикациями:
// создание, выдачу ленты автора и общей ленты зрителя.
//
// Перед выдачей каждая публикация проходит через вычисление доступа
// (пакет access): лента автора сначала проверяется целиком, затем
// каждая публикация отдельно редактируется по вердикту.
package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/creator-platform/internal/access"
	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// ErrNotSubscribed возвращается при попытке открыть ленту автора
// без отношения подписки.
var ErrNotSubscribed = errors.New(access.ReasonNotSubscribed)

// PostRepository описывает контракт для работы с публикациями в хранилище.
type PostRepository interface {
	// CreatePost добавляет новую публикацию.
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	// ReadPost возвращает публикацию по ID.
	ReadPost(ctx context.Context, id string) (*models.Post, error)
	// ListPostsByCreator возвращает публикации автора с пагинацией.
	ListPostsByCreator(ctx context.Context, creatorUID string, limit, offset int) ([]*models.Post, error)
	// ListFeedPosts возвращает публикации авторов, на которых подписан зритель.
	ListFeedPosts(ctx context.Context, subscriberUID string, limit, offset int) ([]*models.Post, error)
}

// SnapshotProvider выдаёт текущую подписку зрителя на автора
// или nil, если отношения нет.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, subscriberUID, creatorUID string) (*models.Subscription, error)
}

// ContentService реализует выдачу публикаций с вычислением доступа.
type ContentService struct {
	posts     PostRepository
	snapshots SnapshotProvider
	log       *slog.Logger
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(posts PostRepository, snapshots SnapshotProvider, log *slog.Logger) *ContentService {
	return &ContentService{
		posts:     posts,
		snapshots: snapshots,
		log:       log,
	}
}

// Viewer — идентичность зрителя, от имени которого выполняется запрос.
type Viewer struct {
	UID  string
	Role string
}

// buildSnapshot снимает состояние доступа зрителя к автору один раз:
// все последующие вердикты по запросу считаются от этого снимка.
func (s *ContentService) buildSnapshot(ctx context.Context, viewer Viewer, creatorUID string) (models.AccessSnapshot, error) {
	snap := models.AccessSnapshot{
		IsAdmin: viewer.Role == models.RoleAdmin,
		IsOwner: viewer.UID == creatorUID,
		Now:     time.Now().UTC(),
	}
	if snap.IsAdmin || snap.IsOwner {
		return snap, nil
	}
	sub, err := s.snapshots.Snapshot(ctx, viewer.UID, creatorUID)
	if err != nil {
		return models.AccessSnapshot{}, err
	}
	snap.Subscription = sub
	return snap, nil
}

// CreatePost публикует новую запись от имени автора.
// Публиковать могут только авторы и администратор.
func (s *ContentService) CreatePost(ctx context.Context, viewer Viewer, title, body, visibility string) (*models.Post, error) {
	if viewer.Role != models.RoleCreator && viewer.Role != models.RoleAdmin {
		return nil, models.ErrNotOwner
	}

	post := models.Post{
		ID:         uuid.New().String(),
		CreatorUID: viewer.UID,
		Title:      title,
		Body:       body,
		Visibility: visibility,
	}
	created, err := s.posts.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new post",
		slog.String("id", created.ID), slog.String("visibility", created.Visibility))
	return created, nil
}

// ReadPost возвращает одну публикацию, отредактированную по вердикту
// доступа. Закрытая публикация без членства выдаётся как анонс,
// а не как ошибка.
func (s *ContentService) ReadPost(ctx context.Context, viewer Viewer, postID string) (*models.PostView, error) {
	post, err := s.posts.ReadPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	snap, err := s.buildSnapshot(ctx, viewer, post.CreatorUID)
	if err != nil {
		return nil, err
	}
	if decision := access.ObserveList(access.ResolveList(snap)); !decision.Allowed() {
		return nil, ErrNotSubscribed
	}

	verdict := access.ObserveItem(access.ResolveItem(snap, post.Visibility))
	view := access.Redact(post, verdict)
	return &view, nil
}

// ListByCreator возвращает ленту автора. Сначала проверяется доступ
// к списку целиком: без подписки лента не запрашивается вовсе.
// Затем каждая публикация редактируется по собственному вердикту.
func (s *ContentService) ListByCreator(ctx context.Context, viewer Viewer, creatorUID string, limit, offset int) ([]models.PostView, error) {
	snap, err := s.buildSnapshot(ctx, viewer, creatorUID)
	if err != nil {
		return nil, err
	}
	if decision := access.ObserveList(access.ResolveList(snap)); !decision.Allowed() {
		return nil, ErrNotSubscribed
	}

	posts, err := s.posts.ListPostsByCreator(ctx, creatorUID, limit, offset)
	if err != nil {
		return nil, err
	}
	return redactAll(snap, posts), nil
}

// Feed возвращает публикации всех авторов, на которых подписан зритель.
// Подписки у авторов разные, поэтому снимок берётся отдельно на автора.
func (s *ContentService) Feed(ctx context.Context, viewer Viewer, limit, offset int) ([]models.PostView, error) {
	posts, err := s.posts.ListFeedPosts(ctx, viewer.UID, limit, offset)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[string]models.AccessSnapshot)
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		snap, ok := snapshots[post.CreatorUID]
		if !ok {
			snap, err = s.buildSnapshot(ctx, viewer, post.CreatorUID)
			if err != nil {
				return nil, err
			}
			snapshots[post.CreatorUID] = snap
		}
		verdict := access.ObserveItem(access.ResolveItem(snap, post.Visibility))
		views = append(views, access.Redact(post, verdict))
	}
	return views, nil
}

func redactAll(snap models.AccessSnapshot, posts []*models.Post) []models.PostView {
	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		verdict := access.ObserveItem(access.ResolveItem(snap, post.Visibility))
		views = append(views, access.Redact(post, verdict))
	}
	return views
}
