package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

const postColumns = `id, creator_uid, title, body, visibility, created_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	var post models.Post
	if err := row.Scan(&post.ID, &post.CreatorUID, &post.Title,
		&post.Body, &post.Visibility, &post.CreatedAt); err != nil {
		return nil, err
	}
	return &post, nil
}

// CreatePost вставляет новую публикацию автора.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO posts (id, creator_uid, title, body, visibility)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + postColumns
	row := s.DB.QueryRowContext(ctx, query,
		post.ID, post.CreatorUID, post.Title, post.Body, post.Visibility)
	result, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadPost возвращает публикацию по ID.
func (s *Storage) ReadPost(ctx context.Context, id string) (*models.Post, error) {
	const op = "storage.ReadPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	result, err := scanPost(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPostNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPostsByCreator возвращает публикации автора с пагинацией,
// от новых к старым.
func (s *Storage) ListPostsByCreator(ctx context.Context, creatorUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListPostsByCreator"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `
			  FROM posts
			  WHERE creator_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, creatorUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		item, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListFeedPosts возвращает публикации всех авторов, на которых подписан
// зритель. Проверка уровня списка выполнена самим соединением
// с таблицей подписок: в выдачу попадают только авторы с существующим
// отношением подписки.
func (s *Storage) ListFeedPosts(ctx context.Context, subscriberUID string, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListFeedPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT p.id, p.creator_uid, p.title, p.body, p.visibility, p.created_at
			  FROM posts p
			  JOIN subscriptions s ON s.creator_uid = p.creator_uid
			  WHERE s.subscriber_uid = $1
			  ORDER BY p.created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, subscriberUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Post
	for rows.Next() {
		item, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
