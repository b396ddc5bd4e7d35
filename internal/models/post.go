package models

import "time"

// Видимость публикации.
const (
	// VisibilityPublic — публикация видна любому, у кого открыта лента автора.
	VisibilityPublic = "public"
	// VisibilityMembersOnly — содержимое публикации видно только
	// при действующем платном членстве.
	VisibilityMembersOnly = "members_only"
)

// Post представляет публикацию автора. Принадлежит ровно одному автору;
// редактирование публикаций в эту подсистему не входит.
type Post struct {
	ID         string    // Уникальный идентификатор публикации
	CreatorUID string    // UID автора публикации
	Title      string    // Заголовок
	Body       string    // Содержимое
	Visibility string    // Видимость: public или members_only
	CreatedAt  time.Time // Дата публикации
}

// PostView — публикация, подготовленная к выдаче зрителю.
// Для закрытой публикации без членства Locked = true, а Title и Body
// очищены; метаданные (ID, автор, дата) сохраняются всегда, чтобы
// слой представления мог показать заблокированный анонс.
type PostView struct {
	ID         string    `json:"id"`
	CreatorUID string    `json:"creator_uid"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	Visibility string    `json:"visibility"`
	Locked     bool      `json:"locked"`
	CreatedAt  time.Time `json:"created_at"`
}

// DummyPostRequest используется для приёма новой публикации из JSON-запроса.
type DummyPostRequest struct {
	Title      string `json:"title" validate:"required"`                            // Заголовок
	Body       string `json:"body" validate:"required"`                             // Содержимое
	Visibility string `json:"visibility" validate:"required,oneof=public members_only"` // Видимость
}
