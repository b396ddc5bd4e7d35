package models

import "time"

// AccessSnapshot — снимок состояния, по которому вычисляется доступ
// зрителя к контенту автора. Снимается один раз перед вычислением:
// решение воспроизводимо и тестируемо без гонки с часами.
// Subscription равен nil, если отношения между зрителем и автором нет.
type AccessSnapshot struct {
	IsAdmin      bool          // Зритель — администратор
	IsOwner      bool          // Зритель — владелец контента (равенство UID)
	Subscription *Subscription // Подписка зрителя на автора, nil если отсутствует
	Now          time.Time     // Момент вычисления
}
