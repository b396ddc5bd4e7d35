// Package access вычисляет доступ зрителя к контенту автора.
//
// Пакет не обращается к сети и хранилищу: все решения — чистые функции
// от снимка состояния (models.AccessSnapshot) и атрибутов публикации.
// Одна и та же логика используется в двух точках: при открытии ленты
// автора (проверка списка целиком) и при выдаче каждой публикации
// (проверка отдельного элемента). Отсутствие доступа — нормальный
// результат, а не ошибка.
package access

import (
	"time"

	"github.com/magabrotheeeer/creator-platform/internal/models"
)

// Verdict — вердикт доступа к публикации или списку публикаций.
type Verdict string

const (
	// VerdictFull — показать публикацию полностью.
	VerdictFull Verdict = "full"
	// VerdictRestricted — показать заблокированный анонс:
	// метаданные доступны, заголовок и содержимое скрыты.
	VerdictRestricted Verdict = "restricted"
	// VerdictDenied — список недоступен целиком, не запрашивать и не показывать.
	VerdictDenied Verdict = "denied"
)

// Причины отказа на уровне списка. Слой представления по причине
// "not subscribed" ведёт зрителя к кнопке подписки, а не к общей ошибке.
const ReasonNotSubscribed = "not subscribed to this creator"

// ListDecision — решение по доступу к ленте автора целиком.
type ListDecision struct {
	Verdict Verdict // full либо denied
	Reason  string  // Заполняется при отказе
}

// Allowed сообщает, можно ли запрашивать ленту.
func (d ListDecision) Allowed() bool {
	return d.Verdict == VerdictFull
}

// MembershipBenefit — вычисленное право на просмотр закрытых публикаций.
// Выводится только из типа подписки и даты окончания оплаченного
// периода. Статус отмены сюда не входит: отменённое платное членство
// действует до ExpiresAt.
type MembershipBenefit struct {
	Active    bool
	ExpiresAt time.Time
}

// BenefitOf вычисляет право на членство из снимка подписки.
// Право действует, если подписка платная и оплаченный период ещё
// не истёк на момент now. Поле Status намеренно не участвует.
func BenefitOf(sub *models.Subscription, now time.Time) MembershipBenefit {
	if sub == nil || !sub.IsPaid() || sub.ExpiresAt == nil {
		return MembershipBenefit{}
	}
	if !sub.ExpiresAt.After(now) {
		return MembershipBenefit{}
	}
	return MembershipBenefit{Active: true, ExpiresAt: *sub.ExpiresAt}
}

// HasMembershipBenefit — предикат поверх BenefitOf для точек,
// которым не нужна дата окончания.
func HasMembershipBenefit(sub *models.Subscription, now time.Time) bool {
	return BenefitOf(sub, now).Active
}

// ResolveList решает, доступна ли лента автора целиком.
// Администратор и владелец получают полный доступ безусловно.
// Остальным нужна хотя бы бесплатная подписка: лента автора не
// просматривается поэлементно без отношения подписки.
func ResolveList(snap models.AccessSnapshot) ListDecision {
	if snap.IsAdmin || snap.IsOwner {
		return ListDecision{Verdict: VerdictFull}
	}
	if snap.Subscription == nil {
		return ListDecision{Verdict: VerdictDenied, Reason: ReasonNotSubscribed}
	}
	return ListDecision{Verdict: VerdictFull}
}

// ResolveItem решает видимость одной публикации внутри уже
// доступного списка. Администратор видит всё; публичные публикации
// открыты при любой непустой подписке, включая бесплатную; закрытые —
// только при действующем членстве, иначе выдаётся анонс.
func ResolveItem(snap models.AccessSnapshot, visibility string) Verdict {
	switch {
	case snap.IsAdmin:
		return VerdictFull
	case snap.IsOwner:
		return VerdictFull
	case visibility == models.VisibilityPublic:
		return VerdictFull
	case HasMembershipBenefit(snap.Subscription, snap.Now):
		return VerdictFull
	default:
		return VerdictRestricted
	}
}

// Redact готовит публикацию к выдаче согласно вердикту.
// Для restricted скрываются только заголовок и содержимое: метаданные
// нужны слою представления для заблокированного анонса.
func Redact(post *models.Post, verdict Verdict) models.PostView {
	view := models.PostView{
		ID:         post.ID,
		CreatorUID: post.CreatorUID,
		Visibility: post.Visibility,
		CreatedAt:  post.CreatedAt,
	}
	if verdict == VerdictFull {
		view.Title = post.Title
		view.Body = post.Body
		return view
	}
	view.Locked = true
	return view
}
