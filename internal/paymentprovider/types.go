package paymentprovider

// Amount — сумма платежа в строковом представлении провайдера.
type Amount struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// CreatePaymentRequest — запрос на списание по сохранённому токену.
// В metadata передаётся ID подписки: вебхук подтверждения вернёт его
// обратно, и по нему подписка будет переведена в платное членство.
type CreatePaymentRequest struct {
	Amount            Amount            `json:"amount"`
	PaymentToken      string            `json:"payment_token"`
	Capture           bool              `json:"capture"`
	Description       string            `json:"description"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	SavePaymentMethod bool              `json:"save_payment_method"`
}

// CreatePaymentResponse — ответ провайдера на создание платежа.
type CreatePaymentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"` // pending, waiting_for_capture, succeeded, canceled
	Amount Amount `json:"amount"`
	Paid   bool   `json:"paid"`
}

// WebhookNotification — уведомление провайдера об изменении статуса платежа.
type WebhookNotification struct {
	Type   string `json:"type"`  // notification
	Event  string `json:"event"` // payment.succeeded, payment.canceled
	Object struct {
		ID       string            `json:"id"`
		Status   string            `json:"status"`
		Amount   Amount            `json:"amount"`
		Metadata map[string]string `json:"metadata"`
	} `json:"object"`
}

// События вебхука, которые обрабатывает платформа.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)
