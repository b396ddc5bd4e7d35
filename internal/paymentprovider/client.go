// Package paymentprovider реализует клиент платёжного провайдера:
// создание платежа по сохранённому токену и разбор вебхука
// подтверждения оплаты членства.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client — HTTP-клиент платёжного провайдера.
type Client struct {
	shopID     string
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент платёжного провайдера.
func NewClient(shopID, secretKey string) *Client {
	return &Client{
		shopID:     shopID,
		secretKey:  secretKey,
		apiURL:     "https://api.yookassa.ru/v3",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.shopID + ":" + c.secretKey))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	// Повтор запроса с тем же ключом не создаёт второй платёж
	req.Header.Set("Idempotence-Key", uuid.New().String())
	return req, nil
}

// CreatePayment отправляет запрос на создание платежа по сохранённому токену.
func (c *Client) CreatePayment(ctx context.Context, reqParams CreatePaymentRequest) (*CreatePaymentResponse, error) {
	const op = "paymentprovider.CreatePayment"

	req, err := c.newRequest(ctx, http.MethodPost, "/payments", reqParams)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var paymentResp CreatePaymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&paymentResp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &paymentResp, nil
}

// ParseWebhook разбирает тело вебхука провайдера.
func ParseWebhook(body []byte) (*WebhookNotification, error) {
	var notification WebhookNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		return nil, fmt.Errorf("paymentprovider.ParseWebhook: %w", err)
	}
	if notification.Type != "notification" {
		return nil, errors.New("paymentprovider.ParseWebhook: unexpected payload type")
	}
	return &notification, nil
}
