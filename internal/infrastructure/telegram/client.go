// Package telegram implementa el envío de alertas por la Bot API de Telegram.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/notifier"
)

// Verificar en tiempo de compilación que Client implementa Messenger.
var _ notifier.Messenger = (*Client)(nil)

const defaultBaseURL = "https://api.telegram.org"

// Client adaptador que implementa notifier.Messenger usando la Bot API de
// Telegram. Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	token      string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. Si token está vacío los envíos devuelven
// error descriptivo en lugar de panic.
func NewClient(token, chatID string) *Client {
	return &Client{
		token:   token,
		chatID:  chatID,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewClientWithBaseURL construye el cliente contra otra URL base (tests).
func NewClientWithBaseURL(token, chatID, baseURL string) *Client {
	c := NewClient(token, chatID)
	c.baseURL = baseURL
	return c
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// SendMessage envía un mensaje de texto al chat configurado.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if c.token == "" {
		return fmt.Errorf("telegram: falta TELEGRAM_BOT_TOKEN")
	}
	if c.chatID == "" {
		return fmt.Errorf("telegram: falta TELEGRAM_CHAT_ID")
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: c.chatID, Text: text})
	if err != nil {
		return fmt.Errorf("telegram: serializar petición: %w", err)
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: construir petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: enviar mensaje: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram: leer respuesta: %w", err)
	}
	var out sendMessageResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("telegram: respuesta inválida (HTTP %d): %w", resp.StatusCode, err)
	}
	if !out.OK {
		return fmt.Errorf("telegram: la API rechazó el mensaje (HTTP %d): %s", resp.StatusCode, out.Description)
	}
	return nil
}
