package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/infrastructure/telegram"
)

func TestSendMessage_PeticionCorrecta(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := telegram.NewClientWithBaseURL("token-123", "chat-456", srv.URL)
	err := c.SendMessage(context.Background(), "hola bodega")
	require.NoError(t, err)

	assert.Equal(t, "/bottoken-123/sendMessage", gotPath)
	assert.Equal(t, "chat-456", gotBody["chat_id"])
	assert.Equal(t, "hola bodega", gotBody["text"])
}

func TestSendMessage_APIRechaza(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := telegram.NewClientWithBaseURL("token-123", "chat-456", srv.URL)
	err := c.SendMessage(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendMessage_RespuestaNoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := telegram.NewClientWithBaseURL("token-123", "chat-456", srv.URL)
	err := c.SendMessage(context.Background(), "hola")
	assert.Error(t, err)
}

func TestSendMessage_ConfiguracionIncompleta(t *testing.T) {
	err := telegram.NewClient("", "chat-456").SendMessage(context.Background(), "hola")
	assert.Error(t, err, "token vacío debe rechazarse antes de llamar a la red")

	err = telegram.NewClient("token-123", "").SendMessage(context.Background(), "hola")
	assert.Error(t, err, "chat vacío debe rechazarse antes de llamar a la red")
}
