package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

type fakeTelegramAPI struct {
	mu       sync.Mutex
	paths    []string
	payloads []map[string]any
}

func (api *fakeTelegramAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{}
	_ = json.NewDecoder(r.Body).Decode(&payload)

	api.mu.Lock()
	api.paths = append(api.paths, r.URL.Path)
	api.payloads = append(api.payloads, payload)
	api.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
}

func TestTelegramSenderSendsMessage(t *testing.T) {
	api := &fakeTelegramAPI{}
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	sender, err := newTelegramSender(telebot.Settings{Token: "test-token", URL: server.URL})
	require.NoError(t, err)

	require.NoError(t, sender.Send(context.Background(), 42, "period soon"))

	require.Len(t, api.paths, 1)
	assert.True(t, strings.HasSuffix(api.paths[0], "/bottest-token/sendMessage"), api.paths[0])
	assert.Equal(t, "42", api.payloads[0]["chat_id"])
	assert.Equal(t, "period soon", api.payloads[0]["text"])
}

func TestTelegramSenderRejectsMissingChat(t *testing.T) {
	sender, err := newTelegramSender(telebot.Settings{Token: "test-token", URL: "http://127.0.0.1:0"})
	require.NoError(t, err)
	assert.True(t, errors.Is(sender.Send(context.Background(), 0, "hello"), ErrChatIDMissing))
}

func TestNewTelegramSenderRequiresToken(t *testing.T) {
	_, err := NewTelegramSender("  ")
	assert.Error(t, err)
}

func TestNewSenderFallsBackToLogging(t *testing.T) {
	var output bytes.Buffer
	log := logrus.New()
	log.SetOutput(&output)
	log.SetFormatter(&logrus.JSONFormatter{})

	sender, err := NewSender("", log)
	require.NoError(t, err)
	require.IsType(t, &LogSender{}, sender)

	require.NoError(t, sender.Send(context.Background(), 7, "fertile window"))
	assert.Contains(t, output.String(), `"chat_id":7`)
	assert.Contains(t, output.String(), `"component":"notify"`)
}
