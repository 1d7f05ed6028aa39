package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmconnect/internal/app"
	"farmconnect/internal/config"
	"farmconnect/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func memoryConfig() *config.Config {
	return &config.Config{
		StoreDriver: config.DriverMemory,
		JWTSecret:   "test_jwt_secret",
		CORSOrigins: "*",
	}
}

func TestOpenStore(t *testing.T) {
	store, closeStore, err := app.OpenStore(memoryConfig())
	require.NoError(t, err)
	assert.NotNil(t, store.Products)
	assert.NoError(t, closeStore())

	cfg := memoryConfig()
	cfg.StoreDriver = "mongo"
	_, _, err = app.OpenStore(cfg)
	assert.Error(t, err)
}

func TestNew_SeedsCatalog(t *testing.T) {
	a, err := app.New(memoryConfig())
	require.NoError(t, err)
	defer a.Shutdown()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/api/v1/rental/machines/6", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBuild_PublishesEvents(t *testing.T) {
	store := repositories.NewMemoryStore()
	require.NoError(t, repositories.Seed(store))

	mq := new(MockPublisher)
	mq.On("Publish", "farmconnect", "listing.created", mock.Anything).Return(nil).Once()
	a := app.Build(memoryConfig(), store, mq)
	defer a.Shutdown()

	resp, err := a.Fiber.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token := registerAndLogin(t, a)
	req := jsonRequest(t, http.MethodPost, "/api/v1/marketplace/products", map[string]any{
		"title": "Jaggery Blocks", "price": 60, "type": "sell", "category": "fruits", "seller": "Meena",
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = a.Fiber.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	mq.AssertExpectations(t)
}

func TestShutdown_CancelsPendingChatReply(t *testing.T) {
	cfg := memoryConfig()
	cfg.ChatReplyDelay = time.Hour
	a, err := app.New(cfg)
	require.NoError(t, err)

	id, _ := a.Chat.StartSession()
	type result struct {
		resp *http.Response
		err  error
	}
	req := jsonRequest(t, http.MethodPost, "/api/v1/chatbot/sessions/"+id+"/messages", map[string]string{"text": "hello"})
	done := make(chan result, 1)
	go func() {
		resp, err := a.Fiber.Test(req, -1)
		done <- result{resp, err}
	}()

	require.Eventually(t, func() bool {
		state, err := a.Chat.Session(id)
		return err == nil && state.Typing
	}, 2*time.Second, time.Millisecond)

	require.NoError(t, a.Shutdown())

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.Equal(t, http.StatusServiceUnavailable, r.resp.StatusCode)
	case <-time.After(2 * time.Second):
		t.Fatal("message request still pending after Shutdown")
	}

	state, err := a.Chat.Session(id)
	require.NoError(t, err)
	assert.Len(t, state.Messages, 2)
	assert.False(t, state.Typing)
}
