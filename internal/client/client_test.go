package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"cookbook-service/internal/api"
	"cookbook-service/internal/core/cookbook"
	"cookbook-service/internal/infrastructure/config"
	"cookbook-service/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080, RequestTimeout: time.Second},
		BodyLimit: 1 << 20,
	}
	svc := cookbook.NewService(cookbook.NewRegistry(), cookbook.SummarizerOptions{DetectCycles: true}, nil)
	router, err := api.SetupRouter(cfg, svc, nil)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second)
}

func TestClient_ParseName(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	got, err := c.ParseName(ctx, "alpHa-alFRedo")
	require.NoError(t, err)
	assert.Equal(t, "Alpha Alfredo", got)

	_, err = c.ParseName(ctx, "123")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, common.ErrCodeInvalidName, apiErr.Code)
	assert.Equal(t, "Invalid recipe name", apiErr.Message)
}

func TestClient_CreateEntryAndSummary(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	entries := []common.EntryRequest{
		{Type: "ingredient", Name: "egg", CookTime: common.IntPtr(5)},
		{Type: "ingredient", Name: "butter", CookTime: common.IntPtr(2)},
		{Type: "recipe", Name: "sauce", RequiredItems: []common.RequiredItemRequest{
			{Name: common.StringPtr("egg"), Quantity: common.IntPtr(2)},
			{Name: common.StringPtr("butter"), Quantity: common.IntPtr(1)},
		}},
		{Type: "recipe", Name: "omelette", RequiredItems: []common.RequiredItemRequest{
			{Name: common.StringPtr("egg"), Quantity: common.IntPtr(3)},
			{Name: common.StringPtr("sauce"), Quantity: common.IntPtr(1)},
		}},
	}
	for _, e := range entries {
		require.NoError(t, c.CreateEntry(ctx, e))
	}

	err := c.CreateEntry(ctx, entries[0])
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "duplicate name", apiErr.Message)
	assert.Equal(t, common.ErrCodeInvalidEntry, apiErr.Code)

	summary, err := c.Summary(ctx, "omelette")
	require.NoError(t, err)
	assert.Equal(t, &common.SummaryResponse{
		Name:     "omelette",
		CookTime: 27,
		Ingredients: []common.IngredientQuantity{
			{Name: "egg", Quantity: 5},
			{Name: "butter", Quantity: 1},
		},
	}, summary)

	_, err = c.Summary(ctx, "egg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Unreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)

	_, err := c.ParseName(context.Background(), "soup")
	assert.ErrorContains(t, err, "parse request failed")
}
