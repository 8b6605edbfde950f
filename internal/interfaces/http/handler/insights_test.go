package handler

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	insightsapp "github.com/tokenestate/backend/internal/application/insights"
	"github.com/tokenestate/backend/internal/infrastructure/cache"
	"github.com/tokenestate/backend/internal/infrastructure/llm"
	"github.com/tokenestate/backend/internal/interfaces/http/dto"
	"github.com/tokenestate/backend/tests/testutil"
	"go.uber.org/zap"
)

type cannedCompleter struct {
	calls atomic.Int32
	err   error
}

func (c *cannedCompleter) Complete(context.Context, []llm.Message) (*llm.Completion, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return &llm.Completion{Text: "Steady demand near the waterfront.", Model: "test-model"}, nil
}

func TestInsightsHandler_ForProperty(t *testing.T) {
	t.Run("generates then serves from cache", func(t *testing.T) {
		props := new(testutil.MockPropertyRepository)
		completer := &cannedCompleter{}
		svc := insightsapp.NewService(completer, props, nil, cache.NewMemoryStore(time.Hour, time.Minute), time.Hour, zap.NewNop())
		h := NewInsightsHandler(svc)

		p := listing(t, "Harbor Lofts", true)
		props.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		path := "/insights/properties/" + p.ID.String()

		w := perform(t, investor(), http.MethodGet, "/insights/properties/:id", path, nil, h.ForProperty)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		first := decodeData[insightsapp.InsightResponse](t, w)
		assert.False(t, first.Cached)
		assert.Equal(t, "test-model", first.Model)

		w = perform(t, investor(), http.MethodGet, "/insights/properties/:id", path, nil, h.ForProperty)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decodeData[insightsapp.InsightResponse](t, w).Cached)
		assert.Equal(t, int32(1), completer.calls.Load())
	})

	t.Run("disabled without a gateway", func(t *testing.T) {
		h := NewInsightsHandler(insightsapp.NewService(nil, nil, nil, nil, time.Hour, zap.NewNop()))
		p := listing(t, "Harbor Lofts", true)
		w := perform(t, investor(), http.MethodGet, "/insights/properties/:id", "/insights/properties/"+p.ID.String(), nil, h.ForProperty)
		assertError(t, w, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable)
	})

	t.Run("gateway outage", func(t *testing.T) {
		props := new(testutil.MockPropertyRepository)
		h := NewInsightsHandler(insightsapp.NewService(&cannedCompleter{err: llm.ErrGatewayUnavailable}, props, nil, nil, time.Hour, zap.NewNop()))
		p := listing(t, "Harbor Lofts", true)
		props.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		w := perform(t, investor(), http.MethodGet, "/insights/properties/:id", "/insights/properties/"+p.ID.String(), nil, h.ForProperty)
		assertError(t, w, http.StatusServiceUnavailable, dto.ErrCodeServiceUnavailable)
	})

	t.Run("drafts are hidden", func(t *testing.T) {
		props := new(testutil.MockPropertyRepository)
		h := NewInsightsHandler(insightsapp.NewService(&cannedCompleter{}, props, nil, nil, time.Hour, zap.NewNop()))
		p := listing(t, "Quiet Draft", false)
		props.On("FindByID", mock.Anything, p.ID).Return(p, nil)

		w := perform(t, investor(), http.MethodGet, "/insights/properties/:id", "/insights/properties/"+p.ID.String(), nil, h.ForProperty)
		assertError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})
}
