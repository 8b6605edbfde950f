package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/internal/infrastructure/config"
	"golang.org/x/text/language"
)

func newTestSender(t *testing.T, url string) *HTTPSender {
	t.Helper()
	s, err := NewHTTPSender(config.EmailConfig{Endpoint: url, APIKey: "re_test", From: "TokenEstate <noreply@test.io>"}, nil)
	require.NoError(t, err)
	return s
}

func TestHTTPSender_Send(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_123"}`))
	}))
	defer srv.Close()

	id, err := newTestSender(t, srv.URL).Send(context.Background(), Message{
		To:      []string{"friend@example.com"},
		Subject: "Hello",
		Text:    "Hi",
		Tags:    map[string]string{"category": "test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "msg_123", id)
	assert.Equal(t, "TokenEstate <noreply@test.io>", got.From)
	assert.Equal(t, []string{"friend@example.com"}, got.To)
	assert.Equal(t, []emailTag{{Name: "category", Value: "test"}}, got.Tags)
}

func TestHTTPSender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"validation error", http.StatusUnprocessableEntity, `{"name":"validation_error","message":"Invalid to field"}`, ErrRequestRejected, "Invalid to field"},
		{"unauthorized without body", http.StatusUnauthorized, ``, ErrRequestRejected, "HTTP 401"},
		{"provider down", http.StatusBadGateway, `oops`, ErrProviderUnavailable, "HTTP 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestSender(t, srv.URL).Send(context.Background(), Message{To: []string{"a@b.io"}})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestHTTPSender_RequiresRecipients(t *testing.T) {
	_, err := newTestSender(t, "http://127.0.0.1:1").Send(context.Background(), Message{Subject: "x"})
	assert.ErrorIs(t, err, ErrRequestRejected)
}

func TestNewHTTPSender_RequiresKey(t *testing.T) {
	_, err := NewHTTPSender(config.EmailConfig{Endpoint: "http://x"}, nil)
	require.Error(t, err)
}

func TestComposer_ReferralInvite(t *testing.T) {
	msg, err := NewComposer(language.AmericanEnglish).ReferralInvite("friend@example.com", ReferralInvite{
		ReferrerName: "Ada <Lovelace>",
		Code:         "K7P2QX9M",
		SignupURL:    "https://app.tokenestate.io/signup?ref=K7P2QX9M",
		Reward:       valueobject.USDAmount(decimal.NewFromInt(1250)),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"friend@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "Ada <Lovelace>")
	assert.Contains(t, msg.HTML, "Ada &lt;Lovelace&gt;")
	assert.Contains(t, msg.HTML, "K7P2QX9M")
	assert.Contains(t, msg.HTML, "1,250.00")
	assert.Contains(t, msg.Text, "https://app.tokenestate.io/signup?ref=K7P2QX9M")
	assert.Equal(t, "referral_invite", msg.Tags["category"])
}

func TestComposer_NoReward(t *testing.T) {
	msg, err := NewComposer(language.AmericanEnglish).ReferralInvite("x@y.io", ReferralInvite{
		ReferrerName: "Ada", Code: "AAAAAAAA", SignupURL: "https://x", Reward: valueobject.Zero(valueobject.USD),
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.Text, "earns")
}
