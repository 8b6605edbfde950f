package accreditation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared"
)

const year = 365 * 24 * time.Hour

func submitted(t *testing.T) *Accreditation {
	t.Helper()
	a, err := Submit(uuid.New(), TypeIncome, []Document{{Name: "w2.pdf", StorageKey: "kyc/w2.pdf"}})
	require.NoError(t, err)
	return a
}

func TestSubmit(t *testing.T) {
	a := submitted(t)
	assert.Equal(t, StatusSubmitted, a.Status)
	require.Len(t, a.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeAccreditationSubmitted, a.GetDomainEvents()[0].EventType())

	tests := []struct {
		name string
		typ  Type
		docs []Document
	}{
		{"unknown type", "LOTTERY", []Document{{StorageKey: "k"}}},
		{"no documents", TypeIncome, nil},
		{"missing key", TypeIncome, []Document{{Name: "a"}}},
		{"too many", TypeIncome, make([]Document, MaxDocuments+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Submit(uuid.New(), tt.typ, tt.docs)
			assert.Error(t, err)
		})
	}
}

func TestAccreditation_ApproveAndExpire(t *testing.T) {
	a := submitted(t)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, a.StartReview(uuid.New()))
	require.NoError(t, a.Approve(uuid.New(), now, year))
	assert.Equal(t, StatusApproved, a.Status)
	assert.True(t, a.IsActive(now.Add(24*time.Hour)))

	assert.False(t, a.Expire(now.Add(year-time.Second)))
	assert.True(t, a.Expire(now.Add(year)))
	assert.Equal(t, StatusExpired, a.Status)
	assert.False(t, a.IsActive(now))
	assert.False(t, a.Expire(now.Add(2*year)), "already expired")
}

func TestAccreditation_Reject(t *testing.T) {
	a := submitted(t)
	assert.Error(t, a.Reject(uuid.New(), "", time.Now()))
	require.NoError(t, a.Reject(uuid.New(), "blurry scan", time.Now()))
	assert.Equal(t, "blurry scan", a.RejectionReason)

	assert.ErrorIs(t, a.Approve(uuid.New(), time.Now(), year), shared.ErrInvalidState)
	assert.ErrorIs(t, a.StartReview(uuid.New()), shared.ErrInvalidState)
}
