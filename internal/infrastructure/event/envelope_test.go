package event

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/investment"
	"github.com/tokenestate/backend/internal/domain/prediction"
	"github.com/tokenestate/backend/internal/domain/shared/valueobject"
	"github.com/tokenestate/backend/tests/testutil"
)

func TestCodec_EncodeDecode(t *testing.T) {
	codec := NewCodec()
	inv, err := investment.NewInvestment(uuid.New(), uuid.New(), 12, valueobject.USDAmount(decimal.NewFromInt(50)))
	require.NoError(t, err)
	evt := investment.NewInvestmentSettledEvent(inv)

	data, err := codec.Encode(evt)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, investment.EventTypeInvestmentSettled, raw["type"])
	assert.Equal(t, investment.AggregateTypeInvestment, raw["aggregate_type"])
	assert.Equal(t, inv.ID.String(), raw["aggregate_id"])

	env, decoded, err := codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID(), env.ID)
	settled, ok := decoded.(*investment.InvestmentSettledEvent)
	require.True(t, ok)
	assert.Equal(t, inv.ID, settled.AggregateID())
}

func TestCodec_SharedEventStructs(t *testing.T) {
	codec := NewCodec()
	for _, typ := range []string{
		prediction.EventTypeMarketOpened,
		prediction.EventTypeMarketResolved,
		"ReferralRewarded",
		"AccreditationExpired",
	} {
		assert.True(t, codec.IsRegistered(typ), typ)
	}
}

func TestCodec_UnknownType(t *testing.T) {
	codec := NewCodec()
	data, err := codec.Encode(testutil.NewTestEvent("SomethingElse"))
	require.NoError(t, err)

	env, evt, err := codec.Decode(data)
	assert.Error(t, err)
	assert.Nil(t, evt)
	require.NotNil(t, env)
	assert.Equal(t, "SomethingElse", env.Type)

	codec.Register("SomethingElse", &testutil.TestEvent{})
	_, evt, err = codec.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "test-data", evt.(*testutil.TestEvent).Data)
}

func TestCodec_MalformedEnvelope(t *testing.T) {
	_, _, err := NewCodec().Decode([]byte("{not json"))
	assert.Error(t, err)
}
