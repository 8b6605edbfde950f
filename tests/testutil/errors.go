package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenestate/backend/internal/domain/shared"
)

// AssertDomainCode fails unless err is a DomainError carrying code
func AssertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.True(t, errors.As(err, &de), "expected a domain error, got %T: %v", err, err)
	assert.Equal(t, code, de.Code)
}
