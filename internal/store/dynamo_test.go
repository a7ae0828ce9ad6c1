package store

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAttributeValues(t *testing.T) {
	av := Key{"truck_id": "truck-42"}.attributeValues()

	require.Len(t, av, 1)
	member, ok := av["truck_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "truck-42", member.Value)
}

func TestBuildUpdateExpressionSetsNamedFields(t *testing.T) {
	expr, err := buildUpdateExpression(map[string]any{
		"status":       "active",
		"last_updated": int64(1700000000),
	})
	require.NoError(t, err)

	require.NotNil(t, expr.Update())
	assert.Contains(t, *expr.Update(), "SET")

	// Both field names go through expression attribute names, so
	// reserved words like "status" are safe.
	names := make([]string, 0, len(expr.Names()))
	for _, name := range expr.Names() {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"status", "last_updated"}, names)
	assert.Len(t, expr.Values(), 2)
}

func TestBuildUpdateExpressionValueTypes(t *testing.T) {
	expr, err := buildUpdateExpression(map[string]any{"notes": "brake check"})
	require.NoError(t, err)

	require.Len(t, expr.Values(), 1)
	for _, value := range expr.Values() {
		member, ok := value.(*types.AttributeValueMemberS)
		require.True(t, ok)
		assert.Equal(t, "brake check", member.Value)
	}
}
