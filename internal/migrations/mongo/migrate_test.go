package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections(t *testing.T) {
	defs := Collections()

	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)

		schema, ok := def.Validator["$jsonSchema"].(bson.M)
		require.True(t, ok, "%s has no $jsonSchema", def.Name)
		assert.Equal(t, "object", schema["bsonType"])
		assert.NotEmpty(t, schema["required"], def.Name)
		assert.NotEmpty(t, def.Indexes, def.Name)
	}

	assert.Equal(t, []string{"cafe", "slot", "booking", "user"}, names)
}

func TestSlotIndexCoversListQuery(t *testing.T) {
	keys, ok := SlotIndexes[0].Keys.(bson.D)
	require.True(t, ok)

	var fields []string
	for _, e := range keys {
		fields = append(fields, e.Key)
	}
	assert.Equal(t, []string{"cafe_id", "date", "start_time"}, fields)
}

func TestUserEmailUnique(t *testing.T) {
	require.NotNil(t, UserIndexes[0].Options)
	require.NotNil(t, UserIndexes[0].Options.Unique)
	assert.True(t, *UserIndexes[0].Options.Unique)
}

func TestBookingStatusEnum(t *testing.T) {
	props := validatorProperties(t, Collections()[2].Validator)
	status, ok := props["status"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, []string{"pending", "confirmed", "cancelled"}, status["enum"])
}

func validatorProperties(t *testing.T, validator bson.M) bson.M {
	t.Helper()
	schema, ok := validator["$jsonSchema"].(bson.M)
	require.True(t, ok)
	props, ok := schema["properties"].(bson.M)
	require.True(t, ok)
	return props
}
