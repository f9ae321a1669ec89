package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexSpecs(t *testing.T) {
	specs := indexSpecs()

	find := func(collection string, keys bson.D) bool {
		for _, m := range specs[collection] {
			if assert.ObjectsAreEqual(keys, m.Keys) {
				return true
			}
		}
		return false
	}

	assert.True(t, find(PropertiesCollection, bson.D{
		{Key: "address", Value: "text"}, {Key: "propertyName", Value: "text"},
	}), "keyword text index over address and propertyName")
	assert.True(t, find(PropertiesCollection, bson.D{
		{Key: "offer", Value: 1}, {Key: "type", Value: 1}, {Key: "price", Value: 1},
	}))
	assert.True(t, find(PropertiesCollection, bson.D{{Key: "user", Value: 1}}))

	unique := func(collection string, keys bson.D) bool {
		for _, m := range specs[collection] {
			if assert.ObjectsAreEqual(keys, m.Keys) {
				return m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
			}
		}
		return false
	}

	require.True(t, unique(UsersCollection, bson.D{{Key: "email", Value: 1}}))
	require.True(t, unique(SavedCollection, bson.D{
		{Key: "user", Value: 1}, {Key: "property", Value: 1},
	}), "the toggle race relies on this constraint")
	require.True(t, unique(RequestsCollection, bson.D{
		{Key: "property", Value: 1}, {Key: "sender", Value: 1},
	}))
}
