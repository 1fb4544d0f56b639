package domain

import (
	"encoding/json"
	"testing"

	"github.com/DillonStreator/safeid/entityid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodos_FindByID(t *testing.T) {
	first := &Todo{ID: entityid.New(), Title: "first"}
	second := &Todo{ID: entityid.New(), Title: "second"}
	todos := Todos{first, second}

	t.Run("finds by id", func(t *testing.T) {
		assert.Same(t, second, todos.FindByID(second.ID))
		assert.Equal(t, 1, todos.FindIndexByID(second.ID))
	})
	t.Run("finds by parsed text", func(t *testing.T) {
		assert.Same(t, first, todos.FindByID(entityid.Parse(first.ID.String())))
	})
	t.Run("malformed id is not found", func(t *testing.T) {
		actual := todos.FindByID(entityid.Parse("FakeGuid"))
		assert.True(t, actual.ID.IsEmpty())
		assert.Equal(t, -1, todos.FindIndexByID(entityid.Parse("FakeGuid")))
	})
	t.Run("empty id never matches a zero todo", func(t *testing.T) {
		withZero := Todos{&Todo{}}
		assert.Equal(t, -1, withZero.FindIndexByID(entityid.Empty))
	})
}

func TestTodos_Index(t *testing.T) {
	first := &Todo{ID: entityid.New()}
	second := &Todo{ID: entityid.New()}

	index := Todos{first, second}.Index()

	assert.Len(t, index, 2)
	assert.Same(t, first, index[first.ID])
	assert.Same(t, second, index[entityid.FromUUID(second.ID.UUID())])
}

func TestUser_JSONOmitsPassword(t *testing.T) {
	user := &User{ID: entityid.New(), Email: "a@b.c", Password: "secret"}

	bytes, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(bytes), "secret")
	assert.Contains(t, string(bytes), user.ID.String())
}
