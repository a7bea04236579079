package collection

import (
	"testing"

	"eduease-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(id string) entity.Resource {
	return entity.Resource{Id: id, Title: "T" + id, Description: "D" + id, Link: "http://x/" + id}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	names := []string{"Physics", "physics", "Reading List", " "}
	s := NewStore()

	for _, n := range names {
		require.NoError(t, s.Create(n), n)
		assert.ErrorIs(t, s.Create(n), ErrDuplicateName, n)
	}
	assert.Equal(t, len(names), s.Len())
	assert.Equal(t, names, s.Names())
}

func TestDelete(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("A"))
	require.NoError(t, s.AddResource("A", res("1")))

	assert.True(t, s.Delete("A"))
	assert.False(t, s.Exists("A"))
	assert.False(t, s.Delete("A"))

	// Recreating starts empty; nothing survives a delete.
	require.NoError(t, s.Create("A"))
	c, ok := s.Get("A")
	require.True(t, ok)
	assert.Empty(t, c.Resources)
}

func TestAddResource(t *testing.T) {
	t.Run("missing collection", func(t *testing.T) {
		s := NewStore()
		assert.ErrorIs(t, s.AddResource("nope", res("1")), ErrCollectionNotFound)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("duplicate id keeps count", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("A"))
		require.NoError(t, s.AddResource("A", res("1")))

		err := s.AddResource("A", res("1"))
		assert.ErrorIs(t, err, ErrDuplicateResource)

		c, _ := s.Get("A")
		assert.Len(t, c.Resources, 1)
	})

	t.Run("insertion order preserved", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("A"))
		for _, id := range []string{"3", "1", "2"} {
			require.NoError(t, s.AddResource("A", res(id)))
		}
		c, _ := s.Get("A")
		ids := []string{}
		for _, r := range c.Resources {
			ids = append(ids, r.Id)
		}
		assert.Equal(t, []string{"3", "1", "2"}, ids)
	})

	t.Run("same resource in two collections", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("A"))
		require.NoError(t, s.Create("B"))
		require.NoError(t, s.AddResource("A", res("1")))
		require.NoError(t, s.AddResource("B", res("1")))
	})
}

func TestSave(t *testing.T) {
	t.Run("bootstrap creates first collection without asking", func(t *testing.T) {
		s := NewStore()
		asked := false
		outcome, err := s.Save(res("1"), "New", func(string) bool {
			asked = true
			return false
		})
		require.NoError(t, err)
		assert.Equal(t, SavedBootstrap, outcome)
		assert.False(t, asked)

		list := s.List()
		require.Len(t, list, 1)
		assert.Equal(t, "New", list[0].Name)
		assert.Equal(t, []entity.Resource{res("1")}, list[0].Resources)
	})

	t.Run("unknown target declined leaves store unchanged", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("Existing"))
		before := s.List()

		_, err := s.Save(res("1"), "Missing", Never)
		assert.ErrorIs(t, err, ErrCollectionNotFound)
		assert.Equal(t, before, s.List())
	})

	t.Run("unknown target confirmed creates and adds", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("Existing"))

		var askedFor string
		outcome, err := s.Save(res("1"), "Missing", func(name string) bool {
			askedFor = name
			return true
		})
		require.NoError(t, err)
		assert.Equal(t, SavedAfterConfirm, outcome)
		assert.Equal(t, "Missing", askedFor)
		assert.Equal(t, []string{"Existing", "Missing"}, s.Names())

		c, _ := s.Get("Missing")
		assert.Equal(t, []entity.Resource{res("1")}, c.Resources)
	})

	t.Run("unknown target without decision asks for confirmation", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("Existing"))

		_, err := s.Save(res("1"), "Missing", nil)
		assert.ErrorIs(t, err, ErrConfirmationRequired)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("existing target adds directly", func(t *testing.T) {
		s := NewStore()
		require.NoError(t, s.Create("A"))

		outcome, err := s.Save(res("1"), "A", nil)
		require.NoError(t, err)
		assert.Equal(t, SavedToExisting, outcome)

		_, err = s.Save(res("1"), "A", nil)
		assert.ErrorIs(t, err, ErrDuplicateResource)
	})
}

func TestListReturnsCopies(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create("A"))
	require.NoError(t, s.AddResource("A", res("1")))

	list := s.List()
	list[0].Resources[0].Title = "mutated"
	list[0].Resources = append(list[0].Resources, res("2"))

	c, _ := s.Get("A")
	assert.Equal(t, []entity.Resource{res("1")}, c.Resources)
}
