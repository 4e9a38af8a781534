package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/wsbroker/pkg/broadcast"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	t.Run("add and remove by identity", func(t *testing.T) {
		t.Parallel()
		r := broadcast.NewRegistry[string]()
		a := broadcast.NewCursor(0, "a")
		b := broadcast.NewCursor(0, "b")
		c := broadcast.NewCursor(0, "c")
		r.Add(a)
		r.Add(b)
		r.Add(c)
		assert.Equal(t, 3, r.Len())

		assert.True(t, r.Remove(b))
		assert.False(t, r.Remove(b))
		assert.Equal(t, 2, r.Len())
		assert.True(t, r.Contains(a))
		assert.False(t, r.Contains(b))
		assert.True(t, r.Contains(c))

		assert.True(t, r.Remove(c))
		assert.True(t, r.Remove(a))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("for each visits every cursor", func(t *testing.T) {
		t.Parallel()
		r := broadcast.NewRegistry[string]()
		for _, name := range []string{"a", "b", "c"} {
			r.Add(broadcast.NewCursor(0, name))
		}

		var seen []string
		r.ForEach(func(c *broadcast.Cursor[string]) bool {
			seen = append(seen, c.Conn())
			return true
		})
		assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)
	})

	t.Run("for each stops early", func(t *testing.T) {
		t.Parallel()
		r := broadcast.NewRegistry[string]()
		r.Add(broadcast.NewCursor(0, "a"))
		r.Add(broadcast.NewCursor(0, "b"))

		calls := 0
		r.ForEach(func(*broadcast.Cursor[string]) bool {
			calls++
			return false
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("min tail", func(t *testing.T) {
		t.Parallel()
		r := broadcast.NewRegistry[string]()
		assert.Equal(t, uint64(42), r.MinTail(42))

		r.Add(broadcast.NewCursor(7, "a"))
		r.Add(broadcast.NewCursor(3, "b"))
		r.Add(broadcast.NewCursor(9, "c"))
		assert.Equal(t, uint64(3), r.MinTail(42))
	})
}
