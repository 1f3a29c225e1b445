package cart_test

import (
	"testing"

	"github.com/acryfusion/storefront/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddMergesOnDuplicateKey(t *testing.T) {
	c := cart.New()

	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10.5, Quantity: 1})
	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10.5, Quantity: 2})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.InDelta(t, 10.5*3, c.Subtotal(), 1e-9)
}

func TestCart_AddDistinctKeys(t *testing.T) {
	c := cart.New()

	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10})
	c.AddItem(cart.Line{ProductID: "000001", Size: "M", OptionName: "Red", Price: 12})
	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Blue", Price: 11})
	c.AddItem(cart.Line{ProductID: "000002", Size: "S", OptionName: "Red", Price: 9})

	assert.Len(t, c.Lines(), 4)
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	c := cart.New()

	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10})

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCart_SetQuantityClampsToOne(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10, Quantity: 5})

	c.SetQuantity("000001", "S", "Red", 0)

	lines := c.Lines()
	require.Len(t, lines, 1, "clamping must never remove the line")
	assert.Equal(t, 1, lines[0].Quantity)

	c.SetQuantity("000001", "S", "Red", -3)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.SetQuantity("000001", "S", "Red", 7)
	assert.Equal(t, 7, c.Lines()[0].Quantity)
}

func TestCart_SetQuantityAbsentLineIsNoop(t *testing.T) {
	c := cart.New()
	c.SetQuantity("missing", "S", "Red", 3)
	assert.Empty(t, c.Lines())
}

func TestCart_RemoveItem(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10})
	c.AddItem(cart.Line{ProductID: "000001", Size: "M", OptionName: "Red", Price: 12})

	c.RemoveItem("000001", "S", "Red")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "M", lines[0].Size)

	// Removing it again is a no-op.
	c.RemoveItem("000001", "S", "Red")
	assert.Len(t, c.Lines(), 1)
}

func TestCart_SubtotalRecomputesFromState(t *testing.T) {
	c := cart.New()
	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10, Quantity: 2})
	c.AddItem(cart.Line{ProductID: "000002", Size: "M", OptionName: "Blue", Price: 5, Quantity: 1})
	assert.InDelta(t, 25, c.Subtotal(), 1e-9)

	c.SetQuantity("000001", "S", "Red", 1)
	assert.InDelta(t, 15, c.Subtotal(), 1e-9)

	c.RemoveItem("000002", "M", "Blue")
	assert.InDelta(t, 10, c.Subtotal(), 1e-9)

	c.Clear()
	assert.Zero(t, c.Subtotal())
	assert.Empty(t, c.Lines())
}

func TestCart_OpenClose(t *testing.T) {
	c := cart.New()
	assert.False(t, c.IsOpen())

	c.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10})
	c.Open()
	assert.True(t, c.IsOpen())

	// Panel visibility never touches contents.
	c.Close()
	assert.False(t, c.IsOpen())
	assert.Len(t, c.Lines(), 1)
}

func TestRegistry_SessionIsolation(t *testing.T) {
	r := cart.NewRegistry()

	a := r.Get("session-a")
	b := r.Get("session-b")
	a.AddItem(cart.Line{ProductID: "000001", Size: "S", OptionName: "Red", Price: 10})

	assert.Len(t, a.Lines(), 1)
	assert.Empty(t, b.Lines())

	// Same session id always yields the same cart.
	assert.Same(t, a, r.Get("session-a"))

	r.Drop("session-a")
	assert.Empty(t, r.Get("session-a").Lines())
}
