package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAdd_TotalEqualsSumOfSubtotals(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Radiant Tee", price("22.00"), "USD"))
	require.NoError(t, sut.Add("Crown Summit Backpack", price("38.00"), "USD"))
	require.NoError(t, sut.Add("Aim Analog Watch", price("45.00"), "USD"))

	assert.True(t, sut.Total().Equal(price("105.00")), "expected 105.00, got %s", sut.Total())
	assert.Equal(t, 3, sut.Count())
	assert.Equal(t, "USD", sut.Currency())
}

func TestScenario_AddTwoItemsThenRemoveFirst(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("29.99"), "USD"))
	require.NoError(t, sut.Add("Item B", price("49.99"), "USD"))

	assert.True(t, sut.Total().Equal(price("79.98")), "expected 79.98, got %s", sut.Total())
	assert.Equal(t, 2, sut.Count())

	removed := sut.Remove(0)
	require.True(t, removed)
	assert.True(t, sut.Total().Equal(price("49.99")), "expected 49.99, got %s", sut.Total())
	assert.Equal(t, 1, sut.Count())
	assert.Equal(t, "Item B", sut.Items()[0].Name)
}

func TestAddThenRemoveLast_RestoresPriorTotal(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("19.99"), "USD"))
	before := sut.Total()

	require.NoError(t, sut.Add("Item B", price("0.01"), "USD"))
	removed := sut.Remove(len(sut.Items()) - 1)
	require.True(t, removed)

	assert.True(t, sut.Total().Equal(before), "expected %s, got %s", before, sut.Total())
}

func TestTotalInvariant_RandomMutationSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sut := NewStore()

	for i := 0; i < 200; i++ {
		if rng.Intn(3) == 0 && len(sut.Items()) > 0 {
			// Out-of-range indexes on purpose; they must be no-ops.
			sut.Remove(rng.Intn(len(sut.Items()) + 2))
		} else {
			cents := rng.Intn(10000) + 1
			p := decimal.New(int64(cents), -2)
			require.NoError(t, sut.Add("item", p, "USD"))
		}

		expected := decimal.Zero
		for _, item := range sut.Items() {
			expected = expected.Add(item.Subtotal())
		}
		require.True(t, sut.Total().Equal(expected),
			"step %d: total %s != sum %s", i, sut.Total(), expected)
	}
}

func TestRemove_OutOfRange_IsNoOp(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("10.00"), "USD"))

	assert.False(t, sut.Remove(-1))
	assert.False(t, sut.Remove(1))
	assert.False(t, sut.Remove(99))

	assert.Equal(t, 1, sut.Count())
	assert.True(t, sut.Total().Equal(price("10.00")))
}

func TestAdd_SameProductAppendsNewLine(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("5.00"), "USD"))
	require.NoError(t, sut.Add("Item A", price("5.00"), "USD"))

	items := sut.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
	assert.True(t, sut.Total().Equal(price("10.00")))
}

func TestAdd_MixedCurrencyRejected(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("10.00"), "USD"))

	err := sut.Add("Item B", price("10.00"), "EUR")
	require.ErrorIs(t, err, ErrCurrencyMismatch)

	// Cart unchanged by the rejected add.
	assert.Equal(t, 1, sut.Count())
	assert.Equal(t, "USD", sut.Currency())
}

func TestCurrency_ClearedWhenCartEmpties(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("10.00"), "EUR"))
	require.True(t, sut.Remove(0))

	assert.Equal(t, "", sut.Currency())

	// A different currency is acceptable again once the cart is empty.
	require.NoError(t, sut.Add("Item B", price("7.50"), "USD"))
	assert.Equal(t, "USD", sut.Currency())
}

func TestClear_EmptiesCart(t *testing.T) {
	sut := NewStore()
	require.NoError(t, sut.Add("Item A", price("10.00"), "USD"))
	require.NoError(t, sut.Add("Item B", price("20.00"), "USD"))

	sut.Clear()

	assert.Empty(t, sut.Items())
	assert.Equal(t, 0, sut.Count())
	assert.True(t, sut.Total().IsZero())
}

func TestSubscribe_ListenerSeesEveryMutation(t *testing.T) {
	sut := NewStore()
	var events []Event
	sut.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	require.NoError(t, sut.Add("Item A", price("29.99"), "USD"))
	require.NoError(t, sut.Add("Item B", price("49.99"), "USD"))
	require.True(t, sut.Remove(0))

	require.Len(t, events, 3)
	assert.Equal(t, int64(1), events[0].Version)
	assert.Equal(t, 2, events[1].Count)
	assert.True(t, events[1].Total.Equal(price("79.98")))
	assert.True(t, events[2].Total.Equal(price("49.99")))
}

func TestVersion_IncrementsOnMutationOnly(t *testing.T) {
	sut := NewStore()
	assert.Equal(t, int64(0), sut.Version())

	require.NoError(t, sut.Add("Item A", price("10.00"), "USD"))
	assert.Equal(t, int64(1), sut.Version())

	sut.Total()
	sut.Items()
	assert.Equal(t, int64(1), sut.Version())

	sut.Remove(99) // no-op must not bump the version
	assert.Equal(t, int64(1), sut.Version())
}
