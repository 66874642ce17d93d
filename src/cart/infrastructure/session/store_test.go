package session

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := NewStore(decimal.NewFromInt(17))

	id1, cart1 := store.Create()
	id2, cart2 := store.Create()

	require.NotEqual(t, id1, id2)
	assert.NotSame(t, cart1, cart2)

	got1, ok := store.Get(id1)
	require.True(t, ok)
	assert.Same(t, cart1, got1)
}

func TestStoreCartCarriesDefaultTaxRate(t *testing.T) {
	store := NewStore(decimal.NewFromInt(21))

	_, cart := store.Create()

	assert.True(t, decimal.NewFromInt(21).Equal(cart.TaxRate()))
}

func TestStoreGetUnknownSession(t *testing.T) {
	store := NewStore(decimal.Zero)

	_, ok := store.Get("no-such-session")

	assert.False(t, ok)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(decimal.Zero)
	id, _ := store.Create()

	store.Delete(id)

	_, ok := store.Get(id)
	assert.False(t, ok)
}
