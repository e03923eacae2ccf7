package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemFixture(t *testing.T) (*ItemService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewItemService(&fakeItemRepo{store: store}), store
}

func TestCreateItemValidation(t *testing.T) {
	svc, _ := newItemFixture(t)

	_, err := svc.CreateItem(context.Background(), &ItemInput{
		Name: "", Price: decimal.RequireFromString("30.00"),
	})
	assert.Error(t, err, "empty name must be rejected")

	_, err = svc.CreateItem(context.Background(), &ItemInput{
		Name: "tea", Price: decimal.Zero,
	})
	assert.Error(t, err, "zero price must be rejected")

	negative := -1
	_, err = svc.CreateItem(context.Background(), &ItemInput{
		Name: "tea", Price: decimal.RequireFromString("30.00"), Stock: &negative,
	})
	assert.Error(t, err, "negative stock must be rejected")

	item, err := svc.CreateItem(context.Background(), &ItemInput{
		Name: " tea ", Price: decimal.RequireFromString("30.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "tea", item.Name)
	assert.Nil(t, item.Stock)
	assert.False(t, item.Tracked())
}

func TestUpdateItemChangesPrice(t *testing.T) {
	svc, store := newItemFixture(t)
	item := store.addItem("tea", "30.00", nil)

	updated, err := svc.UpdateItem(context.Background(), item.ID, &ItemInput{
		Name: "tea", Price: decimal.RequireFromString("35.00"),
	})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("35.00")))

	prices, err := (&fakeItemRepo{store: store}).PriceMap(context.Background())
	require.NoError(t, err)
	assert.True(t, prices[item.ID].Equal(decimal.RequireFromString("35.00")))
}

func TestDeleteItemUnknown(t *testing.T) {
	svc, store := newItemFixture(t)
	item := store.addItem("tea", "30.00", nil)

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID))
	assert.Error(t, svc.DeleteItem(context.Background(), item.ID))
}
