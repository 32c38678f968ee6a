package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRoutesCommands(t *testing.T) {
	ctx := context.Background()
	mem, st := newTestStore()
	seedCategories(mem)
	d := NewDispatcher(newInventory(st, r1), newTables(st, r1))

	res, err := d.Dispatch(ctx, Command{
		Op:      OpAddItem,
		Payload: json.RawMessage(`{"item_name":"Soup","price":"9.5","category_id":1,"is_veg":"Veg"}`),
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Nil(t, res.Tables)
	itemID := res.Items[0].ID

	res, err = d.Dispatch(ctx, Command{
		Op:       OpUpdateItem,
		TargetID: itemID,
		Payload:  json.RawMessage(`{"item_desc":"tomato"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "tomato", res.Items[0].Description)

	res, err = d.Dispatch(ctx, Command{Op: OpAddTable, Payload: json.RawMessage(`{"table_number":"4"}`)})
	require.NoError(t, err)
	require.Len(t, res.Tables, 1)
	tableID := res.Tables[0].ID

	_, err = d.Dispatch(ctx, Command{Op: OpRemoveTable, TargetID: tableID})
	var confirm *ConfirmationRequiredError
	require.ErrorAs(t, err, &confirm)

	res, err = d.Dispatch(ctx, Command{Op: OpRemoveTable, TargetID: tableID, Confirmed: true})
	require.NoError(t, err)
	assert.Empty(t, res.Tables)

	res, err = d.Dispatch(ctx, Command{Op: OpRemoveItem, TargetID: itemID, Confirmed: true})
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestDispatchRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	_, st := newTestStore()
	d := NewDispatcher(newInventory(st, r1), newTables(st, r1))

	_, err := d.Dispatch(ctx, Command{Op: "drop_everything"})
	assert.Error(t, err)

	_, err = d.Dispatch(ctx, Command{Op: OpAddItem, Payload: json.RawMessage(`{"price":`)})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payload", verr.Field)
	assert.Zero(t, st.writes())
}
