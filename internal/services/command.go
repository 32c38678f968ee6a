package services

import (
	"context"
	"encoding/json"
	"fmt"

	"backoffice/internal/models"
)

type Op string

const (
	OpAddItem     Op = "add_item"
	OpUpdateItem  Op = "update_item"
	OpRemoveItem  Op = "remove_item"
	OpAddTable    Op = "add_table"
	OpRemoveTable Op = "remove_table"
)

// Command is one user action against a manager. TargetID names the row for
// update and remove; Payload carries the form as JSON.
type Command struct {
	Op        Op              `json:"op"`
	TargetID  int64           `json:"target_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Confirmed bool            `json:"confirmed,omitempty"`
}

// Result is the refreshed list after the command ran. Item commands fill
// Items, table commands fill Tables.
type Result struct {
	Items  []models.InventoryItem `json:"items,omitempty"`
	Tables []models.Table         `json:"tables,omitempty"`
}

type Dispatcher struct {
	inventory *InventoryService
	tables    *TableService
}

func NewDispatcher(inventory *InventoryService, tables *TableService) *Dispatcher {
	return &Dispatcher{inventory: inventory, tables: tables}
}

func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (*Result, error) {
	switch cmd.Op {
	case OpAddItem:
		var in ItemInput
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		items, err := d.inventory.Add(ctx, in)
		if err != nil {
			return nil, err
		}
		return &Result{Items: items}, nil

	case OpUpdateItem:
		var patch ItemPatch
		if err := decodePayload(cmd.Payload, &patch); err != nil {
			return nil, err
		}
		items, err := d.inventory.Update(ctx, cmd.TargetID, patch)
		if err != nil {
			return nil, err
		}
		return &Result{Items: items}, nil

	case OpRemoveItem:
		items, err := d.inventory.Remove(ctx, cmd.TargetID, cmd.Confirmed)
		if err != nil {
			return nil, err
		}
		return &Result{Items: items}, nil

	case OpAddTable:
		var in struct {
			Number string `json:"table_number"`
		}
		if err := decodePayload(cmd.Payload, &in); err != nil {
			return nil, err
		}
		tables, err := d.tables.Add(ctx, in.Number)
		if err != nil {
			return nil, err
		}
		return &Result{Tables: tables}, nil

	case OpRemoveTable:
		tables, err := d.tables.Remove(ctx, cmd.TargetID, cmd.Confirmed)
		if err != nil {
			return nil, err
		}
		return &Result{Tables: tables}, nil
	}

	return nil, fmt.Errorf("unknown command %q", cmd.Op)
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return validationError("payload", err.Error())
	}
	return nil
}
