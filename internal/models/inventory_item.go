package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type VegType string

const (
	Veg    VegType = "Veg"
	NonVeg VegType = "Non-Veg"
	Egg    VegType = "Egg"
)

// VegTypes lists the dropdown values in display order.
var VegTypes = []VegType{Veg, NonVeg, Egg}

func ParseVegType(s string) (VegType, error) {
	for _, v := range VegTypes {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown veg type %q", s)
}

// InventoryItem matches the inventory collection. CategoryName is filled in
// by the category join and is not stored.
type InventoryItem struct {
	ID           int64           `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	RestaurantID int64           `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   *int64          `gorm:"index" json:"category_id"`
	IsVeg        VegType         `gorm:"type:text;not null;default:'Veg'" json:"is_veg"`
	Name         string          `gorm:"column:item_name;type:text;not null" json:"item_name"`
	Description  string          `gorm:"column:item_desc;type:text" json:"item_desc"`
	Price        decimal.Decimal `gorm:"type:numeric(7,2);not null" json:"-"`
	CategoryName string          `gorm:"-" json:"category_name"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Category   *Category   `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

// DisplayPrice renders the price with exactly two decimals.
func (i InventoryItem) DisplayPrice() string {
	return i.Price.StringFixed(2)
}
