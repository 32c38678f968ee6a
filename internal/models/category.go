package models

// Category is read-only reference data for inventory items.
type Category struct {
	ID   int64  `gorm:"column:category_id;primaryKey;autoIncrement" json:"category_id"`
	Name string `gorm:"column:category_name;type:text;not null" json:"category_name"`
}

func (Category) TableName() string {
	return "categories"
}

// UnknownCategory is shown for items whose category is null or missing.
const UnknownCategory = "Unknown"
