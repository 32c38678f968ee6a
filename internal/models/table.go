package models

// Table matches the tables collection. Number is an opaque string, so "01"
// and "1" are different tables. QRCodeData is fixed when the table is created.
type Table struct {
	ID           int64  `gorm:"column:table_id;primaryKey;autoIncrement" json:"table_id"`
	RestaurantID int64  `gorm:"not null;uniqueIndex:idx_tables_restaurant_number" json:"restaurant_id"`
	Number       string `gorm:"column:table_number;type:text;not null;uniqueIndex:idx_tables_restaurant_number" json:"table_number"`
	QRCodeData   string `gorm:"type:text;not null" json:"qr_code_data"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Table) TableName() string {
	return "tables"
}
