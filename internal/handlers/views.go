package handlers

import "backoffice/internal/models"

type itemView struct {
	ID           int64          `json:"item_id"`
	CategoryID   *int64         `json:"category_id"`
	CategoryName string         `json:"category_name"`
	IsVeg        models.VegType `json:"is_veg"`
	Name         string         `json:"item_name"`
	Description  string         `json:"item_desc"`
	Price        string         `json:"price"`
}

func itemViews(items []models.InventoryItem) []itemView {
	out := make([]itemView, 0, len(items))
	for _, item := range items {
		out = append(out, itemView{
			ID:           item.ID,
			CategoryID:   item.CategoryID,
			CategoryName: item.CategoryName,
			IsVeg:        item.IsVeg,
			Name:         item.Name,
			Description:  item.Description,
			Price:        item.DisplayPrice(),
		})
	}
	return out
}
