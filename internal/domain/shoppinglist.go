package domain

import (
	"strconv"
	"strings"
)

// ShoppingListItem is the total amount of one ingredient across the cart.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}

// ShoppingList is the aggregated cart of Owner, sorted by ingredient name.
type ShoppingList struct {
	Owner User
	Items []ShoppingListItem
}

// Render formats the list as the downloadable plain-text document.
func (l ShoppingList) Render() []byte {
	var b strings.Builder
	b.WriteString(l.Owner.FullName())
	b.WriteString(" shopping list includes:\n")
	for _, item := range l.Items {
		b.WriteString("- ")
		b.WriteString(item.Name)
		b.WriteString(" / ")
		b.WriteString(strconv.FormatInt(item.TotalAmount, 10))
		b.WriteString(" ")
		b.WriteString(item.MeasurementUnit)
		b.WriteString("\n")
	}
	return []byte(b.String())
}
