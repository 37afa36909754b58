package pantry

import (
	"strconv"
	"strings"
	"time"

	"pantrylink/internal/domain/entity"
)

// rawRecord is one item of a category listing as returned by the remote
// server. Values arrive inconsistently typed (numbers as strings, booleans
// as "0"/"1"), so every field goes through a lenient coercion helper. Raw
// records are never retained past this mapping step.
type rawRecord map[string]any

// Timestamp layouts observed from the pantry server.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseInt(v any) int {
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		return int(value)
	case int:
		return value
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0
		}

		return n
	default:
		return 0
	}
}

func parseFloat(v any) float64 {
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		return value
	case int:
		return float64(value)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}

		return f
	default:
		return 0
	}
}

func parseBool(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		return value == "1" || strings.EqualFold(value, "true")
	default:
		return false
	}
}

func parseString(v any) string {
	s, _ := v.(string)

	return s
}

func parseTime(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}

	return time.Time{}
}

// splitBarcodes splits the comma-separated raw barcode field.
func splitBarcodes(v any) []string {
	s := parseString(v)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	barcodes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			barcodes = append(barcodes, trimmed)
		}
	}

	return barcodes
}

func productFromRecord(rec rawRecord) entity.Product {
	return entity.Product{
		ID:                      parseInt(rec["id"]),
		Name:                    parseString(rec["name"]),
		Description:             parseString(rec["description"]),
		LocationID:              parseInt(rec["location_id"]),
		ProductGroupID:          parseInt(rec["product_group_id"]),
		QuIDStock:               parseInt(rec["qu_id_stock"]),
		QuIDPurchase:            parseInt(rec["qu_id_purchase"]),
		QuFactorPurchaseToStock: parseFloat(rec["qu_factor_purchase_to_stock"]),
		PictureFileName:         parseString(rec["picture_file_name"]),
		AllowPartialUnits:       parseBool(rec["allow_partial_units_in_stock"]),
		MinStockAmount:          parseInt(rec["min_stock_amount"]),
		DefaultBestBeforeDays:   parseInt(rec["default_best_before_days"]),
		Barcodes:                splitBarcodes(rec["barcode"]),
		CreatedAt:               parseTime(rec["row_created_timestamp"]),
	}
}

func locationFromRecord(rec rawRecord) entity.Location {
	return entity.Location{
		ID:          parseInt(rec["id"]),
		Name:        parseString(rec["name"]),
		Description: parseString(rec["description"]),
		IsFreezer:   parseBool(rec["is_freezer"]),
		CreatedAt:   parseTime(rec["row_created_timestamp"]),
	}
}

func quantityUnitFromRecord(rec rawRecord) entity.QuantityUnit {
	return entity.QuantityUnit{
		ID:          parseInt(rec["id"]),
		Name:        parseString(rec["name"]),
		NamePlural:  parseString(rec["name_plural"]),
		Description: parseString(rec["description"]),
		CreatedAt:   parseTime(rec["row_created_timestamp"]),
	}
}

func productGroupFromRecord(rec rawRecord) entity.ProductGroup {
	return entity.ProductGroup{
		ID:          parseInt(rec["id"]),
		Name:        parseString(rec["name"]),
		Description: parseString(rec["description"]),
		CreatedAt:   parseTime(rec["row_created_timestamp"]),
	}
}

func shoppingListFromRecord(rec rawRecord) entity.ShoppingList {
	return entity.ShoppingList{
		ID:          parseInt(rec["id"]),
		Name:        parseString(rec["name"]),
		Description: parseString(rec["description"]),
		CreatedAt:   parseTime(rec["row_created_timestamp"]),
	}
}

func shoppingListItemFromRecord(rec rawRecord) entity.ShoppingListItem {
	return entity.ShoppingListItem{
		ID:             parseInt(rec["id"]),
		ProductID:      parseInt(rec["product_id"]),
		ShoppingListID: parseInt(rec["shopping_list_id"]),
		Note:           parseString(rec["note"]),
		Amount:         parseFloat(rec["amount"]),
		Done:           parseBool(rec["done"]),
		CreatedAt:      parseTime(rec["row_created_timestamp"]),
	}
}
