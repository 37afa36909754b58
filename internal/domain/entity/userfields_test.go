package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserfields_TypedAccessors(t *testing.T) {
	fields := Userfields{
		UserfieldPrice:    "5.90",
		UserfieldStore:    "Rami Levy",
		UserfieldFavorite: "1",
		UserfieldMetadata: `{"id":5544}`,
	}

	assert.InDelta(t, 5.9, fields.Price(), 0.001)
	assert.Equal(t, "Rami Levy", fields.Store())
	assert.True(t, fields.Favorite())
	assert.Equal(t, `{"id":5544}`, fields.Metadata())
}

func TestUserfields_ZeroValues(t *testing.T) {
	var fields Userfields

	assert.Equal(t, 0.0, fields.Price())
	assert.False(t, fields.Favorite())
	assert.Empty(t, fields.Store())
	assert.Empty(t, fields.Metadata())
}

func TestUserfields_FavoriteSpellings(t *testing.T) {
	for _, value := range []string{"1", "true", "yes"} {
		fields := Userfields{UserfieldFavorite: value}
		assert.True(t, fields.Favorite(), "favorite spelling %q", value)
	}
	for _, value := range []string{"", "0", "false", "no"} {
		fields := Userfields{UserfieldFavorite: value}
		assert.False(t, fields.Favorite(), "favorite spelling %q", value)
	}
}

func TestProductView_AttributesFlattenUserfields(t *testing.T) {
	view := &ProductView{
		Product: Product{
			ID:   1,
			Name: "Milk",
			Userfields: Userfields{
				UserfieldPrice:    "5.9",
				UserfieldFavorite: "1",
				UserfieldStore:    "Rami Levy",
			},
		},
		GroupName: "Dairy",
	}

	attrs := view.Attributes()
	assert.Equal(t, 5.9, attrs[UserfieldPrice])
	assert.Equal(t, true, attrs[UserfieldFavorite])
	assert.Equal(t, "Rami Levy", attrs[UserfieldStore])
	assert.Equal(t, "Dairy", attrs["product_group_name"])
}
