package product

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryFashion     Category = "fashion"
	CategoryHome        Category = "home"
	CategoryBeauty      Category = "beauty"
	CategoryBooks       Category = "books"
	CategorySports      Category = "sports"
)

// Categories lists every category accepted by the store.
var Categories = []Category{
	CategoryElectronics,
	CategoryFashion,
	CategoryHome,
	CategoryBeauty,
	CategoryBooks,
	CategorySports,
}

var ErrInvalidCategory = errors.New("invalid product category")

func (c Category) String() string {
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}

	return "", ErrInvalidCategory
}

// Product is a catalog entry.
type Product struct {
	ID            int64           `json:"product_id"`
	Name          string          `json:"product_name"`
	Category      Category        `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
}
