package catalog

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Stock       int             `json:"stock"`
}

type CartItem struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	Product   Product   `json:"product"`
}

// ProductInput is the wire schema for create and update. Update is a full
// replace: an absent description is written as NULL.
type ProductInput struct {
	Name        string          `json:"name" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (in ProductInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return firstFieldError(err)
	}
	if in.Price.IsNegative() {
		return invalid("price: must not be negative")
	}
	return nil
}

// AddItemInput carries a pointer quantity so an omitted field (defaults to 1)
// can be told apart from an explicit zero (rejected).
type AddItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,gt=0"`
}

func (in AddItemInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return firstFieldError(err)
	}
	return nil
}

func (in AddItemInput) Qty() int {
	if in.Quantity == nil {
		return 1
	}
	return *in.Quantity
}

var validate = validator.New()

func firstFieldError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return invalid(err.Error())
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fmt.Sprintf("%s: this field is required", fieldName(fe)))
	case "gt":
		return invalid(fmt.Sprintf("%s: must be greater than %s", fieldName(fe), fe.Param()))
	case "gte":
		return invalid(fmt.Sprintf("%s: must be %s or greater", fieldName(fe), fe.Param()))
	default:
		return invalid(fmt.Sprintf("%s: failed %s validation", fieldName(fe), fe.Tag()))
	}
}

var jsonNames = map[string]string{
	"Name":      "name",
	"Price":     "price",
	"Stock":     "stock",
	"ProductID": "product_id",
	"Quantity":  "quantity",
}

func fieldName(fe validator.FieldError) string {
	if n, ok := jsonNames[fe.Field()]; ok {
		return n
	}
	return fe.Field()
}
