package services

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Bounds enforced at the input boundary. Estimates with more than five
// separate runs or three gates per run are entered as multiple line items.
const (
	MaxLines = 5
	MaxGates = 3
)

// Validate checks a line item's user-entered fields. A line item that fails
// validation is rejected before it reaches the calculators.
func (li LineItem) Validate() error {
	return validation.ValidateStruct(&li,
		validation.Field(&li.Family, validation.Required,
			validation.In(FamilyWoodVertical, FamilyWoodHorizontal, FamilyIron)),
		validation.Field(&li.TotalFootage, validation.Min(0.0)),
		validation.Field(&li.BufferFeet, validation.Min(0.0),
			validation.By(func(any) error {
				if li.BufferFeet > li.TotalFootage {
					return errors.New("cannot exceed total footage")
				}
				return nil
			})),
		validation.Field(&li.NumLines, validation.Required, validation.Min(1), validation.Max(MaxLines)),
		validation.Field(&li.NumGates, validation.Min(0), validation.Max(MaxGates)),
	)
}

// ManualMaterialInput is a user-entered material row before it joins the
// ledger.
type ManualMaterialInput struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	UnitCost float64 `json:"unitCost"`
	Qty      float64 `json:"qty"`
}

func (in ManualMaterialInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.SKU, validation.Required, validation.Length(1, 64)),
		validation.Field(&in.Name, validation.Required),
		validation.Field(&in.UnitCost, validation.Min(0.0)),
		validation.Field(&in.Qty, validation.Min(0.0)),
	)
}

// ManualLaborInput is a user-entered labor row before it joins the ledger.
type ManualLaborInput struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
	Qty         float64 `json:"qty"`
}

func (in ManualLaborInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Code, validation.Required, validation.Length(1, 32)),
		validation.Field(&in.Description, validation.Required),
		validation.Field(&in.Rate, validation.Min(0.0)),
		validation.Field(&in.Qty, validation.Min(0.0)),
	)
}
