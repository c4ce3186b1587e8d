package main

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/taldoflemis/veggie-delight/preorder"
)

type CreateOrderRequest struct {
	Name                string              `json:"name" validate:"required,min=2,max=50"`
	Email               string              `json:"email" validate:"required,email"`
	Phone               string              `json:"phone" validate:"required,phone10"`
	OrderType           string              `json:"orderType" validate:"required,oneof=pickup delivery"`
	Address             string              `json:"address" validate:"required_if=OrderType delivery"`
	PickupTime          time.Time           `json:"pickupTime" validate:"required,futuretime"`
	DietaryRestrictions []string            `json:"dietaryRestrictions" validate:"omitempty,dive,required"`
	SpecialInstructions string              `json:"specialInstructions"`
	Items               []preorder.CartLine `json:"items" validate:"required,min=1"`
	Total               int64               `json:"total" validate:"required,min=1"`
}

func (r *CreateOrderRequest) toDraft() preorder.OrderDraft {
	return preorder.OrderDraft{
		Contact: preorder.ContactDetails{
			Name:                r.Name,
			Email:               r.Email,
			Phone:               preorder.NormalizePhone(r.Phone),
			OrderType:           preorder.OrderType(r.OrderType),
			Address:             r.Address,
			RequestedTime:       r.PickupTime,
			DietaryRestrictions: r.DietaryRestrictions,
			SpecialInstructions: r.SpecialInstructions,
		},
		Items: r.Items,
		Total: r.Total,
	}
}

type APIResponse struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	OrderNumber string            `json:"orderNumber,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	Data        any               `json:"data,omitempty"`
}

type LoyaltyBalance struct {
	Email  string `json:"email"`
	Points int64  `json:"points"`
}

// newRequestValidator builds the validator used at the API boundary. Field
// names in error output follow the json tags so clients can match them to
// inputs.
func newRequestValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return len(preorder.NormalizePhone(fl.Field().String())) == 10
	})

	validate.RegisterValidation("futuretime", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		return ok && t.After(time.Now())
	})

	return validate
}

func fieldErrorMessages(err error) map[string]string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		out[fieldErr.Field()] = messageForTag(fieldErr)
	}
	return out
}

func messageForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "required_if":
		return "Address is required for delivery orders"
	case "email":
		return "Please enter a valid email format (user@example.com)"
	case "phone10":
		return "Phone number must contain exactly 10 digits"
	case "futuretime":
		return "Pickup/delivery time must be in the future"
	case "oneof":
		return "Please select a valid order type"
	case "min":
		if fieldErr.Field() == "items" {
			return "At least one item must be selected"
		}
		return "Value is too small"
	case "max":
		return "Value is too long"
	default:
		return "Invalid value"
	}
}
