package server

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskmaster/planner/internal/domain/entities"
)

// validationMessages maps a failed rule to the message sent to the client
var validationMessages = map[string]string{
	"goal_index":   entities.MsgGoalIndex,
	"item_index":   entities.MsgItemIndex,
	"day_of_month": entities.MsgDay,
	"month_id":     entities.MsgMonthID,
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a validator with the planner path parameter rules
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("param"); name != "" {
			return name
		}
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "goal_index", func(raw string) error {
		_, err := entities.ParseGoalIndex(raw)
		return err
	})
	mustRegister(v, "item_index", func(raw string) error {
		_, err := entities.ParseItemIndex(raw)
		return err
	})
	mustRegister(v, "day_of_month", func(raw string) error {
		_, err := entities.ParseDay(raw)
		return err
	})
	mustRegister(v, "month_id", func(raw string) error {
		_, err := entities.ParseMonthID(raw)
		return err
	})

	return &CustomValidator{validator: v}
}

func mustRegister(v *validator.Validate, tag string, check func(string) error) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return check(fl.Field().String()) == nil
	})
	if err != nil {
		panic(err)
	}
}

// Validate validates structs. The first failed planner rule is reported as
// a ValidationError carrying the client message for that parameter.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	msg, ok := validationMessages[first.Tag()]
	if !ok {
		return err
	}

	return &entities.ValidationError{Field: first.Field(), Message: msg, Err: err}
}
