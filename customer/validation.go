package customer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

var ErrInvalid = errors.New("invalid customer")

// NewCustomer is the unvalidated input of a create request.
type NewCustomer struct {
	ID        ClientID `json:"uuid" validate:"-"`
	Name      string   `json:"name" validate:"required"`
	Birthdate string   `json:"birthdate" validate:"required,datetime=2006-01-02"`
	State     *string  `json:"state" validate:"omitnil,oneof=active locked disabled"`
}

// ClientID records whether a payload carried an identifier. Identity is
// assigned by the store, so any occurrence is rejected.
type ClientID struct {
	Present bool
	Value   string
}

func (c *ClientID) UnmarshalJSON(b []byte) error {
	c.Present = true
	// the raw value only feeds the error message
	_ = json.Unmarshal(b, &c.Value)
	return nil
}

type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation found in a NewCustomer.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks all fields of in and returns the customer it describes,
// without identity. The state defaults to Active when absent or null.
func Validate(in NewCustomer) (Customer, error) {
	var violations []Violation
	if in.ID.Present {
		violations = append(violations, Violation{
			Field:   "uuid",
			Message: "must not be supplied, identity is assigned on creation",
		})
	}

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return Customer{}, err
		}
		for _, fe := range fieldErrs {
			violations = append(violations, Violation{Field: fe.Field(), Message: violationMessage(fe)})
		}
	}

	if len(violations) > 0 {
		return Customer{}, &ValidationError{Violations: violations}
	}

	birthdate, err := ParseDate(in.Birthdate)
	if err != nil {
		return Customer{}, &ValidationError{Violations: []Violation{{Field: "birthdate", Message: err.Error()}}}
	}

	state := Active
	if in.State != nil {
		state, err = ParseState(*in.State)
		if err != nil {
			return Customer{}, &ValidationError{Violations: []Violation{{Field: "state", Message: err.Error()}}}
		}
	}

	return Customer{
		Name:      in.Name,
		Birthdate: birthdate,
		State:     state,
	}, nil
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a calendar date formatted as " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag() + " validation"
}
