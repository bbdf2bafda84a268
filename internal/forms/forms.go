// Package forms declares the validation rules for every form in the app as
// tagged structs, evaluated by go-playground/validator. Rules run in
// declaration order: the first failing rule per field produces one message,
// while all fields are validated before reporting.
package forms

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the form field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := ParsePrice(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(fmt.Sprintf("failed to register price validation: %v", err))
	}
	return v
}

// ContactForm is the contact page form.
type ContactForm struct {
	Name    string `form:"name" validate:"required,min=2,max=50"`
	Email   string `form:"email" validate:"required,email"`
	Message string `form:"message" validate:"required,min=10"`
}

// RegistrationForm is the account registration form. Uniqueness of username
// and email is checked against the store by the auth service, not here.
type RegistrationForm struct {
	Username  string `form:"username" validate:"required,min=3,max=64"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=6"`
	Password2 string `form:"password2" validate:"required,eqfield=Password"`
}

// LoginForm is the login form.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ItemForm is the add-item form. Price is kept as the raw submitted string;
// use ParsePrice to obtain the numeric value after validation.
type ItemForm struct {
	Name        string `form:"name" validate:"required,min=3,max=100"`
	Description string `form:"description"`
	Price       string `form:"price" validate:"required,price"`
	Category    string `form:"category" validate:"required,max=50"`
	IsAvailable string `form:"is_available"`
}

// Available reports whether the availability checkbox was ticked.
// Browsers submit "on" for a checked box and omit the field otherwise.
func (f *ItemForm) Available() bool {
	return f.IsAvailable != ""
}

// fieldMessages maps "<Struct>.<Field>.<tag>" to the user-facing message.
var fieldMessages = map[string]string{
	"ContactForm.Name.required":    "Name is required.",
	"ContactForm.Name.min":         "Name must be between 2 and 50 characters.",
	"ContactForm.Name.max":         "Name must be between 2 and 50 characters.",
	"ContactForm.Email.required":   "Email is required.",
	"ContactForm.Email.email":      "Invalid email address.",
	"ContactForm.Message.required": "Message is required.",
	"ContactForm.Message.min":      "Message must be at least 10 characters.",

	"RegistrationForm.Username.required":  "Username is required.",
	"RegistrationForm.Username.min":       "Username must be between 3 and 64 characters.",
	"RegistrationForm.Username.max":       "Username must be between 3 and 64 characters.",
	"RegistrationForm.Email.required":     "Email is required.",
	"RegistrationForm.Email.email":        "Invalid email address.",
	"RegistrationForm.Password.required":  "Password is required.",
	"RegistrationForm.Password.min":       "Password must be at least 6 characters.",
	"RegistrationForm.Password2.required": "Please confirm your password.",
	"RegistrationForm.Password2.eqfield":  "Passwords must match.",

	"LoginForm.Email.required":    "Email is required.",
	"LoginForm.Email.email":       "Invalid email address.",
	"LoginForm.Password.required": "Password is required.",

	"ItemForm.Name.required":     "Item name is required.",
	"ItemForm.Name.min":          "Item name must be between 3 and 100 characters.",
	"ItemForm.Name.max":          "Item name must be between 3 and 100 characters.",
	"ItemForm.Price.required":    "Price is required.",
	"ItemForm.Price.price":       "Invalid price format. Use a number.",
	"ItemForm.Category.required": "Category is required.",
	"ItemForm.Category.max":      "Category can be at most 50 characters.",
}

// Validate runs the declared rules against the form and returns one message
// per failing field, keyed by the field's form name. An empty map means the
// form is valid.
func Validate(form interface{}) map[string]string {
	errs := make(map[string]string)

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid form submission."
		return errs
	}

	for _, fe := range validationErrors {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		key := fe.StructNamespace() + "." + fe.Tag()
		msg, ok := fieldMessages[key]
		if !ok {
			msg = fmt.Sprintf("Field '%s' failed on the '%s' tag", fe.Field(), fe.Tag())
		}
		errs[fe.Field()] = msg
	}
	return errs
}

// ParsePrice parses a submitted price, accepting either a comma or a dot as
// the decimal separator. The price must be a positive number.
func ParsePrice(raw string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if price <= 0 {
		return 0, fmt.Errorf("price must be positive, got %v", price)
	}
	return price, nil
}
