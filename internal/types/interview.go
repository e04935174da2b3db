// Package types provides type definitions for structured data used throughout the interview question pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// InterviewContext is the immutable job context a pipeline run is created for.
type InterviewContext struct {
	CompanyName    string `json:"company_name" validate:"required,notblank"`
	JobRole        string `json:"job_role" validate:"required,notblank"`
	JobDescription string `json:"job_description" validate:"required,notblank"`
}

// ValidationError reports an invalid field on an inbound record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the notblank rule and
// json field naming registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks that every field is present and not blank.
// The first failing field is reported as a *ValidationError.
func (c InterviewContext) Validate() error {
	return ValidateStruct(c)
}

// ValidateStruct validates any struct with validate tags through the shared
// validator and reports the first failing field as a *ValidationError.
func ValidateStruct(v any) error {
	return structError(Validator().Struct(v))
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c InterviewContext) Trimmed() InterviewContext {
	return InterviewContext{
		CompanyName:    strings.TrimSpace(c.CompanyName),
		JobRole:        strings.TrimSpace(c.JobRole),
		JobDescription: strings.TrimSpace(c.JobDescription),
	}
}

func structError(err error) error {
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "is required"
		if fe.Tag() == "notblank" {
			msg = "must not be blank"
		}
		return &ValidationError{Field: fe.Field(), Message: msg}
	}
	return &ValidationError{Message: err.Error()}
}

// CompanyRequest selects a company in the static DSA table.
type CompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,notblank"`
}

// Validate checks that the company name is present and not blank.
func (r CompanyRequest) Validate() error {
	return ValidateStruct(r)
}
