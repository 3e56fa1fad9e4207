// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable error messages.
//
// Field names in messages come from the koanf tag when present, so a
// failure reads the same way as the configuration key that caused it:
//
//	type RefreshConfig struct {
//	    Interval time.Duration `koanf:"interval" validate:"gte=0"`
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Namespace string
	Field     string
	Tag       string
	Param     string
	Value     any
	message   string
}

func (e *FieldError) Error() string {
	return e.message
}

// Errors is the set of failed rules for one struct.
type Errors []FieldError

func (ve Errors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(ve))
	for i := range ve {
		messages[i] = ve[i].message
	}
	return strings.Join(messages, "; ")
}

// Fields returns the dotted namespaces of the failed fields.
func (ve Errors) Fields() []string {
	fields := make([]string, len(ve))
	for i := range ve {
		fields[i] = ve[i].Namespace
	}
	return fields
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)
	})
	return validate
}

// tagName reports the koanf key, then the json key, then the Go name.
func tagName(fld reflect.StructField) string {
	for _, key := range []string{"koanf", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct validates s. It returns nil or an Errors value.
func ValidateStruct(s any) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(Errors, len(fieldErrs))
	for i, fe := range fieldErrs {
		ns := trimRoot(fe.Namespace())
		out[i] = FieldError{
			Namespace: ns,
			Field:     fe.Field(),
			Tag:       fe.Tag(),
			Param:     fe.Param(),
			Value:     fe.Value(),
			message:   translateError(fe, ns),
		}
	}
	return out
}

// trimRoot drops the leading struct type name from a namespace.
func trimRoot(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

var errorMessageTemplates = map[string]string{
	"required": "%s is required",
	"hostname": "%s must be a valid hostname",
	"ip":       "%s must be a valid IP address",
}

var errorMessageWithParam = map[string]string{
	"oneof":    "%s must be one of: %s",
	"gte":      "%s must be greater than or equal to %s",
	"lte":      "%s must be less than or equal to %s",
	"gt":       "%s must be greater than %s",
	"lt":       "%s must be less than %s",
	"gtefield": "%s must be greater than or equal to %s",
}

func translateError(fe validator.FieldError, field string) string {
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
