package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func NewFalse() *bool {
	b := false
	return &b
}

func UniqueSlice[T comparable](slice []T) []T {
	seen := make(map[T]struct{}, len(slice))
	result := make([]T, 0, len(slice))
	for _, v := range slice {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

// ProcessValidationErrors flattens validator errors into field => message.
func ProcessValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = err.Error()
		return errorsMap
	}
	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field())
		errorsMap[field] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
	}
	return errorsMap
}
