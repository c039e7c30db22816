package utils

import (
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// RoundMoney rounds an amount to whole cents.
func RoundMoney(amount float64) float64 {
	cents := amount * 100
	if cents < 0 {
		return float64(int64(cents-0.5)) / 100
	}
	return float64(int64(cents+0.5)) / 100
}
