package utils

import "errors"

var ErrInvalidToken = errors.New("invalid token")
var ErrExpiredToken = errors.New("token has expired")
var ErrNoRowsInserted = errors.New("no rows were inserted")
var ErrSectionFull = errors.New("section is full")
var ErrUnauthorized = errors.New("unauthorized")
var ErrValueConversion = errors.New("could not convert value")

// ErrorBody is the JSON shape of every error response.
func ErrorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
