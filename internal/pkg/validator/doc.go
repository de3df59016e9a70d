// Package validator provides struct validation backed by go-playground/validator v10.
//
// It serves two callers. Wiring code checks dependency structs through the
// Validator interface. Request validation uses Struct, which turns a Go
// struct type carrying `validate` tags into a schema.Schema: the extracted
// request data is decoded into a fresh value of that type and then checked.
package validator
