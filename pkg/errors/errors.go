package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation        Code = "VALIDATION_ERROR"
	CodeNotFound          Code = "NOT_FOUND"
	CodeFormat            Code = "FORMAT_ERROR"
	CodeOutOfStock        Code = "OUT_OF_STOCK"
	CodeInsufficientFunds Code = "INSUFFICIENT_FUNDS"
	CodeWriteFailure      Code = "WRITE_FAILURE"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Metadata describes how a code is surfaced to the operator. Every
// error ends up in a dialog, so each code carries a stable message the
// UI layer can show without inspecting the cause chain.
type Metadata struct {
	UserMessage    string
	Retryable      bool
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		UserMessage:    "invalid input",
		Retryable:      false,
		DetailsAllowed: true,
	},
	CodeNotFound: {
		UserMessage:    "not found",
		Retryable:      false,
		DetailsAllowed: true,
	},
	CodeFormat: {
		UserMessage:    "data format error",
		Retryable:      false,
		DetailsAllowed: true,
	},
	CodeOutOfStock: {
		UserMessage:    "item is out of stock",
		Retryable:      false,
		DetailsAllowed: true,
	},
	CodeInsufficientFunds: {
		UserMessage:    "cash tendered is less than the total due",
		Retryable:      false,
		DetailsAllowed: true,
	},
	CodeWriteFailure: {
		UserMessage:    "could not write file",
		Retryable:      true,
		DetailsAllowed: true,
	},
	CodeInternal: {
		UserMessage:    "internal error",
		Retryable:      true,
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf extracts the Code from any error, defaulting to CodeInternal
// for errors that did not originate here.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}
