package tadow

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Code is an error code that mirrors the http status codes. It can be used to create errors to pass around across
// middleware layers to handle errors structurally.
type Code int

const (
	CodeUnknown                      Code = 0
	CodeBadRequest                   Code = http.StatusBadRequest                   // RFC 9110, 15.5.1
	CodeUnauthorized                 Code = http.StatusUnauthorized                 // RFC 9110, 15.5.2
	CodePaymentRequired              Code = http.StatusPaymentRequired              // RFC 9110, 15.5.3
	CodeForbidden                    Code = http.StatusForbidden                    // RFC 9110, 15.5.4
	CodeNotFound                     Code = http.StatusNotFound                     // RFC 9110, 15.5.5
	CodeMethodNotAllowed             Code = http.StatusMethodNotAllowed             // RFC 9110, 15.5.6
	CodeNotAcceptable                Code = http.StatusNotAcceptable                // RFC 9110, 15.5.7
	CodeRequestTimeout               Code = http.StatusRequestTimeout               // RFC 9110, 15.5.9
	CodeConflict                     Code = http.StatusConflict                     // RFC 9110, 15.5.10
	CodeGone                         Code = http.StatusGone                         // RFC 9110, 15.5.11
	CodePreconditionFailed           Code = http.StatusPreconditionFailed           // RFC 9110, 15.5.13
	CodeRequestEntityTooLarge        Code = http.StatusRequestEntityTooLarge        // RFC 9110, 15.5.14
	CodeUnsupportedMediaType         Code = http.StatusUnsupportedMediaType         // RFC 9110, 15.5.16
	CodeTeapot                       Code = http.StatusTeapot                       // RFC 9110, 15.5.19 (Unused)
	CodeUnprocessableEntity          Code = http.StatusUnprocessableEntity          // RFC 9110, 15.5.21
	CodeTooManyRequests              Code = http.StatusTooManyRequests              // RFC 6585, 4
	CodeUnavailableForLegalReasons   Code = http.StatusUnavailableForLegalReasons   // RFC 7725, 3
	CodeInternalServerError          Code = http.StatusInternalServerError          // RFC 9110, 15.6.1
	CodeNotImplemented               Code = http.StatusNotImplemented               // RFC 9110, 15.6.2
	CodeBadGateway                   Code = http.StatusBadGateway                   // RFC 9110, 15.6.3
	CodeServiceUnavailable           Code = http.StatusServiceUnavailable           // RFC 9110, 15.6.4
	CodeGatewayTimeout               Code = http.StatusGatewayTimeout               // RFC 9110, 15.6.5
	CodeNetworkAuthenticationRequired Code = http.StatusNetworkAuthenticationRequired // RFC 6585, 6
)

// Category tags an error with the kind of failure it represents. Exception handlers are registered per
// category. Applications may declare categories of their own for custom errors.
type Category string

const (
	CategoryNotFound               Category = "not_found"
	CategoryMethodNotAllowed       Category = "method_not_allowed"
	CategoryUnsupportedContentType Category = "unsupported_content_type"
	CategoryMalformedBody          Category = "malformed_body"
	CategoryBodyTooLarge           Category = "body_too_large"
	CategoryValidation             Category = "validation"
	CategoryHandler                Category = "handler"
	CategoryRegistrationConflict   Category = "registration_conflict"
)

// Code returns the status code that errors of this category are rendered with by default.
func (c Category) Code() Code {
	switch c {
	case CategoryNotFound:
		return CodeNotFound
	case CategoryMethodNotAllowed:
		return CodeMethodNotAllowed
	case CategoryUnsupportedContentType:
		return CodeUnsupportedMediaType
	case CategoryMalformedBody, CategoryValidation:
		return CodeBadRequest
	case CategoryBodyTooLarge:
		return CodeRequestEntityTooLarge
	default:
		return CodeInternalServerError
	}
}

// Error describes a categorized error with a status code.
type Error struct {
	category Category
	code     Code
	err      error
	details  any
}

// NewError inits a new error given the category and error code. A zero code is replaced by the category's default.
func NewError(cat Category, c Code, underlying error) *Error {
	if c == CodeUnknown {
		c = cat.Code()
	}

	return &Error{category: cat, code: c, err: underlying}
}

// WithDetails attaches structured detail to the error, it is returned for chaining.
func (e *Error) WithDetails(d any) *Error {
	e.details = d
	return e
}

func (e *Error) Category() Category { return e.category }
func (e *Error) Code() Code         { return e.code }
func (e *Error) Details() any       { return e.details }
func (e *Error) Unwrap() error      { return e.err }

// Message returns the message of the underlying error, without the status text.
func (e *Error) Message() string {
	if e.err == nil {
		return http.StatusText(int(e.code))
	}

	return e.err.Error()
}

func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	return fmt.Sprintf("%s: %s", status, e.Message())
}

// NotFound creates the error for a path that matches no route.
func NotFound(path string) *Error {
	return NewError(CategoryNotFound, CodeNotFound, errors.Newf("Not found: %s", path))
}

// MethodNotAllowed creates the error for a path that matched a route which does not accept the method.
func MethodNotAllowed(method string, allowed []string) *Error {
	return NewError(CategoryMethodNotAllowed, CodeMethodNotAllowed,
		errors.Newf("Method not allowed: %s", method)).WithDetails(allowed)
}

// UnsupportedContentType creates the error for a content type without a registered codec.
func UnsupportedContentType(contentType string) *Error {
	return NewError(CategoryUnsupportedContentType, CodeUnsupportedMediaType,
		errors.Newf("Content type not supported: %q", contentType))
}

// MalformedBody creates the error for a body that cannot be decoded under its content type.
func MalformedBody(cause error) *Error {
	return NewError(CategoryMalformedBody, CodeBadRequest, errors.Wrap(cause, "Invalid request data"))
}

// BodyTooLarge creates the error for a body that exceeds the configured limit.
func BodyTooLarge(limit int64) *Error {
	return NewError(CategoryBodyTooLarge, CodeRequestEntityTooLarge,
		errors.Newf("Request body too large: limit is %d bytes", limit))
}

// RegistrationConflict creates the error for startup registrations that collide.
func RegistrationConflict(format string, args ...any) *Error {
	return NewError(CategoryRegistrationConflict, CodeInternalServerError, errors.Newf(format, args...))
}

// FieldError describes a single field that failed validation.
type FieldError struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationFailed creates a validation error carrying the failing fields as details.
func ValidationFailed(fields []FieldError, cause error) *Error {
	if cause == nil {
		cause = errors.New("validation failed")
	}

	if fields == nil {
		fields = []FieldError{}
	}

	return NewError(CategoryValidation, CodeBadRequest, cause).WithDetails(fields)
}

// CategoryOf returns the category of the outermost [*Error] in err's chain. Errors without one belong to
// [CategoryHandler]. A nil error has no category.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}

	if e, ok := asError(err); ok {
		return e.Category()
	}

	return CategoryHandler
}

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code()
	}
	return CodeUnknown
}

// categoriesOf lists the categories of every [*Error] in the chain, outermost first, followed by
// [CategoryHandler] as the least specific category.
func categoriesOf(err error) (cats []Category) {
	for e := err; e != nil; e = errors.UnwrapOnce(e) {
		if te, ok := e.(*Error); ok { //nolint:errorlint
			cats = append(cats, te.Category())
		}
	}

	return append(cats, CategoryHandler)
}

// asError uses errors.As to unwrap any error and look for a *Error.
func asError(err error) (*Error, bool) {
	var te *Error
	ok := errors.As(err, &te)
	return te, ok
}
