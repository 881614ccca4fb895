package service

import "fmt"

// Error handling principles:
// 1. Expected conditions surface as sentinels from domain, guard and store
// 2. Unexpected store failures are wrapped in ServiceError
// 3. Callers use errors.Is/errors.As to check for specific conditions
// 4. The API layer maps errors to HTTP status codes

// ServiceError records which service operation failed. It wraps the
// underlying error so sentinels stay visible to errors.Is.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
	}
	return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a ServiceError for service and op wrapping err.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{
		Service: service,
		Op:      op,
		Err:     err,
	}
}
