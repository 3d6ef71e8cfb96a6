// Package errors provides structured error types for better observability
// and programmatic error handling across the exporter.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeAPI,
//	    "failed to list jobs",
//	    cause,
//	    map[string]interface{}{
//	        "namespace": namespace,
//	        "label": labelKey,
//	    },
//	)
package errors
