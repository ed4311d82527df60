// Package handlers – error codes
//
// Every error envelope carries one of these codes next to the HTTP status.
// Clients branch on the code; the message is for humans.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "item_in_use",
//	  "message": "item is referenced by edits"
//	}
package handlers

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeRateLimited  = "rate_limited"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeInvalidQID       = "invalid_qid"
	ErrCodeItemInUse        = "item_in_use"
	ErrCodeDuplicateEdit    = "duplicate_edit"
	ErrCodeAmbiguous        = "ambiguous_result"
	ErrCodeLookupFailed     = "lookup_failed"
	ErrCodeListFailed       = "list_failed"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
