package enums

import pkgerrors "github.com/yusufhadi/smartpos-backend/pkg/errors"

// ResolutionFailure classifies why a product resolution did not yield a line
// item. Kinds, not Go types: the HTTP layer maps each kind onto a coded error.
type ResolutionFailure string

const (
	ResolutionFailureInvalidQuery       ResolutionFailure = "invalid_query"
	ResolutionFailureServiceUnavailable ResolutionFailure = "service_unavailable"
	ResolutionFailureMalformedResponse  ResolutionFailure = "malformed_response"
	ResolutionFailureNotRecognized      ResolutionFailure = "not_recognized"
)

func (f ResolutionFailure) Valid() bool {
	switch f {
	case ResolutionFailureInvalidQuery,
		ResolutionFailureServiceUnavailable,
		ResolutionFailureMalformedResponse,
		ResolutionFailureNotRecognized:
		return true
	}
	return false
}

// Retryable reports whether retrying the same input is worthwhile. Only
// transport-level failures qualify; schema failures and misses need an edited
// query instead.
func (f ResolutionFailure) Retryable() bool {
	return f == ResolutionFailureServiceUnavailable
}

// ErrorCode maps the failure kind onto the platform error code used by the
// response envelope.
func (f ResolutionFailure) ErrorCode() pkgerrors.Code {
	switch f {
	case ResolutionFailureInvalidQuery:
		return pkgerrors.CodeInvalidQuery
	case ResolutionFailureServiceUnavailable:
		return pkgerrors.CodeDependency
	case ResolutionFailureMalformedResponse:
		return pkgerrors.CodeMalformedResponse
	case ResolutionFailureNotRecognized:
		return pkgerrors.CodeNotRecognized
	}
	return pkgerrors.CodeInternal
}

// FailureFromCode is the inverse mapping, used when reconstructing a failure
// kind from a coded resolver error.
func FailureFromCode(code pkgerrors.Code) (ResolutionFailure, bool) {
	switch code {
	case pkgerrors.CodeInvalidQuery:
		return ResolutionFailureInvalidQuery, true
	case pkgerrors.CodeDependency:
		return ResolutionFailureServiceUnavailable, true
	case pkgerrors.CodeMalformedResponse:
		return ResolutionFailureMalformedResponse, true
	case pkgerrors.CodeNotRecognized:
		return ResolutionFailureNotRecognized, true
	}
	return "", false
}
