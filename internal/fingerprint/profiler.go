package fingerprint

import "context"

// Status is the profiling SDK result code.
type Status string

const (
	StatusOK                     Status = "ok"
	StatusNotYet                 Status = "not_yet"
	StatusConnectionError        Status = "connection_error"
	StatusHostNotFound           Status = "host_not_found"
	StatusNetworkTimeout         Status = "network_timeout"
	StatusPartialProfile         Status = "partial_profile"
	StatusInternalError          Status = "internal_error"
	StatusHostVerificationFailed Status = "host_verification_failed"
	StatusInvalidOrgID           Status = "invalid_org_id"
	StatusNotConfigured          Status = "not_configured"
	StatusCertificateMismatch    Status = "certificate_mismatch"
)

// transport reports statuses caused by the network rather than the SDK.
func (s Status) transport() bool {
	switch s {
	case StatusConnectionError, StatusHostNotFound, StatusNetworkTimeout, StatusPartialProfile:
		return true
	}
	return false
}

type Result struct {
	Status    Status `json:"status"`
	SessionID string `json:"session_id"`
}

// Profiler is the contract of the external device profiling SDK.
type Profiler interface {
	Configure(ctx context.Context, orgID string) error
	Profile(ctx context.Context, requestID string) (Result, error)
}
