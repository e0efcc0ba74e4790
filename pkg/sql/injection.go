package sql

import (
	libinjection "github.com/corazawaf/libinjection-go"
)

// InjectionCheckResult describes a SQL injection pattern detected in the
// inbound natural-language query.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if a SQL injection pattern was detected
	Fingerprint string // libinjection fingerprint of the detected pattern
}

// CheckQueryForInjection screens a natural-language query for embedded
// SQL injection payloads before it is handed to the model. Plain English
// does not trip libinjection; quoted boolean tricks and stacked
// statements do.
//
// Returns nil when the query is clean.
func CheckQueryForInjection(query string) *InjectionCheckResult {
	if query == "" {
		return nil
	}

	isSQLi, fingerprint := libinjection.IsSQLi(query)
	if !isSQLi {
		return nil
	}

	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
	}
}
