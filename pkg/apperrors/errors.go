// Package apperrors defines the translation failure taxonomy.
// Every failure in the translation pipeline maps to one of these
// sentinels; nothing propagates to the transport layer as a fault.
package apperrors

import "errors"

var (
	// ErrModelInvocation covers any failure of the model call itself
	// (network, auth, provider errors). Surfaced with a generic message.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrMalformedOutput indicates the model response was not valid JSON
	// and best-effort recovery could not locate a JSON object in it.
	ErrMalformedOutput = errors.New("invalid JSON from model")

	// ErrInvalidStructure indicates the JSON parsed but did not match
	// the expected {sql: string} shape.
	ErrInvalidStructure = errors.New("invalid SQL structure from model")

	// ErrEmptyGeneration indicates the model returned blank SQL.
	ErrEmptyGeneration = errors.New("model returned empty SQL")

	// ErrTautology indicates the generated SQL contains an always-false
	// condition, the model's way of signaling it could not comply.
	ErrTautology = errors.New("generated SQL is an always-false query")

	// ErrSelfReportedError indicates the SQL text itself embeds an error
	// message (e.g. SELECT 'Error: column does not exist').
	ErrSelfReportedError = errors.New("model self-reported an error in SQL")

	// ErrUnknownIdentifier indicates one or more extracted identifiers
	// failed fuzzy matching against the supplied schema.
	ErrUnknownIdentifier = errors.New("unknown identifier in generated SQL")

	// ErrInjectionDetected indicates the inbound natural-language query
	// carried a SQL injection payload and was rejected before prompting.
	ErrInjectionDetected = errors.New("input rejected by injection screening")
)
