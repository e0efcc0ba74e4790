// Package translate orchestrates natural-language to SQL translation:
// prompt construction, the single model call, defensive output parsing,
// and validation of the generated SQL against the supplied schema.
package translate

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/parlance-data/parlance-engine/pkg/apperrors"
	"github.com/parlance-data/parlance-engine/pkg/config"
	"github.com/parlance-data/parlance-engine/pkg/llm"
	"github.com/parlance-data/parlance-engine/pkg/logging"
	"github.com/parlance-data/parlance-engine/pkg/observability"
	"github.com/parlance-data/parlance-engine/pkg/prompts"
	"github.com/parlance-data/parlance-engine/pkg/schema"
	sqltext "github.com/parlance-data/parlance-engine/pkg/sql"
)

// Request is the inbound translation request. Missing fields default to
// their zero values.
type Request struct {
	TableName string            `json:"table_name"`
	Columns   schema.ColumnList `json:"columns_list"`
	Query     string            `json:"query"`
}

// Response is the outbound translation result. Error semantics are
// carried in the Status field, never in transport-level error codes.
type Response struct {
	Status  string `json:"status"`
	SQL     string `json:"sql,omitempty"`
	Message string `json:"message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// User-visible error messages. Reason strings accompany them in logs
// and metrics; the messages themselves are the API contract.
const (
	msgInternalError    = "Internal processing error"
	msgInvalidJSON      = "Invalid JSON from model"
	msgInvalidStructure = "Invalid SQL structure from model"
	msgEmptySQL         = "Model returned empty SQL"
	msgTautology        = "Query cannot be created from the given input"
	msgInvalidColumn    = "Invalid column used in query"
	msgInjection        = "Query rejected by input screening"
)

// sqlPayload is the one-field schema the model's JSON must conform to.
// The pointer distinguishes a missing or mistyped field from an empty
// string; both structural faults get the same error message.
type sqlPayload struct {
	SQL *string `json:"sql"`
}

// Service runs the translation pipeline. Each call is independent and
// stateless: allowed-name sets and candidate sets are rebuilt per
// request, so concurrent invocations need no locking.
type Service struct {
	client llm.LLMClient
	cfg    config.TranslateConfig
	logger *zap.Logger
}

// NewService creates a translation service.
func NewService(client llm.LLMClient, cfg config.TranslateConfig, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
		logger: logger.Named("translate"),
	}
}

// Translate runs one translation attempt. Every failure is converted to
// an error Response here; nothing escapes to the caller as a fault.
func (s *Service) Translate(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during translation", zap.Any("panic", r))
			resp = s.errorResponse("panic", msgInternalError)
		}
	}()

	columns := req.Columns.Names()

	if s.cfg.InjectionScreening {
		if result := sqltext.CheckQueryForInjection(req.Query); result != nil {
			s.logger.Warn("injection pattern in natural-language query",
				zap.String("fingerprint", result.Fingerprint),
				zap.String("query", logging.SanitizeQuery(req.Query)))
			return s.errorFor(apperrors.ErrInjectionDetected)
		}
	}

	prompt := prompts.BuildTranslationPrompt(req.TableName, columns, req.Query)

	raw, err := s.client.GenerateResponse(ctx, prompt, prompts.SystemMessage, s.cfg.Temperature)
	if err != nil {
		s.logger.Error("model invocation failed",
			zap.String("error", logging.SanitizeError(err)),
			zap.String("error_type", string(llm.GetErrorType(err))))
		return s.errorFor(apperrors.ErrModelInvocation)
	}

	generatedSQL, terr := s.parseModelOutput(raw)
	if terr != nil {
		return s.errorFor(terr)
	}

	if terr := s.validateSQL(generatedSQL, columns, req.TableName); terr != nil {
		return s.errorFor(terr)
	}

	s.logger.Info("translation succeeded",
		zap.String("sql", logging.SanitizeQuery(generatedSQL)),
		zap.Int("columns", len(columns)))
	observability.RecordTranslation(StatusSuccess, "ok")

	return Response{Status: StatusSuccess, SQL: generatedSQL}
}

// parseModelOutput decodes the model's text into the {sql: string}
// payload: direct JSON parse first, then best-effort recovery of a
// balanced JSON substring from surrounding prose.
func (s *Service) parseModelOutput(raw string) (string, error) {
	jsonText := strings.TrimSpace(raw)

	var payload sqlPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		recovered, rerr := llm.ExtractJSON(jsonText)
		if rerr != nil {
			s.logger.Warn("no JSON in model output",
				zap.String("output", logging.TruncateString(jsonText, logging.MaxQueryLogLength)))
			return "", apperrors.ErrMalformedOutput
		}
		payload = sqlPayload{}
		if err := json.Unmarshal([]byte(recovered), &payload); err != nil {
			return "", apperrors.ErrInvalidStructure
		}
	}

	if payload.SQL == nil {
		return "", apperrors.ErrInvalidStructure
	}

	generatedSQL := strings.TrimSpace(*payload.SQL)
	if generatedSQL == "" {
		return "", apperrors.ErrEmptyGeneration
	}
	return generatedSQL, nil
}

// validateSQL runs the sanity filters and the identifier check. Filters
// run first and short-circuit extraction.
func (s *Service) validateSQL(generatedSQL string, columns []string, tableName string) error {
	if sqltext.CheckTautology(generatedSQL) {
		return apperrors.ErrTautology
	}
	if sqltext.CheckSelfReportedError(generatedSQL) {
		return apperrors.ErrSelfReportedError
	}

	allowed := schema.BuildAllowedNames(columns, tableName)
	candidates := sqltext.ExtractIdentifiers(generatedSQL)

	if unknown := allowed.Unknown(candidates); len(unknown) > 0 {
		s.logger.Info("unknown identifiers in generated SQL",
			zap.Strings("identifiers", unknown),
			zap.String("sql", logging.SanitizeQuery(generatedSQL)))
		return apperrors.ErrUnknownIdentifier
	}

	return nil
}

// errorFor maps a pipeline sentinel to its user-visible error response.
func (s *Service) errorFor(err error) Response {
	switch err {
	case apperrors.ErrModelInvocation:
		return s.errorResponse("model_invocation", msgInternalError)
	case apperrors.ErrInjectionDetected:
		return s.errorResponse("injection", msgInjection)
	case apperrors.ErrMalformedOutput:
		return s.errorResponse("malformed_output", msgInvalidJSON)
	case apperrors.ErrInvalidStructure:
		return s.errorResponse("invalid_structure", msgInvalidStructure)
	case apperrors.ErrEmptyGeneration:
		return s.errorResponse("empty_generation", msgEmptySQL)
	case apperrors.ErrTautology:
		return s.errorResponse("tautology", msgTautology)
	case apperrors.ErrSelfReportedError:
		return s.errorResponse("self_reported_error", msgInvalidColumn)
	case apperrors.ErrUnknownIdentifier:
		return s.errorResponse("unknown_identifier", msgInvalidColumn)
	default:
		return s.errorResponse("internal", msgInternalError)
	}
}

func (s *Service) errorResponse(reason, message string) Response {
	observability.RecordTranslation(StatusError, reason)
	return Response{Status: StatusError, Message: message}
}
