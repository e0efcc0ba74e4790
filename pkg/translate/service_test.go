package translate

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parlance-data/parlance-engine/pkg/config"
	"github.com/parlance-data/parlance-engine/pkg/llm"
	"github.com/parlance-data/parlance-engine/pkg/schema"
)

func newTestService(t *testing.T, mock *llm.MockLLMClient, cfg config.TranslateConfig) *Service {
	t.Helper()
	return NewService(mock, cfg, zap.NewNop())
}

func mockReturning(response string) *llm.MockLLMClient {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return response, nil
	}
	return mock
}

func candidateColumns(t *testing.T) schema.ColumnList {
	t.Helper()
	var cols schema.ColumnList
	raw := `[{"name": "Roll_No", "type": "number"}, {"name": "Candidate Last Name", "type": "text"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &cols))
	return cols
}

func TestTranslate_Success(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Candidate_Last_Name FROM A4Zi WHERE Candidate_Last_Name LIKE '%y'"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "Show everyone whose last name ends with y",
	})

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Contains(t, resp.SQL, "Candidate_Last_Name")
	assert.Empty(t, resp.Message)
	assert.Equal(t, 1, mock.GenerateResponseCalls)
}

func TestTranslate_PromptCarriesSchema(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "list roll numbers",
	})

	assert.Contains(t, mock.LastPrompt, "Roll_No, Candidate Last Name")
	assert.Contains(t, mock.LastPrompt, "Table: A4Zi")
}

func TestTranslate_HallucinatedColumnRejected(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT salary FROM A4Zi"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "show salaries",
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Invalid column used in query", resp.Message)
	assert.Empty(t, resp.SQL)
}

func TestTranslate_TautologyRejectedDespiteValidColumns(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi WHERE 1=0"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "impossible request",
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Query cannot be created from the given input", resp.Message)
}

func TestTranslate_SelfReportedErrorRejected(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT 'Error: Column \"salary\" does not exist' AS error_message"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "show salaries",
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Invalid column used in query", resp.Message)
}

func TestTranslate_EmptySchemaRejectsEverything(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT something FROM somewhere"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{Query: "anything"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Invalid column used in query", resp.Message)
}

func TestTranslate_RecoversJSONFromProse(t *testing.T) {
	mock := mockReturning(`Here is your query:

{"sql": "SELECT Roll_No FROM A4Zi"}

Hope that helps!`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "list roll numbers",
	})

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, "SELECT Roll_No FROM A4Zi", resp.SQL)
}

func TestTranslate_InvalidJSON(t *testing.T) {
	mock := mockReturning(`I am sorry, I cannot help with that.`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		Columns: candidateColumns(t),
		Query:   "q",
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Invalid JSON from model", resp.Message)
}

func TestTranslate_StructureMismatch(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"sql field is a number", `{"sql": 42}`},
		{"sql field missing", `{"query": "SELECT 1"}`},
		{"sql field null", `{"sql": null}`},
		{"array instead of object", `["SELECT 1"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, mockReturning(tt.output), config.TranslateConfig{})
			resp := svc.Translate(context.Background(), Request{Columns: candidateColumns(t), Query: "q"})

			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, "Invalid SQL structure from model", resp.Message)
		})
	}
}

func TestTranslate_EmptySQL(t *testing.T) {
	tests := []string{`{"sql": ""}`, `{"sql": "   "}`}
	for _, output := range tests {
		svc := newTestService(t, mockReturning(output), config.TranslateConfig{})
		resp := svc.Translate(context.Background(), Request{Columns: candidateColumns(t), Query: "q"})

		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, "Model returned empty SQL", resp.Message)
	}
}

func TestTranslate_ModelFailure(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "", errors.New("connection refused")
	}
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{Columns: candidateColumns(t), Query: "q"})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Internal processing error", resp.Message)
}

func TestTranslate_NoRetryOnFailure(t *testing.T) {
	mock := llm.NewMockLLMClient()
	mock.GenerateResponseFunc = func(ctx context.Context, prompt, system string, temperature float64) (string, error) {
		return "", errors.New("timeout")
	}
	svc := newTestService(t, mock, config.TranslateConfig{})

	svc.Translate(context.Background(), Request{Columns: candidateColumns(t), Query: "q"})
	assert.Equal(t, 1, mock.GenerateResponseCalls)
}

func TestTranslate_Idempotent(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi WHERE Roll_No > 5"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})
	req := Request{TableName: "A4Zi", Columns: candidateColumns(t), Query: "q"}

	first := svc.Translate(context.Background(), req)
	second := svc.Translate(context.Background(), req)

	assert.Equal(t, first, second)
}

func TestTranslate_InjectionScreening(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi"}`)
	svc := newTestService(t, mock, config.TranslateConfig{InjectionScreening: true})

	resp := svc.Translate(context.Background(), Request{
		Columns: candidateColumns(t),
		Query:   "x'; DROP TABLE users--",
	})

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "Query rejected by input screening", resp.Message)
	assert.Zero(t, mock.GenerateResponseCalls, "screened queries must never reach the model")
}

func TestTranslate_InjectionScreeningDisabled(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi"}`)
	svc := newTestService(t, mock, config.TranslateConfig{InjectionScreening: false})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "x'; DROP TABLE users--",
	})

	// With screening off the pipeline proceeds; validation still runs.
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, 1, mock.GenerateResponseCalls)
}

func TestTranslate_PlainEnglishPassesScreening(t *testing.T) {
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi"}`)
	svc := newTestService(t, mock, config.TranslateConfig{InjectionScreening: true})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "Show everyone whose last name ends with y",
	})

	assert.Equal(t, StatusSuccess, resp.Status)
}

func TestTranslate_LiteralContentsDoNotTriggerRejection(t *testing.T) {
	// 'error_column' is only a string literal; the validator must not
	// treat its contents as identifiers.
	mock := mockReturning(`{"sql": "SELECT Roll_No FROM A4Zi WHERE Candidate_Last_Name = 'unknown_word_xyz'"}`)
	svc := newTestService(t, mock, config.TranslateConfig{})

	resp := svc.Translate(context.Background(), Request{
		TableName: "A4Zi",
		Columns:   candidateColumns(t),
		Query:     "q",
	})

	assert.Equal(t, StatusSuccess, resp.Status)
}
