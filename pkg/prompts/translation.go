// Package prompts builds the model prompts used for SQL translation.
package prompts

import (
	"fmt"
	"strings"
)

// SystemMessage frames the model's role for every translation request.
const SystemMessage = "You convert English into SQL. You respond with JSON only, never with prose."

// ResponseSchema is the JSON schema the model's output must conform to.
// A single required field: the SQL statement with literal values
// embedded directly.
const ResponseSchema = `{"type": "object", "properties": {"sql": {"type": "string", "description": "SQL query with literal values embedded."}}, "required": ["sql"]}`

// BuildTranslationPrompt creates the prompt asking the model to
// translate a natural-language query into SQL against the given table
// and column list. Column order follows the caller-supplied list.
func BuildTranslationPrompt(tableName string, columns []string, naturalQuery string) string {
	var prompt strings.Builder

	prompt.WriteString("You convert English into SQL.\n\n")
	prompt.WriteString("IMPORTANT:\n")
	prompt.WriteString("- Embed literal values directly in SQL.\n")
	prompt.WriteString(fmt.Sprintf("- Only use columns from this list: %s\n", strings.Join(columns, ", ")))
	prompt.WriteString("- If user asks for a column NOT in the list, DO NOT invent a column.\n")
	prompt.WriteString("- If you cannot map the user's request to the table/columns, return a SQL that indicates an error or just produce an empty result.\n")
	prompt.WriteString(fmt.Sprintf("User query: %s\n", naturalQuery))
	prompt.WriteString(fmt.Sprintf("Table: %s\n\n", tableName))
	prompt.WriteString("Return JSON matching this schema:\n")
	prompt.WriteString(ResponseSchema)
	prompt.WriteString("\n")

	return prompt.String()
}
