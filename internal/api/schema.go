package api

// Schema is a named JSON schema used to validate service responses.
type Schema struct {
	Name       string
	Definition map[string]any
}

// ProblemSchema describes the body of GET /problem.
//
// Only problem_id and question are required: older deployments of the
// service omit the metadata fields.
var ProblemSchema = &Schema{
	Name: "problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problem_id": map[string]any{
				"type": "integer",
			},
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"problem_type": map[string]any{
				"type": "string",
			},
			"num_steps": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"theme": map[string]any{
				"type": []any{"string", "null"},
			},
		},
		"required": []any{"problem_id", "question"},
	},
}

// FeedbackSchema describes the body of POST /check_answer.
var FeedbackSchema = &Schema{
	Name: "feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type": "boolean",
			},
			"correct_answer": map[string]any{
				"type": "number",
			},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"correct", "correct_answer", "explanation"},
	},
}
