package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
)

//go:embed todos.schema.json
var schemaJSON string

const schemaURL = "todos.schema.json"

var todosSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("todos schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// Encode serializes the whole collection as a JSON array.
func Encode(todos []model.Todo) (string, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.Marshal(todos)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

type wireTodo struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// Decode parses and validates a persisted collection. Anything that is not
// a JSON array of {id, content, createdAt} with unique ids is rejected.
func Decode(data string) ([]model.Todo, error) {
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("json unmarshal: trailing data after array")
	}
	if err := todosSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var wire []wireTodo
	if err := json.NewDecoder(bytes.NewReader([]byte(data))).Decode(&wire); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	out := make([]model.Todo, 0, len(wire))
	seen := make(map[string]struct{}, len(wire))
	for i, w := range wire {
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, w.ID)
		}
		seen[w.ID] = struct{}{}
		ts, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("item %d: createdAt: %w", i, err)
		}
		out = append(out, model.Todo{ID: w.ID, Content: w.Content, CreatedAt: ts})
	}
	return out, nil
}
