package analyses

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/tyler-sommer/stick"
)

//go:embed templates/*.twig
var promptTemplates embed.FS

var templateByReview = map[string]string{
	ReviewPlan:     "templates/prompt_plan.twig",
	ReviewTraining: "templates/prompt_training.twig",
	ReviewPhoto:    "templates/prompt_photo.twig",
}

var (
	schemaOnce sync.Once
	schemaJSON string
)

// ResultSchemaJSON renders the JSON schema the model output must satisfy.
// Reflected once from the Result type so the prompt and the decoder cannot
// drift apart.
func ResultSchemaJSON() string {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			AllowAdditionalProperties:  false,
			DoNotReference:             true,
			RequiredFromJSONSchemaTags: true,
		}
		schema := reflector.Reflect(Result{})
		raw, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			panic(fmt.Sprintf("reflect result schema: %v", err))
		}
		schemaJSON = string(raw)
	})
	return schemaJSON
}

// BuildPrompt renders the review-specific instruction template over the
// assembled corpus.
func BuildPrompt(reviewType string, year int, corpusText string) (string, error) {
	path, ok := templateByReview[reviewType]
	if !ok {
		return "", fmt.Errorf("no prompt template for review type %q", reviewType)
	}
	tpl, err := promptTemplates.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt template %s: %w", path, err)
	}

	env := stick.New(nil)
	var out strings.Builder
	err = env.Execute(string(tpl), &out, map[string]stick.Value{
		"year":   year,
		"schema": ResultSchemaJSON(),
		"corpus": corpusText,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt %s: %w", path, err)
	}
	return out.String(), nil
}
