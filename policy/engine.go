package policy

import (
	_ "embed"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

const (
	ActionRecipeRead   = "recipe.read"
	ActionRecipeCreate = "recipe.create"
	ActionRecipeUpdate = "recipe.update"
	ActionRecipeDelete = "recipe.delete"
)

//go:embed recipes.yaml
var recipesDocument []byte

// Engine decides actions against a single policy document.
type Engine struct {
	doc PolicyDocument
}

func NewEngine(doc PolicyDocument) *Engine {
	return &Engine{doc: doc}
}

// NewRecipeEngine returns an Engine for the built-in recipe rules.
func NewRecipeEngine() (*Engine, error) {
	doc, err := ParseDocument(recipesDocument)
	if err != nil {
		return nil, err
	}
	return NewEngine(doc), nil
}

func ParseDocument(data []byte) (PolicyDocument, error) {
	var doc PolicyDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return PolicyDocument{}, errors.Wrap(err, "parse policy document")
	}
	if _, ok := doc.Versions[Version]; !ok {
		return PolicyDocument{}, errors.Errorf("policy %q has no version %s", doc.Name, Version)
	}
	return doc, nil
}

// Allowed evaluates action and falls back to the document default when no
// statement concludes.
func (e *Engine) Allowed(ctx RequestContext, action string) (bool, error) {
	conclusion, err := EvaluatePolicy(e.doc, ctx, action)
	if err != nil {
		return false, err
	}
	defaultAllow := e.doc.Versions[Version].Defaults[action]
	return SummarizeConclusion([]Conclusion{conclusion}, defaultAllow), nil
}
