package policy

import (
	"github.com/pkg/errors"
)

// Conclusion is what a statement emits when its condition holds. ALLOW and
// DENY are decisive; OK and NG only lean one way.
type Conclusion int

const (
	UNSET Conclusion = iota
	OK
	NG
	ALLOW
	DENY
)

var conclusionNames = map[Conclusion]string{
	UNSET: "unset",
	OK:    "ok",
	NG:    "ng",
	ALLOW: "allow",
	DENY:  "deny",
}

func ParseConclusion(s string) Conclusion {
	for c, name := range conclusionNames {
		if name == s {
			return c
		}
	}
	return UNSET
}

func (c Conclusion) String() string {
	if name, ok := conclusionNames[c]; ok {
		return name
	}
	return "unset"
}

func (c *Conclusion) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed := ParseConclusion(s)
	if parsed == UNSET {
		return errors.Errorf("unknown conclusion %q", s)
	}
	*c = parsed
	return nil
}

func (c Conclusion) decisive() bool {
	return c == ALLOW || c == DENY
}

// Or merges two conclusions. Opposite conclusions of the same strength
// cancel out; a decisive one wins over a leaning one.
func (c Conclusion) Or(other Conclusion) Conclusion {
	switch {
	case c == UNSET:
		return other
	case other == UNSET || c == other:
		return c
	case c.decisive() && other.decisive():
		return UNSET
	case c.decisive():
		return c
	case other.decisive():
		return other
	default:
		return UNSET
	}
}

// RequestContext holds the values statement conditions can Load, addressed
// with dot notation such as "requester.id" or "this.author_id".
type RequestContext struct {
	Requester map[string]any `json:"requester"`
	This      map[string]any `json:"this"`
	Params    map[string]any `json:"params"`
}

type PolicyDocument struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Versions    map[string]Policy `json:"versions" yaml:"versions"`
}

// Policy maps actions to statements, and to the answer used when none of
// them concludes.
type Policy struct {
	Statements map[string][]Stmt `json:"statements" yaml:"statements"`
	Defaults   map[string]bool   `json:"defaults" yaml:"defaults"`
}

type Stmt struct {
	Emit      Conclusion `json:"emit" yaml:"emit"`
	Condition Expr       `json:"condition" yaml:"condition"`
}

type Expr struct {
	Operator string `json:"op" yaml:"op"`
	Args     []Expr `json:"args" yaml:"args"`
	Const    any    `json:"const,omitempty" yaml:"const,omitempty"`
}

// EvalResult is the evaluation trace of one Expr.
type EvalResult struct {
	Operator string       `json:"op"`
	Args     []EvalResult `json:"args,omitempty"`
	Result   any          `json:"result"`
	Error    string       `json:"error,omitempty"`
}
