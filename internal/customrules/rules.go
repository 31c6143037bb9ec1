// Package customrules compiles operator-defined strength and concern rules
// written as CEL expressions over an analyzer's feature map.
//
// An expression sees one variable, features, holding the raw feature map:
//
//	features.word_spacing > 60.0 && features.letter_spacing > 60.0
//
// Evaluation errors, such as a missing key, make the rule not apply.
package customrules

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/abhisek/lddscreen/internal/assessment"
)

// Kind selects which table a rule extends.
type Kind string

const (
	KindStrength Kind = "strength"
	KindConcern  Kind = "concern"
)

// costLimit bounds the evaluation cost of a single expression.
const costLimit = 100000

// Definition is a rule as written in configuration.
type Definition struct {
	Modality assessment.Modality `yaml:"modality" json:"modality"`
	Kind     Kind                `yaml:"kind" json:"kind"`
	When     string              `yaml:"when" json:"when"`
	Message  string              `yaml:"message" json:"message"`
}

// Compiler turns definitions into assessment rules. A Compiler and the
// predicates it returns are safe for concurrent use.
type Compiler struct {
	env *cel.Env
}

// NewCompiler creates a Compiler with the features variable declared.
func NewCompiler() (*Compiler, error) {
	env, err := cel.NewEnv(
		cel.Variable("features", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}
	return &Compiler{env: env}, nil
}

// Predicate compiles a single expression.
func (c *Compiler) Predicate(expr string) (assessment.Predicate, error) {
	ast, issues := c.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, issues.Err())
	}
	if t := ast.OutputType().String(); t != "bool" && t != "dyn" {
		return nil, fmt.Errorf("expression %q has type %s, want bool", expr, t)
	}

	prog, err := c.env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("program for %q: %w", expr, err)
	}

	return func(f assessment.Features) bool {
		if f == nil {
			f = assessment.Features{}
		}
		out, _, err := prog.Eval(map[string]any{"features": map[string]any(f)})
		if err != nil {
			return false
		}
		matched, ok := out.Value().(bool)
		return ok && matched
	}, nil
}

// Compile builds a Ruleset from definitions, keeping their order within
// each table.
func (c *Compiler) Compile(defs []Definition) (assessment.Ruleset, error) {
	var rs assessment.Ruleset
	for i, d := range defs {
		if d.Message == "" {
			return assessment.Ruleset{}, fmt.Errorf("rule %d: message is required", i)
		}
		pred, err := c.Predicate(d.When)
		if err != nil {
			return assessment.Ruleset{}, fmt.Errorf("rule %d: %w", i, err)
		}
		rule := assessment.Rule{Message: d.Message, Holds: pred}

		switch {
		case d.Modality == assessment.ModalityHandwriting && d.Kind == KindStrength:
			rs.HandwritingStrengths = append(rs.HandwritingStrengths, rule)
		case d.Modality == assessment.ModalityHandwriting && d.Kind == KindConcern:
			rs.HandwritingConcerns = append(rs.HandwritingConcerns, rule)
		case d.Modality == assessment.ModalitySpeech && d.Kind == KindStrength:
			rs.SpeechStrengths = append(rs.SpeechStrengths, rule)
		case d.Modality == assessment.ModalitySpeech && d.Kind == KindConcern:
			rs.SpeechConcerns = append(rs.SpeechConcerns, rule)
		default:
			return assessment.Ruleset{}, fmt.Errorf("rule %d: unknown modality/kind %q/%q", i, d.Modality, d.Kind)
		}
	}
	return rs, nil
}

// Ruleset compiles defs and appends them to the built-in tables.
func Ruleset(defs []Definition) (assessment.Ruleset, error) {
	if len(defs) == 0 {
		return assessment.DefaultRuleset(), nil
	}
	c, err := NewCompiler()
	if err != nil {
		return assessment.Ruleset{}, err
	}
	extra, err := c.Compile(defs)
	if err != nil {
		return assessment.Ruleset{}, err
	}
	return assessment.DefaultRuleset().With(extra), nil
}
