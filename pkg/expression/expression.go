package expression

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// Env is the environment a candidate filter expression is evaluated against.
type Env struct {
	Path  string
	Name  string
	Dir   string
	Size  int64
	Links uint64
}

type CompiledExpression struct {
	Text    string
	Program *vm.Program
}

// Compile compiles a candidate filter expression. The expression must
// evaluate to a boolean.
func Compile(text string) (*CompiledExpression, error) {
	program, err := expr.Compile(text, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, errors.Wrapf(err, "compile expression: %q", text)
	}

	return &CompiledExpression{
		Text:    text,
		Program: program,
	}, nil
}

// Match evaluates the expression against one candidate.
func (e *CompiledExpression) Match(env *Env) (bool, error) {
	result, err := expr.Run(e.Program, env)
	if err != nil {
		return false, errors.Wrap(err, "check expression")
	}

	match, ok := result.(bool)
	if !ok {
		return false, errors.Errorf("expression result is not a boolean: %T", result)
	}

	return match, nil
}
