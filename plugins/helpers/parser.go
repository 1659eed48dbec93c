package helpers

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/savaki/jq"
)

// IExpressionParser describes payload expressions compiler.
// Expressions support jq, num, str and fmt functions.
type IExpressionParser interface {
	Compile(expression string) (IExpression, error)
}

// IExpression describes single pre-compiled expression.
type IExpression interface {
	Evaluate(params map[string]interface{}) (interface{}, error)
}

// Parser implementation.
type parser struct {
	functions map[string]govaluate.ExpressionFunction
}

// Compiled expression.
type expression struct {
	evaluable *govaluate.EvaluableExpression
}

// NewParser constructs a new expression parser.
func NewParser() IExpressionParser {
	return &parser{
		functions: map[string]govaluate.ExpressionFunction{
			"jq":  jqParse,
			"num": numConvert,
			"str": strConvert,
			"fmt": format,
		},
	}
}

// Compile tries to pre-compile expression.
func (p *parser) Compile(exp string) (IExpression, error) {
	e, err := govaluate.NewEvaluableExpressionWithFunctions(exp, p.functions)
	if err != nil {
		return nil, err
	}

	return &expression{evaluable: e}, nil
}

// Evaluate runs expression against params.
func (e *expression) Evaluate(params map[string]interface{}) (interface{}, error) {
	if nil == params {
		params = make(map[string]interface{})
	}

	return e.evaluable.Evaluate(params)
}

// If only one param is supplied, returns un-marshaled json object.
// If two params are supplied, jq query is applied to the first one.
func jqParse(arguments ...interface{}) (interface{}, error) {
	if 0 == len(arguments) || len(arguments) > 2 {
		return nil, &ErrArgumentsMismatch{Function: "jq", Count: len(arguments)}
	}

	arg1, ok := arguments[0].(string)
	if !ok {
		return nil, &ErrWrongArgument{Function: "jq", Message: "first argument is not a string"}
	}

	if 1 == len(arguments) {
		data := make(map[string]interface{})
		err := json.Unmarshal([]byte(arg1), &data)
		if err != nil {
			return nil, err
		}

		return data, nil
	}

	arg2, ok := arguments[1].(string)
	if !ok {
		return nil, &ErrWrongArgument{Function: "jq", Message: "second argument is not a string"}
	}

	// Malformed queries are reported by Apply.
	op, _ := jq.Parse(arg2)
	val, err := op.Apply([]byte(arg1))
	if err != nil {
		return nil, &ErrWrongArgument{Function: "jq", Message: err.Error()}
	}

	return strings.Trim(string(val), "\""), nil
}

// Converts input param into float64.
func numConvert(arguments ...interface{}) (interface{}, error) {
	if 1 != len(arguments) {
		return nil, &ErrArgumentsMismatch{Function: "num", Count: len(arguments)}
	}

	switch v := arguments[0].(type) {
	case string:
		return strconv.ParseFloat(v, 64)
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	}

	return nil, &ErrWrongArgument{Function: "num", Message: fmt.Sprintf("%T is not a number", arguments[0])}
}

// Converts input param into string.
func strConvert(arguments ...interface{}) (interface{}, error) {
	if 1 != len(arguments) {
		return nil, &ErrArgumentsMismatch{Function: "str", Count: len(arguments)}
	}

	a, ok := arguments[0].(string)
	if !ok {
		return fmt.Sprintf("%v", arguments[0]), nil
	}

	return a, nil
}

// Uses fmt.Sprintf with the first argument as a format.
func format(arguments ...interface{}) (interface{}, error) {
	if 0 == len(arguments) {
		return nil, &ErrArgumentsMismatch{Function: "fmt", Count: 0}
	}

	a, _ := strConvert(arguments[0])
	if 1 == len(arguments) {
		return a, nil
	}

	return fmt.Sprintf(a.(string), arguments[1:]...), nil
}
