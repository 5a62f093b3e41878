// Package filterexpr reads list filters written as a CEL conjunction of
// field comparisons against literals.
package filterexpr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
	"github.com/samber/lo"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Msg is any request carrying a filter string.
type Msg interface {
	GetFilter() string
}

type Kind int

const (
	Text Kind = iota
	Time
)

type Op string

const (
	OpEQ  Op = "=="
	OpGTE Op = ">="
	OpLTE Op = "<="
	OpSW  Op = "startsWith"
	OpIN  Op = "in"
)

// Field declares the operand kind of an identifier and the operators it accepts.
type Field struct {
	Kind Kind
	Ops  []Op
}

// Schema lists the identifiers a filter may mention.
type Schema map[string]Field

// Condition is one conjunct of a filter. Text carries the operand of == and
// startsWith, List the operand of in, At the timestamp operand.
type Condition struct {
	Field string
	Op    Op
	Text  string
	List  []string
	At    time.Time

	operand operand
}

type operand int

const (
	textOperand operand = iota + 1
	listOperand
	timeOperand
)

// Texts returns the string operands of the condition.
func (c Condition) Texts() []string {
	if c.Op == OpIN {
		return c.List
	}
	return []string{c.Text}
}

// Parse reads the filter of msg into conditions checked against schema. An
// empty filter yields no conditions.
func Parse(msg Msg, schema Schema) ([]Condition, error) {
	filter := strings.TrimSpace(msg.GetFilter())
	if filter == "" {
		return nil, nil
	}

	env, err := schema.env()
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	ast, iss := env.Parse(filter)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("filter: %w", iss.Err())
	}
	parsed, err := cel.AstToParsedExpr(ast)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	var conds []Condition
	if err := collect(parsed.GetExpr(), schema, &conds); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return conds, nil
}

func (s Schema) env() (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, len(s))
	for name, f := range s {
		typ := cel.StringType
		if f.Kind == Time {
			typ = cel.TimestampType
		}
		opts = append(opts, cel.Variable(name, typ))
	}
	return cel.NewEnv(opts...)
}

// collect flattens nested && calls into conds.
func collect(e *exprpb.Expr, schema Schema, conds *[]Condition) error {
	call := e.GetCallExpr()
	if call == nil {
		return errors.New("expected a comparison")
	}
	switch call.GetFunction() {
	case "_&&_":
		for _, arg := range call.GetArgs() {
			if err := collect(arg, schema, conds); err != nil {
				return err
			}
		}
		return nil
	case "_||_", "!_":
		return fmt.Errorf("operator %q is not supported, join conditions with &&", call.GetFunction())
	}

	c, err := condition(call)
	if err != nil {
		return err
	}
	if err := schema.check(c); err != nil {
		return err
	}
	*conds = append(*conds, c)
	return nil
}

func condition(call *exprpb.Expr_Call) (Condition, error) {
	var op Op
	switch call.GetFunction() {
	case "_==_":
		op = OpEQ
	case "_>=_":
		op = OpGTE
	case "_<=_":
		op = OpLTE
	case "@in":
		op = OpIN
	case "startsWith":
		op = OpSW
	default:
		return Condition{}, fmt.Errorf("function %q is not supported", call.GetFunction())
	}

	args := call.GetArgs()
	if op == OpSW {
		if call.GetTarget() == nil || len(args) != 1 {
			return Condition{}, errors.New("startsWith takes a receiver and one argument")
		}
		args = []*exprpb.Expr{call.GetTarget(), args[0]}
	}
	if len(args) != 2 {
		return Condition{}, fmt.Errorf("operator %q takes two operands", op)
	}

	ident := args[0].GetIdentExpr()
	if ident == nil {
		return Condition{}, errors.New("left-hand side must be a field name")
	}
	c := Condition{Field: ident.GetName(), Op: op}
	if err := c.read(args[1]); err != nil {
		return Condition{}, err
	}
	return c, nil
}

func (c *Condition) read(e *exprpb.Expr) error {
	switch {
	case e.GetConstExpr() != nil:
		s, ok := stringConst(e)
		if !ok {
			return fmt.Errorf("field %q expects a string literal", c.Field)
		}
		c.Text, c.operand = s, textOperand
	case e.GetListExpr() != nil:
		for i, elem := range e.GetListExpr().GetElements() {
			s, ok := stringConst(elem)
			if !ok {
				return fmt.Errorf("list element %d for field %q must be a string literal", i, c.Field)
			}
			c.List = append(c.List, s)
		}
		c.operand = listOperand
	case e.GetCallExpr().GetFunction() == "timestamp":
		args := e.GetCallExpr().GetArgs()
		if len(args) != 1 {
			return errors.New("timestamp() takes one argument")
		}
		s, ok := stringConst(args[0])
		if !ok {
			return errors.New("timestamp() expects a string literal")
		}
		at, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		c.At, c.operand = at, timeOperand
	default:
		return fmt.Errorf("right-hand side for field %q must be a literal", c.Field)
	}
	return nil
}

func stringConst(e *exprpb.Expr) (string, bool) {
	v, ok := e.GetConstExpr().GetConstantKind().(*exprpb.Constant_StringValue)
	if !ok {
		return "", false
	}
	return v.StringValue, true
}

func (s Schema) check(c Condition) error {
	f, ok := s[c.Field]
	if !ok {
		return fmt.Errorf("field %q is not allowed", c.Field)
	}
	if !lo.Contains(f.Ops, c.Op) {
		return fmt.Errorf("operator %q is not allowed for field %q", c.Op, c.Field)
	}

	want := textOperand
	switch {
	case f.Kind == Time:
		want = timeOperand
	case c.Op == OpIN:
		want = listOperand
	}
	if c.operand != want {
		switch want {
		case timeOperand:
			return fmt.Errorf("field %q expects timestamp()", c.Field)
		case listOperand:
			return fmt.Errorf("operator in for field %q expects a list of strings", c.Field)
		default:
			return fmt.Errorf("field %q expects a string literal", c.Field)
		}
	}
	if c.operand == listOperand && len(c.List) == 0 {
		return fmt.Errorf("list for field %q must not be empty", c.Field)
	}
	return nil
}
