// interpreter_ops.go: expression evaluation and operator semantics
//
// Operators are total over the value pairing, not the static type: the
// runtime re-checks operands on every application, so untyped execution
// still faults cleanly. `+` adds Numbers and concatenates Strings; the rest
// of the arithmetic is Number-only. Division and modulo fault on a zero
// divisor with distinct fault kinds. `**` is integer exponentiation and
// rejects negative exponents. Equality is structural over any pairing;
// ordering is Number-only. `&&`/`||` coerce both eagerly-evaluated operands
// through truthiness.
package remylang

func (i *Interpreter) evalExpr(expr Expr) (Value, *RuntimeError) {
	if i.depth >= maxCallDepth {
		return Value{}, errStackOverflow()
	}
	i.depth++
	defer func() { i.depth-- }()

	switch e := expr.(type) {
	case *NumberLit:
		return Number(e.Value), nil
	case *StringLit:
		return Str(e.Value), nil
	case *CharLit:
		return Char(e.Value), nil
	case *BoolLit:
		return Bool(e.Value), nil

	case *VarRef:
		return i.env.Get(e.Name)

	case *BinaryExpr:
		left, err := i.evalExpr(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := i.evalExpr(e.Right)
		if err != nil {
			return Value{}, err
		}
		return evalBinaryOp(left, e.Op, right)

	case *UnaryExpr:
		operand, err := i.evalExpr(e.Right)
		if err != nil {
			return Value{}, err
		}
		return evalUnaryOp(e.Op, operand)

	case *CallExpr:
		return i.evalCall(e)

	case *ArrayLit:
		elems := make([]Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			v, err := i.evalExpr(el)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Arr(elems), nil

	case *IndexExpr:
		return i.evalIndex(e)
	}
	return Value{}, rtErrf(RTCustom, "unsupported expression")
}

// evalIndex requires an Array base and a Number index within [0, length).
// The element comes back as a structural copy.
func (i *Interpreter) evalIndex(e *IndexExpr) (Value, *RuntimeError) {
	base, err := i.evalExpr(e.Array)
	if err != nil {
		return Value{}, err
	}
	index, err := i.evalExpr(e.Index)
	if err != nil {
		return Value{}, err
	}

	if base.Tag != VTArray {
		return Value{}, errNotIndexable(base.TypeName())
	}
	if index.Tag != VTNumber {
		return Value{}, errTypeMismatch("array indexing", "Int", index.TypeName())
	}

	arr := base.Data.([]Value)
	idx := index.Data.(int64)
	if idx < 0 || idx >= int64(len(arr)) {
		return Value{}, errIndexOutOfBounds(idx, len(arr))
	}
	return copyValue(arr[idx]), nil
}

func evalBinaryOp(left Value, op BinaryOp, right Value) (Value, *RuntimeError) {
	switch op {
	case OpAdd:
		if left.Tag == VTNumber && right.Tag == VTNumber {
			return Number(left.Data.(int64) + right.Data.(int64)), nil
		}
		if left.Tag == VTString && right.Tag == VTString {
			return Str(left.Data.(string) + right.Data.(string)), nil
		}
		return Value{}, errInvalidOperation(op.opName(), left.TypeName(), right.TypeName())

	case OpSub, OpMul:
		l, r, err := bothNumbers(left, op, right)
		if err != nil {
			return Value{}, err
		}
		if op == OpSub {
			return Number(l - r), nil
		}
		return Number(l * r), nil

	case OpDiv:
		l, r, err := bothNumbers(left, op, right)
		if err != nil {
			return Value{}, err
		}
		if r == 0 {
			return Value{}, rtErrf(RTDivisionByZero, "Division by zero")
		}
		return Number(l / r), nil

	case OpMod:
		l, r, err := bothNumbers(left, op, right)
		if err != nil {
			return Value{}, err
		}
		if r == 0 {
			return Value{}, rtErrf(RTModuloByZero, "Modulo by zero")
		}
		return Number(l % r), nil

	case OpPow:
		l, r, err := bothNumbers(left, op, right)
		if err != nil {
			return Value{}, err
		}
		if r < 0 {
			return Value{}, rtErrf(RTCustom, "Negative exponents not supported for integers")
		}
		return Number(ipow(l, r)), nil

	case OpEqual:
		return Bool(left.Equal(right)), nil
	case OpNotEqual:
		return Bool(!left.Equal(right)), nil

	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual:
		l, r, err := bothNumbers(left, op, right)
		if err != nil {
			return Value{}, err
		}
		switch op {
		case OpLess:
			return Bool(l < r), nil
		case OpGreater:
			return Bool(l > r), nil
		case OpLessEqual:
			return Bool(l <= r), nil
		default:
			return Bool(l >= r), nil
		}

	case OpAnd:
		return Bool(left.IsTruthy() && right.IsTruthy()), nil
	case OpOr:
		return Bool(left.IsTruthy() || right.IsTruthy()), nil
	}
	return Value{}, errInvalidOperation(op.opName(), left.TypeName(), right.TypeName())
}

func evalUnaryOp(op UnaryOp, operand Value) (Value, *RuntimeError) {
	switch op {
	case OpNeg:
		if operand.Tag != VTNumber {
			return Value{}, errTypeMismatch("unary minus", "Int", operand.TypeName())
		}
		return Number(-operand.Data.(int64)), nil
	case OpNot:
		return Bool(!operand.IsTruthy()), nil
	}
	return Value{}, rtErrf(RTCustom, "unsupported unary operator")
}

func bothNumbers(left Value, op BinaryOp, right Value) (int64, int64, *RuntimeError) {
	if left.Tag != VTNumber || right.Tag != VTNumber {
		return 0, 0, errInvalidOperation(op.opName(), left.TypeName(), right.TypeName())
	}
	return left.Data.(int64), right.Data.(int64), nil
}

// ipow is integer exponentiation by squaring; exp must be non-negative.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
