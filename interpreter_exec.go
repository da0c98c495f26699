// interpreter_exec.go: statement execution and call plumbing
//
// Every statement executes to a three-way outcome: a normal value, an
// early-return unwind carrying a value, or a fault. The outcome is an
// explicit result value threaded through every recursive call; nothing here
// panics. The function-call boundary is the single place an unwind is
// converted back into a plain value.
//
// Scope discipline: a block pushes a scope and pops it on every exit path,
// including unwind and fault, via defer. The same holds for the parameter
// scope of a call and the in-function flag.
package remylang

type execStatus int

const (
	execOK execStatus = iota
	execReturn
	execFault
)

type execResult struct {
	status execStatus
	value  Value
	err    *RuntimeError
}

func okResult(v Value) execResult     { return execResult{status: execOK, value: v} }
func returnResult(v Value) execResult { return execResult{status: execReturn, value: v} }

func faultResult(e *RuntimeError) execResult { return execResult{status: execFault, err: e} }

func (i *Interpreter) execStmt(stmt Stmt) execResult {
	if i.depth >= maxCallDepth {
		return faultResult(errStackOverflow())
	}
	i.depth++
	defer func() { i.depth-- }()

	switch s := stmt.(type) {
	case *ExprStmt:
		v, err := i.evalExpr(s.Expr)
		if err != nil {
			return faultResult(err)
		}
		return okResult(v)

	case *LetStmt:
		v, err := i.evalExpr(s.Value)
		if err != nil {
			return faultResult(err)
		}
		i.env.Define(s.Name, v)
		return okResult(Void)

	case *AssignStmt:
		v, err := i.evalExpr(s.Value)
		if err != nil {
			return faultResult(err)
		}
		if err := i.env.Set(s.Name, v); err != nil {
			return faultResult(err)
		}
		return okResult(Void)

	case *BlockStmt:
		i.env.PushScope()
		defer i.env.PopScope()

		result := okResult(Void)
		for _, inner := range s.Stmts {
			result = i.execStmt(inner)
			if result.status != execOK {
				break
			}
		}
		return result

	case *IfStmt:
		cond, err := i.evalExpr(s.Cond)
		if err != nil {
			return faultResult(err)
		}
		if cond.IsTruthy() {
			return i.execStmt(s.Then)
		}
		if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return okResult(Void)

	case *ReturnStmt:
		if !i.inFunction {
			return faultResult(errReturnOutsideFunction())
		}
		v := Void
		if s.Value != nil {
			var err *RuntimeError
			v, err = i.evalExpr(s.Value)
			if err != nil {
				return faultResult(err)
			}
		}
		return returnResult(v)

	case *FuncDecl:
		params := make([]string, 0, len(s.Params))
		for _, p := range s.Params {
			params = append(params, p.Name)
		}
		fn := &FunctionValue{Name: s.Name, Params: params, Body: s.Body}
		i.env.Define(s.Name, Value{Tag: VTFunction, Data: fn})
		return okResult(Void)
	}
	return okResult(Void)
}

// evalCall evaluates all arguments left-to-right, then resolves the callee.
// Built-in names dispatch before user bindings are consulted; the language
// only supports calling by name.
func (i *Interpreter) evalCall(call *CallExpr) (Value, *RuntimeError) {
	args := make([]Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := i.evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}

	name, ok := call.Callee.(*VarRef)
	if !ok {
		return Value{}, rtErrf(RTCustom, "Can only call functions by name")
	}

	if IsBuiltin(name.Name) {
		return callBuiltin(name.Name, args, i.Out)
	}

	callee, err := i.env.Get(name.Name)
	if err != nil {
		return Value{}, err
	}
	fn, ok := callee.Data.(*FunctionValue)
	if callee.Tag != VTFunction || !ok {
		return Value{}, errNotCallable(callee.TypeName())
	}

	if len(fn.Params) != len(args) {
		return Value{}, errArgumentCount(fn.Name, len(fn.Params), len(args))
	}

	i.env.PushScope()
	wasInFunction := i.inFunction
	i.inFunction = true
	defer func() {
		i.inFunction = wasInFunction
		i.env.PopScope()
	}()

	for idx, param := range fn.Params {
		i.env.Define(param, args[idx])
	}

	// The unwind from a return statement is caught here, and only here.
	res := i.execStmt(fn.Body)
	switch res.status {
	case execFault:
		return Value{}, res.err
	case execReturn:
		return res.value, nil
	default:
		return res.value, nil
	}
}
