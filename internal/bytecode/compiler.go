package bytecode

import (
	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/minidyn/minidyn/internal/value"
)

// compiler turns one function body into a Chunk. It bails (ok=false) the
// moment it meets a form outside the restricted subset named in the
// language reference; the caller then falls back to the tree-walking
// evaluator for that function, so bailing is always safe.
type compiler struct {
	chunk      *Chunk
	locals     map[string]int32
	nextSlot   int32
	paramNames []string
	loops      []loopCtx
	ok         bool
}

type loopCtx struct {
	continueJumps []int
	breakJumps    []int
}

// Compile attempts to compile fn's body. ok is false when fn uses a
// default/rest parameter, a destructured parameter, or any statement or
// expression form the compiler doesn't support.
func Compile(fn *ast.FunctionLiteral) (chunk *Chunk, paramNames []string, ok bool) {
	for _, p := range fn.Params {
		if p.Rest || p.Default != nil {
			return nil, nil, false
		}
		if _, isIdent := p.Pattern.(*ast.IdentifierPattern); !isIdent {
			return nil, nil, false
		}
	}

	c := &compiler{chunk: &Chunk{}, locals: map[string]int32{}, ok: true}
	for _, p := range fn.Params {
		name := p.Pattern.(*ast.IdentifierPattern).Name
		c.declareLocal(name)
		c.paramNames = append(c.paramNames, name)
	}

	if fn.ExprBody {
		es, isExpr := fn.Body.(*ast.ExpressionStatement)
		if !isExpr {
			return nil, nil, false
		}
		c.compileExpr(es.Expr)
		c.emit(OpReturn, 0, es.Pos().Line)
	} else {
		block, isBlock := fn.Body.(*ast.BlockStatement)
		if !isBlock {
			return nil, nil, false
		}
		c.compileBlock(block)
		c.emit(OpLoadNil, 0, 0)
		c.emit(OpReturn, 0, 0)
	}

	if !c.ok {
		return nil, nil, false
	}
	c.chunk.peephole()
	c.chunk.NumLocals = int(c.nextSlot)
	return c.chunk, c.paramNames, true
}

func (c *compiler) fail() { c.ok = false }

func (c *compiler) emit(op OpCode, a int32, line int) int {
	if !c.ok {
		return -1
	}
	return c.chunk.emit(op, a, line)
}

func (c *compiler) patch(at int) {
	if c.ok {
		c.chunk.patchJump(at)
	}
}

func (c *compiler) declareLocal(name string) int32 {
	slot := c.nextSlot
	c.nextSlot++
	c.locals[name] = slot
	return slot
}

func (c *compiler) constString(s string) int32 {
	return c.chunk.addConstant(value.String(s))
}

// --- statements ---

func (c *compiler) compileBlock(b *ast.BlockStatement) {
	for _, st := range b.Statements {
		if !c.ok {
			return
		}
		c.compileStmt(st)
	}
}

func (c *compiler) compileStmt(st ast.Statement) {
	if !c.ok {
		return
	}
	switch s := st.(type) {
	case *ast.ExpressionStatement:
		c.compileExpr(s.Expr)
		c.emit(OpPop, 0, s.Pos().Line)
	case *ast.BlockStatement:
		c.compileBlock(s)
	case *ast.DeclarationStatement:
		c.compileDeclaration(s)
	case *ast.IfStatement:
		c.compileIf(s)
	case *ast.WhileStatement:
		c.compileWhile(s)
	case *ast.ForStatement:
		c.compileFor(s)
	case *ast.BreakStatement:
		if len(c.loops) == 0 {
			c.fail()
			return
		}
		top := len(c.loops) - 1
		j := c.emit(OpJump, 0, s.Pos().Line)
		c.loops[top].breakJumps = append(c.loops[top].breakJumps, j)
	case *ast.ContinueStatement:
		if len(c.loops) == 0 {
			c.fail()
			return
		}
		top := len(c.loops) - 1
		j := c.emit(OpJump, 0, s.Pos().Line)
		c.loops[top].continueJumps = append(c.loops[top].continueJumps, j)
	case *ast.ReturnStatement:
		if s.Value == nil {
			c.emit(OpLoadNil, 0, s.Pos().Line)
		} else {
			if containsCall(s.Value) {
				c.fail()
				return
			}
			c.compileExpr(s.Value)
		}
		c.emit(OpReturn, 0, s.Pos().Line)
	default:
		c.fail()
	}
}

func (c *compiler) compileDeclaration(s *ast.DeclarationStatement) {
	if s.Kind == token.CONST {
		// Local slots have no const-reassignment check of their own; leave
		// any function declaring a const to the tree-walker's environment,
		// which enforces it.
		c.fail()
		return
	}
	for _, d := range s.Declarators {
		ident, isIdent := d.Pattern.(*ast.IdentifierPattern)
		if !isIdent {
			c.fail()
			return
		}
		if d.Value != nil {
			c.compileExpr(d.Value)
		} else {
			c.emit(OpLoadNil, 0, s.Pos().Line)
		}
		slot := c.declareLocal(ident.Name)
		c.emit(OpStoreLocal, slot, s.Pos().Line)
		c.emit(OpPop, 0, s.Pos().Line)
	}
}

func (c *compiler) compileIf(s *ast.IfStatement) {
	c.compileExpr(s.Cond)
	jf := c.emit(OpJumpIfFalse, 0, s.Pos().Line)
	c.compileStmt(s.Then)
	if s.Else != nil {
		j := c.emit(OpJump, 0, s.Pos().Line)
		c.patch(jf)
		c.compileStmt(s.Else)
		c.patch(j)
	} else {
		c.patch(jf)
	}
}

func (c *compiler) compileWhile(s *ast.WhileStatement) {
	start := c.chunk.here()
	c.compileExpr(s.Cond)
	jf := c.emit(OpJumpIfFalse, 0, s.Pos().Line)
	c.loops = append(c.loops, loopCtx{})
	c.compileStmt(s.Body)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]
	for _, j := range loop.continueJumps {
		c.patch(j)
	}
	c.emit(OpJump, int32(start), s.Pos().Line)
	c.patch(jf)
	for _, j := range loop.breakJumps {
		c.patch(j)
	}
}

func (c *compiler) compileFor(s *ast.ForStatement) {
	if s.Init != nil {
		c.compileStmt(s.Init)
	}
	condPos := c.chunk.here()
	var jf int
	hasCond := s.Cond != nil
	if hasCond {
		c.compileExpr(s.Cond)
		jf = c.emit(OpJumpIfFalse, 0, s.Pos().Line)
	}
	c.loops = append(c.loops, loopCtx{})
	c.compileStmt(s.Body)
	loop := c.loops[len(c.loops)-1]
	c.loops = c.loops[:len(c.loops)-1]

	for _, j := range loop.continueJumps {
		c.patch(j)
	}
	if s.Post != nil {
		c.compileStmt(s.Post)
	}
	c.emit(OpJump, int32(condPos), s.Pos().Line)
	if hasCond {
		c.patch(jf)
	}
	for _, j := range loop.breakJumps {
		c.patch(j)
	}
}

// containsCall reports whether expr contains a call anywhere within it;
// a return expression that does is refused so that tail calls always run
// through the tree-walker's self-tail-call trampoline.
func containsCall(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.CallExpression:
		return true
	case *ast.BinaryExpression:
		return containsCall(e.Left) || containsCall(e.Right)
	case *ast.UnaryExpression:
		return containsCall(e.Right)
	case *ast.TernaryExpression:
		return containsCall(e.Cond) || containsCall(e.Then) || containsCall(e.Else)
	case *ast.AssignmentExpression:
		return containsCall(e.Target) || containsCall(e.Value)
	case *ast.MemberExpression:
		prop := false
		if e.Computed {
			prop = containsCall(e.Property)
		}
		return containsCall(e.Object) || prop
	default:
		return false
	}
}

// --- expressions ---

func (c *compiler) compileExpr(expr ast.Expression) {
	if !c.ok {
		return
	}
	pos := expr.Pos()
	switch e := expr.(type) {
	case *ast.NilLiteral:
		c.emit(OpLoadNil, 0, pos.Line)
	case *ast.BoolLiteral:
		if e.Value {
			c.emit(OpLoadTrue, 0, pos.Line)
		} else {
			c.emit(OpLoadFalse, 0, pos.Line)
		}
	case *ast.IntLiteral:
		idx := c.chunk.addConstant(value.Int(e.Value))
		c.emit(OpLoadConst, idx, pos.Line)
	case *ast.FloatLiteral:
		idx := c.chunk.addConstant(value.Float(e.Value))
		c.emit(OpLoadConst, idx, pos.Line)
	case *ast.StringLiteral:
		idx := c.chunk.addConstant(value.String(e.Value))
		c.emit(OpLoadConst, idx, pos.Line)
	case *ast.Identifier:
		c.compileIdentLoad(e.Name, pos.Line)
	case *ast.UnaryExpression:
		c.compileExpr(e.Right)
		switch e.Operator {
		case "-":
			c.emit(OpNeg, 0, pos.Line)
		case "!":
			c.emit(OpNot, 0, pos.Line)
		default:
			c.fail()
		}
	case *ast.BinaryExpression:
		c.compileBinary(e)
	case *ast.AssignmentExpression:
		c.compileAssignment(e)
	case *ast.MemberExpression:
		c.compileMemberRead(e)
	case *ast.CallExpression:
		c.compileCall(e)
	default:
		c.fail()
	}
}

func (c *compiler) compileIdentLoad(name string, line int) {
	if slot, ok := c.locals[name]; ok {
		c.emit(OpLoadLocal, slot, line)
		return
	}
	c.emit(OpLoadName, c.constString(name), line)
}

func (c *compiler) compileBinary(e *ast.BinaryExpression) {
	line := e.Pos().Line
	switch e.Operator {
	case "&&":
		c.compileExpr(e.Left)
		c.emit(OpDup, 0, line)
		jf := c.emit(OpJumpIfFalse, 0, line)
		c.emit(OpPop, 0, line)
		c.compileExpr(e.Right)
		end := c.emit(OpJump, 0, line)
		c.patch(jf)
		c.patch(end)
		return
	case "||":
		c.compileExpr(e.Left)
		c.emit(OpDup, 0, line)
		jt := c.emit(OpJumpIfTruthy, 0, line)
		c.emit(OpPop, 0, line)
		c.compileExpr(e.Right)
		end := c.emit(OpJump, 0, line)
		c.patch(jt)
		c.patch(end)
		return
	case "??":
		c.compileExpr(e.Left)
		c.emit(OpDup, 0, line)
		jn := c.emit(OpJumpIfNotNil, 0, line)
		c.emit(OpPop, 0, line)
		c.compileExpr(e.Right)
		end := c.emit(OpJump, 0, line)
		c.patch(jn)
		c.patch(end)
		return
	}

	c.compileExpr(e.Left)
	c.compileExpr(e.Right)
	op, ok := binOpcode(e.Operator)
	if !ok {
		c.fail()
		return
	}
	c.emit(op, 0, line)
}

func binOpcode(op string) (OpCode, bool) {
	switch op {
	case "+":
		return OpAdd, true
	case "-":
		return OpSub, true
	case "*":
		return OpMul, true
	case "/":
		return OpDiv, true
	case "%":
		return OpMod, true
	case "==":
		return OpEq, true
	case "!=":
		return OpNe, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLe, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGe, true
	default:
		return 0, false
	}
}

// compileMemberRead compiles a `.prop`/`[idx]` read, short-circuiting to
// nil on an optional (`?.`) nil base without evaluating anything further.
func (c *compiler) compileMemberRead(e *ast.MemberExpression) {
	line := e.Pos().Line
	c.compileExpr(e.Object)
	var endJump int
	if e.Optional {
		c.emit(OpDup, 0, line)
		notNil := c.emit(OpJumpIfNotNil, 0, line)
		endJump = c.emit(OpJump, 0, line)
		c.patch(notNil)
		c.compileAccess(e, line)
		c.patch(endJump)
		return
	}
	c.compileAccess(e, line)
}

func (c *compiler) compileAccess(e *ast.MemberExpression, line int) {
	if e.Computed {
		c.compileExpr(e.Property)
		c.emit(OpGetIndex, 0, line)
		return
	}
	ident, ok := e.Property.(*ast.Identifier)
	if !ok {
		c.fail()
		return
	}
	c.emit(OpGetProp, c.constString(ident.Name), line)
}

func (c *compiler) compileCall(e *ast.CallExpression) {
	line := e.Pos().Line
	for _, a := range e.Args {
		if a.Name != "" {
			c.fail()
			return
		}
	}

	member, isMethod := e.Callee.(*ast.MemberExpression)
	if !isMethod {
		c.compileExpr(e.Callee)
		for _, a := range e.Args {
			c.compileExpr(a.Value)
		}
		c.emit(OpCall, int32(len(e.Args)), line)
		return
	}
	if member.Optional {
		// Optional method-call short circuit is left to the tree-walker.
		c.fail()
		return
	}

	c.compileExpr(member.Object)
	c.emit(OpDup, 0, line)
	c.compileAccess(member, line)
	for _, a := range e.Args {
		c.compileExpr(a.Value)
	}
	c.emit(OpMethodCall, int32(len(e.Args)), line)
}

// compileAssignment compiles `=`, `??=`, and the compound arithmetic
// operators over an identifier or member target, using Dup/DupTop2 so
// any object/index sub-expression is evaluated exactly once.
func (c *compiler) compileAssignment(e *ast.AssignmentExpression) {
	line := e.Pos().Line

	switch t := e.Target.(type) {
	case *ast.Identifier:
		c.compileIdentAssign(t.Name, e.Operator, e.Value, line)
	case *ast.MemberExpression:
		if t.Optional {
			// Optional-chain assignment short circuit is left to the tree-walker.
			c.fail()
			return
		}
		c.compileMemberAssign(t, e.Operator, e.Value, line)
	default:
		c.fail()
	}
}

func (c *compiler) compileIdentAssign(name, operator string, rhs ast.Expression, line int) {
	store := func() {
		if slot, ok := c.locals[name]; ok {
			c.emit(OpStoreLocal, slot, line)
			return
		}
		c.emit(OpStoreName, c.constString(name), line)
	}

	switch operator {
	case "=":
		c.compileExpr(rhs)
		store()
	case "??=":
		c.compileIdentLoad(name, line)
		c.emit(OpDup, 0, line)
		jn := c.emit(OpJumpIfNotNil, 0, line)
		c.emit(OpPop, 0, line)
		c.compileExpr(rhs)
		store()
		end := c.emit(OpJump, 0, line)
		c.patch(jn)
		c.patch(end)
	default:
		c.compileIdentLoad(name, line)
		c.compileExpr(rhs)
		op, ok := binOpcode(operator[:len(operator)-1])
		if !ok {
			c.fail()
			return
		}
		c.emit(op, 0, line)
		store()
	}
}

func (c *compiler) compileMemberAssign(m *ast.MemberExpression, operator string, rhs ast.Expression, line int) {
	c.compileExpr(m.Object)
	if m.Computed {
		c.compileExpr(m.Property)
	}

	switch operator {
	case "=":
		c.compileExpr(rhs)
		c.emitMemberStore(m, line)
	case "??=":
		// Leaving the object/index on the stack underneath the read value
		// with no way to drop them without a store has no clean encoding
		// in this opcode set; the tree-walker handles this case instead.
		c.fail()
	default:
		if m.Computed {
			c.emit(OpDupTop2, 0, line)
		} else {
			c.emit(OpDup, 0, line)
		}
		c.emitMemberLoad(m, line)
		c.compileExpr(rhs)
		op, ok := binOpcode(operator[:len(operator)-1])
		if !ok {
			c.fail()
			return
		}
		c.emit(op, 0, line)
		c.emitMemberStore(m, line)
	}
}

func (c *compiler) emitMemberLoad(m *ast.MemberExpression, line int) {
	if m.Computed {
		c.emit(OpGetIndex, 0, line)
		return
	}
	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		c.fail()
		return
	}
	c.emit(OpGetProp, c.constString(ident.Name), line)
}

func (c *compiler) emitMemberStore(m *ast.MemberExpression, line int) {
	if m.Computed {
		c.emit(OpSetIndex, 0, line)
		return
	}
	ident, ok := m.Property.(*ast.Identifier)
	if !ok {
		c.fail()
		return
	}
	c.emit(OpSetProp, c.constString(ident.Name), line)
}
