package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/ofront/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

type CodePrinter struct {
	buf     bytes.Buffer
	indent  int
	headers bool // print declaration headers only, without bodies
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format renders n as source text.
func Format(n ast.Node) string {
	p := NewCodePrinter()
	p.Print(n)
	return p.String()
}

// Header renders the declaration header of n: a class without its members,
// a method or constructor without its body. Other nodes print in full.
func Header(n ast.Node) string {
	p := &CodePrinter{headers: true}
	p.Print(n)
	return p.String()
}

func (p *CodePrinter) String() string {
	return strings.TrimRight(p.buf.String(), "\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

// Print writes n at the current indentation.
func (p *CodePrinter) Print(n ast.Node) {
	switch n := n.(type) {
	case *ast.File:
		for i, item := range n.Items {
			if i > 0 {
				p.writeln()
			}
			p.Print(item)
		}
	case *ast.ClassDecl:
		p.printClassDecl(n)
	case *ast.FieldDecl:
		p.writeIndent()
		p.printVar(n.Name.Lexeme, n.Value)
		p.writeln()
	case *ast.MethodDecl:
		p.printMethodDecl(n)
	case *ast.ConstructorDecl:
		p.printConstructorDecl(n)
	case *ast.TypeRef:
		p.printTypeRef(n)
	case *ast.Param:
		p.printParam(n)
	case ast.Statement:
		p.printStatement(n)
	case ast.Expression:
		p.printExpr(n)
	}
}

func (p *CodePrinter) printClassDecl(n *ast.ClassDecl) {
	p.writeIndent()
	p.write("class ")
	p.write(n.Name.Lexeme)
	if len(n.TypeParams) > 0 {
		p.write("[")
		for i, tp := range n.TypeParams {
			if i > 0 {
				p.write(", ")
			}
			p.write(tp.Name.Lexeme)
		}
		p.write("]")
	}
	if n.Super != nil {
		p.write(" extends ")
		p.printTypeRef(n.Super)
	}
	p.write(" is")
	if p.headers {
		return
	}
	p.writeln()
	p.indent++
	for _, m := range n.Members {
		p.Print(m)
	}
	p.indent--
	p.writeIndent()
	p.write("end")
	p.writeln()
}

func (p *CodePrinter) printMethodDecl(n *ast.MethodDecl) {
	p.writeIndent()
	p.write("method ")
	p.write(n.Name.Lexeme)
	if n.Params != nil {
		p.printParams(n.Params)
	}
	if n.Result != nil {
		p.write(" : ")
		p.printTypeRef(n.Result)
	}
	if p.headers {
		return
	}
	if !n.Forward {
		p.printBody(n.Body)
	}
	p.writeln()
}

func (p *CodePrinter) printConstructorDecl(n *ast.ConstructorDecl) {
	p.writeIndent()
	p.write("this")
	if n.Params != nil {
		p.printParams(n.Params)
	}
	if p.headers {
		return
	}
	if !n.Forward {
		p.printBody(n.Body)
	}
	p.writeln()
}

func (p *CodePrinter) printParams(params []*ast.Param) {
	p.write("(")
	for i, param := range params {
		if i > 0 {
			p.write(", ")
		}
		p.printParam(param)
	}
	p.write(")")
}

func (p *CodePrinter) printParam(n *ast.Param) {
	p.write(n.Name.Lexeme)
	if n.TypeRef != nil {
		p.write(": ")
		p.printTypeRef(n.TypeRef)
	}
}

func (p *CodePrinter) printTypeRef(n *ast.TypeRef) {
	p.write(n.Identifier())
}

// printBody writes " is", the statements one per line, then "end".
func (p *CodePrinter) printBody(body []ast.Statement) {
	p.write(" is")
	p.writeln()
	p.indent++
	for _, s := range body {
		p.printStatement(s)
	}
	p.indent--
	p.writeIndent()
	p.write("end")
}

func (p *CodePrinter) printVar(name string, value ast.Expression) {
	p.write("var ")
	p.write(name)
	p.write(" : ")
	p.printExpr(value)
}

func (p *CodePrinter) printStatement(s ast.Statement) {
	switch s := s.(type) {
	case *ast.ClassDecl:
		p.printClassDecl(s)
		return
	case *ast.VarDecl:
		p.writeIndent()
		p.printVar(s.Name.Lexeme, s.Value)
	case *ast.Assignment:
		p.writeIndent()
		p.printExpr(s.Target)
		p.write(" := ")
		p.printExpr(s.Value)
	case *ast.WhileLoop:
		p.writeIndent()
		p.write("while ")
		p.printExpr(s.Condition)
		p.write(" loop")
		p.printBlock(s.Body)
	case *ast.IfStatement:
		p.writeIndent()
		p.write("if ")
		p.printExpr(s.Condition)
		p.write(" then")
		p.writeln()
		p.indent++
		for _, st := range s.Then {
			p.printStatement(st)
		}
		p.indent--
		if len(s.Else) > 0 {
			p.writeIndent()
			p.write("else")
			p.writeln()
			p.indent++
			for _, st := range s.Else {
				p.printStatement(st)
			}
			p.indent--
		}
		p.writeIndent()
		p.write("end")
	case *ast.ReturnStatement:
		p.writeIndent()
		p.write("return")
		if s.Value != nil {
			p.write(" ")
			p.printExpr(s.Value)
		}
	case *ast.ExprStatement:
		p.writeIndent()
		p.printExpr(s.Expr)
	}
	p.writeln()
}

// printBlock writes the statements of a loop body followed by "end".
func (p *CodePrinter) printBlock(body []ast.Statement) {
	p.writeln()
	p.indent++
	for _, s := range body {
		p.printStatement(s)
	}
	p.indent--
	p.writeIndent()
	p.write("end")
}

func (p *CodePrinter) printExpr(expr ast.Expression) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.RealLiteral:
		if e.Token.Lexeme != "" {
			p.write(e.Token.Lexeme)
		} else {
			p.write(strconv.FormatFloat(e.Value, 'g', -1, 64))
		}
	case *ast.BooleanLiteral:
		p.write(strconv.FormatBool(e.Value))
	case *ast.ThisExpr:
		p.write("this")
	case *ast.Reference:
		p.write(e.Name.Lexeme)
		if len(e.TypeArgs) > 0 {
			p.write("[")
			for i, a := range e.TypeArgs {
				if i > 0 {
					p.write(", ")
				}
				p.printTypeRef(a)
			}
			p.write("]")
		}
		if e.IsCall {
			p.printArgs(e.Args)
		}
	case *ast.MemberAccess:
		p.printExpr(e.Object)
		p.write(".")
		p.write(e.Member.Lexeme)
		if e.IsCall {
			p.printArgs(e.Args)
		}
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printArgs(args []ast.Expression) {
	p.write("(")
	for i, a := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(a)
	}
	p.write(")")
}
