package symbols

import "github.com/funvibe/ofront/internal/config"

// builtInSources holds the source text of each built-in class. They go
// through the same lexer, parser and passes as user code. Members without
// a body are forward declarations.
var builtInSources = map[string]string{
	config.RootClassName: `
class Class is
    this
end
`,
	config.AnyValueClassName: `
class AnyValue extends Class is
    this
end
`,
	config.IntegerClassName: `
class Integer extends AnyValue is
    this
    this(p: Integer)
    this(p: Real)

    var Min : 0
    var Max : 0

    method toReal : Real
    method toBoolean : Boolean

    method UnaryMinus : Integer

    method Plus(p: Integer) : Integer
    method Plus(p: Real) : Real
    method Minus(p: Integer) : Integer
    method Minus(p: Real) : Real
    method Mult(p: Integer) : Integer
    method Mult(p: Real) : Real
    method Div(p: Integer) : Integer
    method Div(p: Real) : Real
    method Rem(p: Integer) : Integer

    method Less(p: Integer) : Boolean
    method Less(p: Real) : Boolean
    method LessEqual(p: Integer) : Boolean
    method LessEqual(p: Real) : Boolean
    method Greater(p: Integer) : Boolean
    method Greater(p: Real) : Boolean
    method GreaterEqual(p: Integer) : Boolean
    method GreaterEqual(p: Real) : Boolean
    method Equal(p: Integer) : Boolean
    method Equal(p: Real) : Boolean
end
`,
	config.RealClassName: `
class Real extends AnyValue is
    this
    this(p: Real)
    this(p: Integer)

    var Min : 0.0
    var Max : 0.0
    var Epsilon : 0.0

    method toInteger : Integer

    method UnaryMinus : Real

    method Plus(p: Real) : Real
    method Plus(p: Integer) : Real
    method Minus(p: Real) : Real
    method Minus(p: Integer) : Real
    method Mult(p: Real) : Real
    method Mult(p: Integer) : Real
    method Div(p: Integer) : Real
    method Div(p: Real) : Real
    method Rem(p: Integer) : Real

    method Less(p: Real) : Boolean
    method Less(p: Integer) : Boolean
    method LessEqual(p: Real) : Boolean
    method LessEqual(p: Integer) : Boolean
    method Greater(p: Real) : Boolean
    method Greater(p: Integer) : Boolean
    method GreaterEqual(p: Real) : Boolean
    method GreaterEqual(p: Integer) : Boolean
    method Equal(p: Real) : Boolean
    method Equal(p: Integer) : Boolean
end
`,
	config.BooleanClassName: `
class Boolean extends AnyValue is
    this
    this(p: Boolean)

    method toInteger : Integer

    method Or(p: Boolean) : Boolean
    method And(p: Boolean) : Boolean
    method Xor(p: Boolean) : Boolean
    method Not : Boolean
end
`,
}
