package parser

import (
	"hlslc/internal/ir"
	"hlslc/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precLogicalOr      = 1  // ||
	precLogicalXor     = 2  // ^^
	precLogicalAnd     = 3  // &&
	precBitwiseOr      = 4  // |
	precBitwiseXor     = 5  // ^
	precBitwiseAnd     = 6  // &
	precEquality       = 7  // == !=
	precComparison     = 8  // < <= > >=
	precShift          = 9  // << >>
	precAdditive       = 10 // + -
	precMultiplicative = 11 // * / %
)

// getBinaryOperatorPrec возвращает приоритет бинарного оператора
// и соответствующую операцию IR. Для не-операторов приоритет -1.
func getBinaryOperatorPrec(kind token.Kind) (int, ir.Op) {
	switch kind {
	// Логические операторы
	case token.OrOp:
		return precLogicalOr, ir.OpLogicalOr
	case token.XorOp:
		return precLogicalXor, ir.OpLogicalXor
	case token.AndOp:
		return precLogicalAnd, ir.OpLogicalAnd

	// Битовые операторы
	case token.VerticalBar:
		return precBitwiseOr, ir.OpInclusiveOr
	case token.Caret:
		return precBitwiseXor, ir.OpExclusiveOr
	case token.Ampersand:
		return precBitwiseAnd, ir.OpAnd

	// Операторы равенства
	case token.EqOp:
		return precEquality, ir.OpEqual
	case token.NeOp:
		return precEquality, ir.OpNotEqual

	// Операторы сравнения
	case token.LeftAngle:
		return precComparison, ir.OpLessThan
	case token.RightAngle:
		return precComparison, ir.OpGreaterThan
	case token.LeOp:
		return precComparison, ir.OpLessThanEqual
	case token.GeOp:
		return precComparison, ir.OpGreaterThanEqual

	// Сдвиги
	case token.LeftOp:
		return precShift, ir.OpLeftShift
	case token.RightOp:
		return precShift, ir.OpRightShift

	// Арифметические операторы
	case token.Plus:
		return precAdditive, ir.OpAdd
	case token.Dash:
		return precAdditive, ir.OpSub
	case token.Star:
		return precMultiplicative, ir.OpMul
	case token.Slash:
		return precMultiplicative, ir.OpDiv
	case token.Percent:
		return precMultiplicative, ir.OpMod

	default:
		return -1, ir.OpNull // не бинарный оператор
	}
}

// assignOps - операторы присваивания (правоассоциативны)
var assignOps = map[token.Kind]ir.Op{
	token.Assign:      ir.OpAssign,
	token.MulAssign:   ir.OpMulAssign,
	token.DivAssign:   ir.OpDivAssign,
	token.AddAssign:   ir.OpAddAssign,
	token.SubAssign:   ir.OpSubAssign,
	token.ModAssign:   ir.OpModAssign,
	token.LeftAssign:  ir.OpLeftShiftAssign,
	token.RightAssign: ir.OpRightShiftAssign,
	token.AndAssign:   ir.OpAndAssign,
	token.XorAssign:   ir.OpExclusiveOrAssign,
	token.OrAssign:    ir.OpInclusiveOrAssign,
}

// unaryOps - префиксные операторы; унарный '+' ничего не делает
var unaryOps = map[token.Kind]ir.Op{
	token.Dash:  ir.OpNegative,
	token.Bang:  ir.OpLogicalNot,
	token.Tilde: ir.OpBitwiseNot,
	token.IncOp: ir.OpPreIncrement,
	token.DecOp: ir.OpPreDecrement,
	token.Plus:  ir.OpNull,
}
