package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexDirectiveIgnored         Code = 1006

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectSemicolon      Code = 2002
	SynExpectIdentifier     Code = 2003
	SynExpectType           Code = 2004
	SynExpectExpression     Code = 2005
	SynExpectLeftParen      Code = 2006
	SynExpectRightParen     Code = 2007
	SynExpectLeftBracket    Code = 2008
	SynExpectRightBracket   Code = 2009
	SynExpectLeftBrace      Code = 2010
	SynExpectRightBrace     Code = 2011
	SynExpectLeftAngle      Code = 2012
	SynExpectRightAngle     Code = 2013
	SynExpectColon          Code = 2014
	SynExpectComma          Code = 2015
	SynExpectStatement      Code = 2016
	SynExpectInitializer    Code = 2017
	SynExpectWhile          Code = 2018
	SynExpectDeclaration    Code = 2019
	SynBadTemplateArgument  Code = 2020
	SynBadAttribute         Code = 2021
	SynBadLayout            Code = 2022
	SynBadPostDeclaration   Code = 2023
	SynUnexpectedTopLevel   Code = 2024
	SynExpectFunctionBody   Code = 2025
	SynExpectParameter      Code = 2026
	SynExpectArraySize      Code = 2027
	SynExpectStructBody     Code = 2028
	SynExpectSamplerState   Code = 2029
	SynExpectAnnotation     Code = 2030
	SynExpectCaseExpression Code = 2031

	// Семантические
	SemaInfo                  Code = 3000
	SemaError                 Code = 3001
	SemaUndeclaredIdentifier  Code = 3002
	SemaRedefinition          Code = 3003
	SemaTypeMismatch          Code = 3004
	SemaNoMatchingOverload    Code = 3005
	SemaAmbiguousCall         Code = 3006
	SemaNotLValue             Code = 3007
	SemaConstructorArgs       Code = 3008
	SemaConstructorTooFew     Code = 3009
	SemaConstructorTooMany    Code = 3010
	SemaImplicitArraySize     Code = 3011
	SemaBadArraySize          Code = 3012
	SemaBadIndex              Code = 3013
	SemaIndexOutOfRange       Code = 3014
	SemaBadSwizzle            Code = 3015
	SemaNoSuchMember          Code = 3016
	SemaQualifierConflict     Code = 3017
	SemaBadLayout             Code = 3018
	SemaBadRegister           Code = 3019
	SemaBadPackOffset         Code = 3020
	SemaBadSemantic           Code = 3021
	SemaDuplicateCase         Code = 3022
	SemaDuplicateDefault      Code = 3023
	SemaBadCaseLabel          Code = 3024
	SemaBreakOutsideLoop      Code = 3025
	SemaContinueOutsideLoop   Code = 3026
	SemaReturnTypeMismatch    Code = 3027
	SemaMissingReturnValue    Code = 3028
	SemaVoidReturnValue       Code = 3029
	SemaBadCondition          Code = 3030
	SemaBadOperands           Code = 3031
	SemaNotConstant           Code = 3032
	SemaFunctionNotDefined    Code = 3033
	SemaEntryPointMissing     Code = 3034
	SemaFunctionRedefined     Code = 3035
	SemaBadAttribute          Code = 3036
	SemaBadCast               Code = 3037
	SemaBadMethod             Code = 3038
	SemaBadTextureType        Code = 3039
	SemaImplicitTruncation    Code = 3040
	SemaDivisionByZero        Code = 3041
	SemaBadStructMember       Code = 3042
	SemaBadInitializer        Code = 3043
	SemaBadDefaultArgument    Code = 3044
	SemaBadAtomicTarget       Code = 3045
	SemaBadArgument           Code = 3046
	SemaBadShaderStage        Code = 3047
	SemaTooManyArguments      Code = 3048
	SemaNotEnoughArguments    Code = 3049
	SemaBadTypedef            Code = 3050
	SemaUnusedAnnotation      Code = 3051
	SemaNotAType              Code = 3052
	SemaBadBuiltinRedeclare   Code = 3053
	SemaOpaqueAssignment      Code = 3054
	SemaBadTemplateType       Code = 3055
	SemaImplicitConversion    Code = 3056
	SemaStatementAfterDefault Code = 3057

	// I/O
	IOLoadFileError Code = 4000

	// Проект
	ProjInfo        Code = 5000
	ProjBadManifest Code = 5001
	ProjBadStage    Code = 5002

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// Не реализовано
	FutNotImplemented     Code = 7000
	FutDX9Construct       Code = 7001
	FutMemberFunction     Code = 7002
	FutPartialImageWrite  Code = 7003
	FutIntrinsic          Code = 7004
	FutClassDeclaration   Code = 7005
	FutSpecConstantArrays Code = 7006
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexTokenTooLong:             "Token too long",
		LexDirectiveIgnored:         "Preprocessor directive ignored",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Expected ';'",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynExpectLeftParen:          "Expected '('",
		SynExpectRightParen:         "Expected ')'",
		SynExpectLeftBracket:        "Expected '['",
		SynExpectRightBracket:       "Expected ']'",
		SynExpectLeftBrace:          "Expected '{'",
		SynExpectRightBrace:         "Expected '}'",
		SynExpectLeftAngle:          "Expected '<'",
		SynExpectRightAngle:         "Expected '>'",
		SynExpectColon:              "Expected ':'",
		SynExpectComma:              "Expected ','",
		SynExpectStatement:          "Expected statement",
		SynExpectInitializer:        "Expected initializer",
		SynExpectWhile:              "Expected 'while'",
		SynExpectDeclaration:        "Expected declaration",
		SynBadTemplateArgument:      "Bad template argument",
		SynBadAttribute:             "Malformed attribute",
		SynBadLayout:                "Malformed layout qualifier",
		SynBadPostDeclaration:       "Malformed semantic, register or packoffset",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynExpectFunctionBody:       "Expected function body",
		SynExpectParameter:          "Expected parameter declaration",
		SynExpectArraySize:          "Expected array size",
		SynExpectStructBody:         "Expected struct member list",
		SynExpectSamplerState:       "Expected sampler state assignment",
		SynExpectAnnotation:         "Expected annotation",
		SynExpectCaseExpression:     "Expected case expression",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaUndeclaredIdentifier:    "Undeclared identifier",
		SemaRedefinition:            "Redefinition",
		SemaTypeMismatch:            "Type mismatch",
		SemaNoMatchingOverload:      "No matching overloaded function",
		SemaAmbiguousCall:           "Ambiguous function call",
		SemaNotLValue:               "Not an l-value",
		SemaConstructorArgs:         "Bad constructor arguments",
		SemaConstructorTooFew:       "Not enough data provided for construction",
		SemaConstructorTooMany:      "Too many arguments for construction",
		SemaImplicitArraySize:       "Implicitly sized array",
		SemaBadArraySize:            "Bad array size",
		SemaBadIndex:                "Bad index",
		SemaIndexOutOfRange:         "Index out of range",
		SemaBadSwizzle:              "Bad swizzle",
		SemaNoSuchMember:            "No such member",
		SemaQualifierConflict:       "Conflicting qualifiers",
		SemaBadLayout:               "Bad layout qualifier",
		SemaBadRegister:             "Bad register",
		SemaBadPackOffset:           "Bad packoffset",
		SemaBadSemantic:             "Bad semantic",
		SemaDuplicateCase:           "Duplicated case value",
		SemaDuplicateDefault:        "Duplicate default label",
		SemaBadCaseLabel:            "Bad case label",
		SemaBreakOutsideLoop:        "break outside loop or switch",
		SemaContinueOutsideLoop:     "continue outside loop",
		SemaReturnTypeMismatch:      "Return type mismatch",
		SemaMissingReturnValue:      "Missing return value",
		SemaVoidReturnValue:         "void function returns a value",
		SemaBadCondition:            "Bad condition",
		SemaBadOperands:             "Bad operands",
		SemaNotConstant:             "Expression is not constant",
		SemaFunctionNotDefined:      "Function has no body",
		SemaEntryPointMissing:       "Entry point not found",
		SemaFunctionRedefined:       "Function redefinition",
		SemaBadAttribute:            "Bad attribute",
		SemaBadCast:                 "Bad cast",
		SemaBadMethod:               "Bad method",
		SemaBadTextureType:          "Bad texture return type",
		SemaImplicitTruncation:      "Implicit truncation",
		SemaDivisionByZero:          "Division by zero",
		SemaBadStructMember:         "Bad struct member",
		SemaBadInitializer:          "Bad initializer",
		SemaBadDefaultArgument:      "Bad default argument",
		SemaBadAtomicTarget:         "Bad atomic target",
		SemaBadArgument:             "Bad argument",
		SemaBadShaderStage:          "Feature not valid in this shader stage",
		SemaTooManyArguments:        "Too many arguments",
		SemaNotEnoughArguments:      "Not enough arguments",
		SemaBadTypedef:              "Bad typedef",
		SemaUnusedAnnotation:        "Annotation ignored",
		SemaNotAType:                "Not a type",
		SemaBadBuiltinRedeclare:     "Bad redeclaration of a builtin",
		SemaOpaqueAssignment:        "Opaque types cannot be assigned",
		SemaBadTemplateType:         "Bad template type",
		SemaImplicitConversion:      "Implicit conversion",
		SemaStatementAfterDefault:   "Statement outside of case",
		IOLoadFileError:             "I/O load file error",
		ProjInfo:                    "Project information",
		ProjBadManifest:             "Bad project manifest",
		ProjBadStage:                "Unknown shader stage",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
		FutNotImplemented:           "Not implemented",
		FutDX9Construct:             "DX9 construct not implemented",
		FutMemberFunction:           "Member functions are not implemented",
		FutPartialImageWrite:        "Partial image element writes are not implemented",
		FutIntrinsic:                "Intrinsic not implemented",
		FutClassDeclaration:         "class and interface are not implemented",
		FutSpecConstantArrays:       "Specialization-constant array sizes are not implemented",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("FUT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
