package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Синтаксические
	SynUnterminatedString        Code = 1002
	SynIdentifierExpected        Code = 1003
	SynTokenExpected             Code = 1005
	SynCommentNotClosed          Code = 1010
	SynRestParamMustBeLast       Code = 1014
	SynReturnOutsideFunction     Code = 1108
	SynExpressionExpected        Code = 1109
	SynTypeExpected              Code = 1110
	SynInvalidCharacter          Code = 1127
	SynDeclarationExpected       Code = 1128
	SynConstMustBeInitialized    Code = 1155
	SynAmbientImplementation     Code = 1183
	SynModifiersNotAllowed       Code = 1184
	SynDecoratorsNotValid        Code = 1206
	SynImportNotTopLevel         Code = 1232
	SynExportNotTopLevel         Code = 1233
	SynIdentAfterNumber          Code = 1351
	SynStatementsInAmbient       Code = 1036
	SynInitializerInAmbient      Code = 1039
	SynOptionalAfterRequired     Code = 1016
	SynParameterCannotBeOptional Code = 1047

	// Семантические
	SemaModuleNoneImports        Code = 1148
	SemaDecoratorsExperimental   Code = 1219
	SemaDuplicateIdentifier      Code = 2300
	SemaCannotFindName           Code = 2304
	SemaNoExportedMember         Code = 2305
	SemaNotAModule               Code = 2306
	SemaCannotFindModule         Code = 2307
	SemaTypeNotAssignable        Code = 2322
	SemaParamTypesIncompatible   Code = 2328
	SemaPropertyNotExist         Code = 2339
	SemaArgumentNotAssignable    Code = 2345
	SemaNotCallable              Code = 2349
	SemaFunctionMustReturn       Code = 2355
	SemaArithmeticLeft           Code = 2362
	SemaArithmeticRight          Code = 2363
	SemaInvalidAssignTarget      Code = 2364
	SemaOperatorNotApplicable    Code = 2365
	SemaComparisonNoOverlap      Code = 2367
	SemaDuplicateFunction        Code = 2393
	SemaRedeclareBlockScoped     Code = 2451
	SemaObjectPossiblyNull       Code = 2531
	SemaExpectedArguments        Code = 2554
	SemaExpectedAtLeastArguments Code = 2555
	SemaAssignToConstant         Code = 2588
	SemaLacksEndingReturn        Code = 2366
	SemaAssignToFunction         Code = 2630
	SemaAssignToImport           Code = 2632
	SemaDeclaredNeverRead        Code = 6133

	// Опции и программа
	OptCannotReadFile           Code = 5012
	OptRequiresType             Code = 5024
	OptCouldNotWriteFile        Code = 5033
	OptInlineSourcesRequiresMap Code = 5051
	OptRequiresOption           Code = 5052
	OptCannotSpecifyWith        Code = 5053
	OptWouldOverwriteInput      Code = 5055
	OptInvalidArgument          Code = 6046
	OptFileNotFound             Code = 6053
	OptUnsupportedExtension     Code = 6054
	OptFileNotUnderRootDir      Code = 6059
)

var codeDescription = map[Code]string{
	UnknownCode: "%s",

	SynUnterminatedString:        "Unterminated string literal.",
	SynIdentifierExpected:        "Identifier expected.",
	SynTokenExpected:             "'%s' expected.",
	SynCommentNotClosed:          "'*/' expected.",
	SynRestParamMustBeLast:       "A rest parameter must be last in a parameter list.",
	SynReturnOutsideFunction:     "A 'return' statement can only be used within a function body.",
	SynExpressionExpected:        "Expression expected.",
	SynTypeExpected:              "Type expected.",
	SynInvalidCharacter:          "Invalid character.",
	SynDeclarationExpected:       "Declaration or statement expected.",
	SynConstMustBeInitialized:    "'const' declarations must be initialized.",
	SynAmbientImplementation:     "An implementation cannot be declared in ambient contexts.",
	SynModifiersNotAllowed:       "Modifiers cannot appear here.",
	SynDecoratorsNotValid:        "Decorators are not valid here.",
	SynImportNotTopLevel:         "An import declaration can only be used at the top level of a module.",
	SynExportNotTopLevel:         "An export declaration can only be used at the top level of a module.",
	SynIdentAfterNumber:          "An identifier or keyword cannot immediately follow a numeric literal.",
	SynStatementsInAmbient:       "Statements are not allowed in ambient contexts.",
	SynInitializerInAmbient:      "Initializers are not allowed in ambient contexts.",
	SynOptionalAfterRequired:     "A required parameter cannot follow an optional parameter.",
	SynParameterCannotBeOptional: "A rest parameter cannot be optional.",

	SemaModuleNoneImports:        "Cannot use imports, exports, or module augmentations when '--module' is 'none'.",
	SemaDecoratorsExperimental:   "Experimental support for decorators is a feature that is subject to change in a future release. Set the 'experimentalDecorators' option to remove this warning.",
	SemaDuplicateIdentifier:      "Duplicate identifier '%s'.",
	SemaCannotFindName:           "Cannot find name '%s'.",
	SemaNoExportedMember:         "Module '\"%s\"' has no exported member '%s'.",
	SemaNotAModule:               "File '%s' is not a module.",
	SemaCannotFindModule:         "Cannot find module '%s' or its corresponding type declarations.",
	SemaTypeNotAssignable:        "Type '%s' is not assignable to type '%s'.",
	SemaParamTypesIncompatible:   "Types of parameters '%s' and '%s' are incompatible.",
	SemaPropertyNotExist:         "Property '%s' does not exist on type '%s'.",
	SemaArgumentNotAssignable:    "Argument of type '%s' is not assignable to parameter of type '%s'.",
	SemaNotCallable:              "This expression is not callable.",
	SemaFunctionMustReturn:       "A function whose declared type is neither 'void' nor 'any' must return a value.",
	SemaArithmeticLeft:           "The left-hand side of an arithmetic operation must be of type 'any' or 'number'.",
	SemaArithmeticRight:          "The right-hand side of an arithmetic operation must be of type 'any' or 'number'.",
	SemaInvalidAssignTarget:      "The left-hand side of an assignment expression must be a variable or a property access.",
	SemaOperatorNotApplicable:    "Operator '%s' cannot be applied to types '%s' and '%s'.",
	SemaComparisonNoOverlap:      "This comparison appears to be unintentional because the types '%s' and '%s' have no overlap.",
	SemaDuplicateFunction:        "Duplicate function implementation.",
	SemaRedeclareBlockScoped:     "Cannot redeclare block-scoped variable '%s'.",
	SemaObjectPossiblyNull:       "Object is possibly 'null'.",
	SemaExpectedArguments:        "Expected %s arguments, but got %d.",
	SemaExpectedAtLeastArguments: "Expected at least %d arguments, but got %d.",
	SemaAssignToConstant:         "Cannot assign to '%s' because it is a constant.",
	SemaDeclaredNeverRead:        "'%s' is declared but its value is never read.",
	SemaLacksEndingReturn:        "Function lacks ending return statement and return type does not include 'undefined'.",
	SemaAssignToFunction:         "Cannot assign to '%s' because it is a function.",
	SemaAssignToImport:           "Cannot assign to '%s' because it is an import.",

	OptCannotReadFile:           "Cannot read file '%s': %s.",
	OptRequiresType:             "Compiler option '%s' requires a value of type %s.",
	OptCouldNotWriteFile:        "Could not write file '%s': %s.",
	OptInlineSourcesRequiresMap: "Option 'inlineSources' can only be used when either option '--inlineSourceMap' or option '--sourceMap' is provided.",
	OptRequiresOption:           "Option '%s' cannot be specified without specifying option '%s'.",
	OptCannotSpecifyWith:        "Option '%s' cannot be specified with option '%s'.",
	OptWouldOverwriteInput:      "Cannot write file '%s' because it would overwrite input file.",
	OptInvalidArgument:          "Argument for '--%s' option must be: %s.",
	OptFileNotFound:             "File '%s' not found.",
	OptUnsupportedExtension:     "File '%s' has an unsupported extension. The only supported extensions are %s.",
	OptFileNotUnderRootDir:      "File '%s' is not under 'rootDir' '%s'. 'rootDir' is expected to contain all source files.",
}

// ID returns the stable textual identifier, e.g. "TS2322".
func (c Code) ID() string {
	return fmt.Sprintf("TS%d", int(c))
}

// Template returns the fmt template for the code's message.
func (c Code) Template() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// Message formats the code's template with args.
func (c Code) Message(args ...any) string {
	tmpl := c.Template()
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// DefaultSeverity is the severity a code is reported with unless a producer overrides it.
func (c Code) DefaultSeverity() Severity {
	switch c {
	case SemaDeclaredNeverRead:
		return SevSuggestion
	}
	return SevError
}

func (c Code) String() string {
	return c.ID()
}
