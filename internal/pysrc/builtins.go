package pysrc

// pythonKeywords are reserved words that can never be variable references.
var pythonKeywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {}, "and": {}, "as": {}, "assert": {},
	"async": {}, "await": {}, "break": {}, "case": {}, "class": {},
	"continue": {}, "def": {}, "del": {}, "elif": {}, "else": {},
	"except": {}, "finally": {}, "for": {}, "from": {}, "global": {},
	"if": {}, "import": {}, "in": {}, "is": {}, "lambda": {}, "match": {},
	"nonlocal": {}, "not": {}, "or": {}, "pass": {}, "raise": {},
	"return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
}

// pythonBuiltins covers the builtin functions, types, constants and common
// exception classes that are always in scope. "self" and "cls" are included
// because flagging them inside methods produces far more noise than the
// rare genuine misuse.
var pythonBuiltins = map[string]struct{}{
	"abs": {}, "aiter": {}, "all": {}, "anext": {}, "any": {}, "ascii": {},
	"bin": {}, "bool": {}, "breakpoint": {}, "bytearray": {}, "bytes": {},
	"callable": {}, "chr": {}, "classmethod": {}, "compile": {},
	"complex": {}, "delattr": {}, "dict": {}, "dir": {}, "divmod": {},
	"enumerate": {}, "eval": {}, "exec": {}, "exit": {}, "filter": {},
	"float": {}, "format": {}, "frozenset": {}, "getattr": {},
	"globals": {}, "hasattr": {}, "hash": {}, "help": {}, "hex": {},
	"id": {}, "input": {}, "int": {}, "isinstance": {}, "issubclass": {},
	"iter": {}, "len": {}, "list": {}, "locals": {}, "map": {}, "max": {},
	"memoryview": {}, "min": {}, "next": {}, "object": {}, "oct": {},
	"open": {}, "ord": {}, "pow": {}, "print": {}, "property": {},
	"quit": {}, "range": {}, "repr": {}, "reversed": {}, "round": {},
	"set": {}, "setattr": {}, "slice": {}, "sorted": {},
	"staticmethod": {}, "str": {}, "sum": {}, "super": {}, "tuple": {},
	"type": {}, "vars": {}, "zip": {},

	"Ellipsis": {}, "NotImplemented": {},
	"__name__": {}, "__file__": {}, "__doc__": {}, "__builtins__": {},

	"self": {}, "cls": {}, "_": {},

	"ArithmeticError": {}, "AssertionError": {}, "AttributeError": {},
	"BaseException": {}, "DeprecationWarning": {}, "EOFError": {},
	"Exception": {}, "FileExistsError": {}, "FileNotFoundError": {},
	"FloatingPointError": {}, "GeneratorExit": {}, "IOError": {},
	"ImportError": {}, "IndentationError": {}, "IndexError": {},
	"KeyError": {}, "KeyboardInterrupt": {}, "LookupError": {},
	"MemoryError": {}, "ModuleNotFoundError": {}, "NameError": {},
	"NotImplementedError": {}, "OSError": {}, "OverflowError": {},
	"PermissionError": {}, "RecursionError": {}, "RuntimeError": {},
	"RuntimeWarning": {}, "StopAsyncIteration": {}, "StopIteration": {},
	"SyntaxError": {}, "SystemError": {}, "SystemExit": {}, "TabError": {},
	"TimeoutError": {}, "TypeError": {}, "UnboundLocalError": {},
	"UnicodeDecodeError": {}, "UnicodeEncodeError": {},
	"UnicodeError": {}, "UserWarning": {}, "ValueError": {},
	"Warning": {}, "ZeroDivisionError": {},
}

// IsKeyword reports whether name is a Python reserved word.
func IsKeyword(name string) bool {
	_, ok := pythonKeywords[name]
	return ok
}

// IsBuiltin reports whether name is always in scope without a definition.
func IsBuiltin(name string) bool {
	_, ok := pythonBuiltins[name]
	return ok
}
