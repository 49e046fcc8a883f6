package python

// builtinNames lists the names exported by the builtins module. Unbound
// names found here resolve as builtins rather than staying unresolved.
var builtinNames = map[string]struct{}{
	"abs": {}, "aiter": {}, "all": {}, "anext": {}, "any": {}, "ascii": {},
	"bin": {}, "bool": {}, "breakpoint": {}, "bytearray": {}, "bytes": {},
	"callable": {}, "chr": {}, "classmethod": {}, "compile": {}, "complex": {},
	"copyright": {}, "credits": {}, "delattr": {}, "dict": {}, "dir": {},
	"divmod": {}, "enumerate": {}, "eval": {}, "exec": {}, "exit": {},
	"filter": {}, "float": {}, "format": {}, "frozenset": {}, "getattr": {},
	"globals": {}, "hasattr": {}, "hash": {}, "help": {}, "hex": {}, "id": {},
	"input": {}, "int": {}, "isinstance": {}, "issubclass": {}, "iter": {},
	"len": {}, "license": {}, "list": {}, "locals": {}, "map": {}, "max": {},
	"memoryview": {}, "min": {}, "next": {}, "object": {}, "oct": {},
	"open": {}, "ord": {}, "pow": {}, "print": {}, "property": {}, "quit": {},
	"range": {}, "repr": {}, "reversed": {}, "round": {}, "set": {},
	"setattr": {}, "slice": {}, "sorted": {}, "staticmethod": {}, "str": {},
	"sum": {}, "super": {}, "tuple": {}, "type": {}, "vars": {}, "zip": {},
	"ArithmeticError": {}, "AssertionError": {}, "AttributeError": {},
	"BaseException": {}, "BaseExceptionGroup": {}, "BlockingIOError": {},
	"BrokenPipeError": {}, "BufferError": {}, "BytesWarning": {},
	"ChildProcessError": {}, "ConnectionAbortedError": {},
	"ConnectionError": {}, "ConnectionRefusedError": {},
	"ConnectionResetError": {}, "DeprecationWarning": {}, "EOFError": {},
	"EncodingWarning": {}, "EnvironmentError": {}, "Exception": {},
	"ExceptionGroup": {}, "FileExistsError": {}, "FileNotFoundError": {},
	"FloatingPointError": {}, "FutureWarning": {}, "GeneratorExit": {},
	"IOError": {}, "ImportError": {}, "ImportWarning": {},
	"IndentationError": {}, "IndexError": {}, "InterruptedError": {},
	"IsADirectoryError": {}, "KeyError": {}, "KeyboardInterrupt": {},
	"LookupError": {}, "MemoryError": {}, "ModuleNotFoundError": {},
	"NameError": {}, "NotADirectoryError": {}, "NotImplemented": {},
	"NotImplementedError": {}, "OSError": {}, "OverflowError": {},
	"PendingDeprecationWarning": {}, "PermissionError": {},
	"ProcessLookupError": {}, "RecursionError": {}, "ReferenceError": {},
	"ResourceWarning": {}, "RuntimeError": {}, "RuntimeWarning": {},
	"StopAsyncIteration": {}, "StopIteration": {}, "SyntaxError": {},
	"SyntaxWarning": {}, "SystemError": {}, "SystemExit": {}, "TabError": {},
	"TimeoutError": {}, "TypeError": {}, "UnboundLocalError": {},
	"UnicodeDecodeError": {}, "UnicodeEncodeError": {}, "UnicodeError": {},
	"UnicodeTranslateError": {}, "UnicodeWarning": {}, "UserWarning": {},
	"ValueError": {}, "Warning": {}, "ZeroDivisionError": {},
	"Ellipsis": {}, "__debug__": {}, "__doc__": {}, "__name__": {},
	"__spec__": {},
}

// IsBuiltin reports whether name belongs to the builtins module.
func IsBuiltin(name string) bool {
	_, ok := builtinNames[name]
	return ok
}
