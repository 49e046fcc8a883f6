package analyze

// magicReturnTypes maps dunder method names to the return types the data
// model protocol guarantees, used when no explicit annotation is written.
var magicReturnTypes = map[string]string{
	"__init__":          "None",
	"__del__":           "None",
	"__init_subclass__": "None",
	"__str__":           "str",
	"__repr__":          "str",
	"__format__":        "str",
	"__bytes__":         "bytes",
	"__bool__":          "bool",
	"__contains__":      "bool",
	"__instancecheck__": "bool",
	"__subclasscheck__": "bool",
	"__int__":           "int",
	"__index__":         "int",
	"__len__":           "int",
	"__length_hint__":   "int",
	"__sizeof__":        "int",
	"__hash__":          "int",
	"__float__":         "float",
	"__complex__":       "complex",
}
