package config

const SourceFileExt = ".ol"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".ol"}

// Built-in class names
const (
	RootClassName     = "Class"
	AnyValueClassName = "AnyValue"
	IntegerClassName  = "Integer"
	RealClassName     = "Real"
	BooleanClassName  = "Boolean"
)

// BuiltInClassNames lists the built-in classes in bootstrap order: every
// class comes after its super class.
var BuiltInClassNames = []string{
	RootClassName,
	AnyValueClassName,
	IntegerClassName,
	RealClassName,
	BooleanClassName,
}

// IsBuiltInClassName reports whether name is one of the five built-ins.
func IsBuiltInClassName(name string) bool {
	for _, n := range BuiltInClassNames {
		if n == name {
			return true
		}
	}
	return false
}

// Config file names searched by FindConfig, in order of preference.
const (
	ConfigFileYAML = "ofront.yaml"
	ConfigFileYML  = "ofront.yml"
	ConfigFileTOML = "ofront.toml"
)
