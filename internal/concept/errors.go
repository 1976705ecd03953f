package concept

import "fmt"

// ConfigError reports a malformed embedded or user-supplied configuration
// resource. It is returned at load time, before any source is processed.
type ConfigError struct {
	Resource string
	Msg      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s configuration: %s", e.Resource, e.Msg)
}

// UnknownConceptError reports a forward lookup of a concept ID that is not
// part of the ontology.
type UnknownConceptError struct {
	Concept ID
}

func (e *UnknownConceptError) Error() string {
	return fmt.Sprintf("unknown concept %q", string(e.Concept))
}

// UnknownKeywordError reports a reverse lookup of a word that is not a
// reserved spelling in the given language.
type UnknownKeywordError struct {
	Word     string
	Language string
}

func (e *UnknownKeywordError) Error() string {
	return fmt.Sprintf("%q is not a keyword in language %q", e.Word, e.Language)
}

// UnsupportedLanguageError reports a language code outside the declared set.
type UnsupportedLanguageError struct {
	Language string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q", e.Language)
}
