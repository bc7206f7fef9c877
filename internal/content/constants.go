package content

// DataDir is the embedded directory holding the YAML files
const DataDir = "data"

// Languages supported by the guide knowledge base
const (
	LanguageEnglish  = "en"
	LanguageFilipino = "fil"
	DefaultLanguage  = LanguageEnglish
)

// Error messages
const (
	ErrMsgReadContent    = "failed to read content"
	ErrMsgParseContent   = "failed to parse content"
	ErrMsgInvalidContent = "invalid content"
)
