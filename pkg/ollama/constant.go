package ollama

const (
	// DefaultModel is the default local model.
	DefaultModel = "llama3.1:8b"

	// DefaultBaseURL is the default Ollama server address.
	DefaultBaseURL = "http://localhost:11434"
)
