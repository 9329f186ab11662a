package pushover

const (
	// APIEndpoint is the Pushover message submission endpoint.
	APIEndpoint = "https://api.pushover.net/1/messages.json"

	// APIDocumentationURL points at the upstream API reference.
	APIDocumentationURL = "https://pushover.net/api"

	// MaxAttachmentSize is the largest attachment, in bytes, the API accepts.
	MaxAttachmentSize int64 = 2621440
)
