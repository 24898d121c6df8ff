package domain

// MIME types accepted for record content.
const (
	MIMEMarcxchange = "application/marcxchange+xml"
	MIMEXML         = "application/xml"
	MIMETextXML     = "text/xml"
)

// RawRecord represents record bytes handed in by a caller.
// It is the input to extraction.
type RawRecord struct {
	// ID identifies the record to the caller. May be empty.
	ID string

	// URI is the original location (file path, URL, etc).
	URI string

	// MIMEType is the content type. Empty means MARCXchange.
	MIMEType string

	// Content is the raw XML bytes.
	Content []byte
}
