package gateway

import "strings"

// Matcher classifies a normalized media type (lowercase, no parameters)
// as needing base64 transport.
type Matcher func(mediaType string) bool

// Exact matches a media type by string equality.
func Exact(mediaType string) Matcher {
	return func(t string) bool { return t == mediaType }
}

// Prefix matches media types with the given prefix, e.g. "image/".
func Prefix(prefix string) Matcher {
	return func(t string) bool { return strings.HasPrefix(t, prefix) }
}

// Suffix matches media types with the given suffix, e.g. "+zip".
func Suffix(suffix string) Matcher {
	return func(t string) bool { return strings.HasSuffix(t, suffix) }
}

// binaryTypes is the versioned allow-list of media types whose response
// bodies are base64-encoded. Classification is exact string equality, never
// content sniffing.
var binaryTypes = []string{
	"application/octet-stream",
	// Docs
	"application/epub+zip",
	"application/msword",
	"application/pdf",
	"application/rtf",
	"application/vnd.ms-excel",
	"application/vnd.ms-fontobject",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	// Fonts
	"font/otf",
	"font/woff",
	"font/woff2",
	// Images
	"image/bmp",
	"image/gif",
	"image/jpeg",
	"image/png",
	"image/tiff",
	"image/vnd.microsoft.icon",
	"image/webp",
	// Audio
	"audio/3gpp",
	"audio/aac",
	"audio/basic",
	"audio/mpeg",
	"audio/ogg",
	"audio/wav",
	"audio/webm",
	"audio/x-aiff",
	"audio/x-midi",
	"audio/x-wav",
	// Video
	"video/3gpp",
	"video/mp2t",
	"video/mp4",
	"video/mpeg",
	"video/ogg",
	"video/quicktime",
	"video/webm",
	"video/x-msvideo",
	// Archives
	"application/java-archive",
	"application/vnd.apple.installer+xml",
	"application/x-7z-compressed",
	"application/x-apple-diskimage",
	"application/x-bzip",
	"application/x-bzip2",
	"application/x-gzip",
	"application/x-java-archive",
	"application/x-rar-compressed",
	"application/x-tar",
	"application/x-zip",
	"application/zip",
	// Wasm
	"application/wasm",
}

// DefaultBinaryTypes is the default matcher table, one exact matcher per
// entry of the allow-list.
var DefaultBinaryTypes = func() []Matcher {
	matchers := make([]Matcher, len(binaryTypes))
	for i, t := range binaryTypes {
		matchers[i] = Exact(t)
	}
	return matchers
}()

// IsBinaryType reports whether a Content-Type header value matches the
// table. Parameters (e.g. "; charset=utf-8") are stripped before matching.
func IsBinaryType(matchers []Matcher, contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	for _, match := range matchers {
		if match(mediaType) {
			return true
		}
	}
	return false
}
