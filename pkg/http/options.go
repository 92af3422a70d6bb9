package http

import (
	"net/http"
)

const (
	// DefaultFileType is the expected media type when none is given.
	DefaultFileType = "application/json"

	// AbsentCredential is what the Authorization header carries when the
	// token store has been cleared.
	AbsentCredential = "null"
)

// RequestOptions describes a single call. URL is required; every other field
// has a usable zero value.
type RequestOptions struct {
	// URL is used verbatim; it is neither validated nor encoded.
	URL string
	// Method defaults to GET. Values other than GET/POST/PATCH/DELETE are
	// passed through without a body.
	Method string
	// Body is JSON-encoded for POST and PATCH only. A nil Body encodes as null.
	Body any
	// FileType is the expected response media type, sent as Accept.
	FileType string
	// QueryParams is appended after "?" when non-empty. Callers encode it.
	QueryParams string
	// AccessToken, when non-nil, is used instead of the token store, even if empty.
	AccessToken *string
	// Headers overlay the defaults. Keys are matched exactly, without
	// canonicalisation. A "Host" entry becomes the request's Host.
	Headers map[string]string
}

// RequestOption configures RequestOptions for the verb helpers.
type RequestOption func(*RequestOptions)

// WithBody sets the request body.
func WithBody(body any) RequestOption {
	return func(o *RequestOptions) { o.Body = body }
}

// WithFileType sets the expected response media type.
func WithFileType(fileType string) RequestOption {
	return func(o *RequestOptions) { o.FileType = fileType }
}

// WithQuery sets the pre-encoded query string.
func WithQuery(query string) RequestOption {
	return func(o *RequestOptions) { o.QueryParams = query }
}

// WithAccessToken sets an explicit credential for this call.
func WithAccessToken(tok string) RequestOption {
	return func(o *RequestOptions) { o.AccessToken = &tok }
}

// WithHeader adds a header that overrides any default of the same name.
func WithHeader(name, value string) RequestOption {
	return func(o *RequestOptions) {
		if o.Headers == nil {
			o.Headers = make(map[string]string)
		}
		o.Headers[name] = value
	}
}

// NewRequestOptions builds RequestOptions for url and method.
func NewRequestOptions(url, method string, opts ...RequestOption) RequestOptions {
	o := RequestOptions{URL: url, Method: method}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o RequestOptions) withDefaults() RequestOptions {
	if o.Method == "" {
		o.Method = http.MethodGet
	}
	if o.FileType == "" {
		o.FileType = DefaultFileType
	}
	return o
}

func (o RequestOptions) completeURL() string {
	if o.QueryParams == "" {
		return o.URL
	}
	return o.URL + "?" + o.QueryParams
}

// mergedHeaders writes keys directly into the map so caller names are kept
// exactly as given.
func (o RequestOptions) mergedHeaders(credential string) http.Header {
	h := http.Header{
		"Content-Type":  {"application/json"},
		"Accept":        {o.FileType},
		"Authorization": {"Bearer " + credential},
		"Cache-Control": {"private, no-cache, no-store, must-revalidate"},
		"Expires":       {"-1"},
		"Pragma":        {"no-cache"},
	}
	for k, v := range o.Headers {
		h[k] = []string{v}
	}
	return h
}

func carriesBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPatch
}
