package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apierrors "github.com/milan604/api-handler/pkg/errors"
)

// ResponseKind tells which payload field of a Response is populated.
type ResponseKind int

const (
	KindJSON ResponseKind = iota
	KindBinary
)

// Response is a decoded 2xx response.
type Response struct {
	Kind        ResponseKind
	StatusCode  int
	ContentType string
	// JSON holds the decoded body when Kind is KindJSON.
	JSON any
	// Binary holds the raw body when Kind is KindBinary.
	Binary []byte
}

// IsBinary reports whether the body was returned undecoded.
func (r *Response) IsBinary() bool { return r.Kind == KindBinary }

// DecodeInto converts a JSON response into T.
func DecodeInto[T any](r *Response) (T, error) {
	var out T
	if r.IsBinary() {
		return out, json.Unmarshal(r.Binary, &out)
	}
	b, err := json.Marshal(r.JSON)
	if err != nil {
		return out, err
	}
	return out, json.Unmarshal(b, &out)
}

// decodeResponse returns the raw body when a non-JSON media type was expected
// and the declared content type contains it; otherwise the whole body must be
// a single JSON value.
func decodeResponse(resp *http.Response, fileType string) (*Response, error) {
	out := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.StageRead)
	}

	if fileType != DefaultFileType && strings.Contains(out.ContentType, fileType) {
		out.Kind = KindBinary
		out.Binary = b
		return out, nil
	}

	if err := json.Unmarshal(b, &out.JSON); err != nil {
		return nil, apierrors.Wrap(err, apierrors.StageDecode)
	}
	out.Kind = KindJSON
	return out, nil
}
