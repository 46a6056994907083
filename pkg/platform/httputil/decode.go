package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	dErrors "weddingapi/pkg/domain-errors"
)

// DecodeJSON decodes a JSON request body into the target type.
// Returns the decoded value and true on success.
// On failure, writes an error response and returns nil, false.
//
// A field holding the wrong JSON type is reported against that field
// ("MalePrincipalSponsor must be a string"); any other decode failure is a
// generic bad request.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := decodeExactKeys(r.Body, &req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, decodeError(err))
		return nil, false
	}
	return &req, true
}

// decodeExactKeys decodes a JSON object into target, binding only keys that
// match a field's JSON name exactly. encoding/json alone would also bind
// "maleprincipalsponsor" to MalePrincipalSponsor; such keys are dropped like
// any other unknown key.
func decodeExactKeys(body io.Reader, target any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	known := jsonFieldNames(reflect.TypeOf(target))
	if known == nil {
		return json.Unmarshal(data, target)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Not an object; the typed decode reports the failure.
		return json.Unmarshal(data, target)
	}
	for key := range fields {
		if _, ok := known[key]; !ok {
			delete(fields, key)
		}
	}
	exact, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(exact, target)
}

// jsonFieldNames returns the JSON names of the exported fields of the struct t
// points to, or nil when t is not a pointer to a struct.
func jsonFieldNames(t reflect.Type) map[string]struct{} {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil
	}
	st := t.Elem()
	names := make(map[string]struct{}, st.NumField())
	for i := range st.NumField() {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names[name] = struct{}{}
	}
	return names
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return dErrors.Invalid(typeErr.Field, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind()))
	}
	return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
}

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization.
type Normalizable interface {
	Normalize()
}

// PrepareRequest validates and then normalizes a request.
//
// Validation runs first so that a value which only becomes empty after
// trimming is still accepted; the remote store then receives the trimmed value.
func PrepareRequest(req any) error {
	if v, ok := req.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	return nil
}

// DecodeAndPrepare combines JSON decoding with request preparation.
//
// Usage:
//
//	req, ok := httputil.DecodeAndPrepare[models.CreateRequest](w, r, h.logger, ctx, requestID)
//	if !ok {
//	    return
//	}
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}
	if err := PrepareRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestID,
		)
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			WriteError(w, err)
		} else {
			WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return nil, false
	}
	return req, true
}
