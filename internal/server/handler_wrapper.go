package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	apierrors "github.com/maruel/geoloc/internal/errors"
	"github.com/maruel/geoloc/internal/server/dto"
	"github.com/maruel/geoloc/internal/utils"
)

// Wrap wraps a handler function to work as an http.Handler.
//
// The function must have signature: func(context.Context, *In) (*Out, error)
// where *In implements dto.Validatable. Path and query parameters are
// extracted by tagging string fields with `path:"name"` or `query:"name"`.
//
// Example:
//
//	type LocationRequest struct {
//	    IP string `path:"ip"`
//	}
//
//	func (h *Handler) Lookup(ctx context.Context, req *LocationRequest) (*Response, error)
func Wrap[In any, PtrIn interface {
	*In
	dto.Validatable
}, Out any](fn func(context.Context, PtrIn) (*Out, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		input := new(In)
		populateParams(input, "path", r.PathValue)
		populateParams(input, "query", r.URL.Query().Get)
		if err := PtrIn(input).Validate(); err != nil {
			writeError(ctx, w, err)
			return
		}
		output, err := fn(ctx, PtrIn(input))
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		utils.RespondJSON(w, http.StatusOK, output)
	})
}

// populateParams sets the fields of the struct pointed to by input that carry
// tag, using get to read the value by name. Empty values are skipped.
func populateParams(input any, tag string, get func(string) string) {
	val := reflect.ValueOf(input)
	if val.Kind() != reflect.Ptr {
		return
	}
	elem := val.Elem()
	if elem.Kind() != reflect.Struct {
		return
	}
	typ := elem.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		name := field.Tag.Get(tag)
		if name == "" {
			continue
		}
		v := get(name)
		if v == "" {
			continue
		}
		//nolint:exhaustive // Only string and int parameters are supported.
		switch field.Type.Kind() {
		case reflect.String:
			elem.Field(i).SetString(v)
		case reflect.Int:
			if n, err := strconv.Atoi(v); err == nil {
				elem.Field(i).SetInt(int64(n))
			}
		default:
		}
	}
}

// writeError logs err and writes it. Client errors are logged at a lower
// level than server errors.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ews apierrors.ErrorWithStatus
	if errors.As(err, &ews) {
		status = ews.StatusCode()
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "Handler error", "err", err, "statusCode", status)
	} else {
		slog.DebugContext(ctx, "Request rejected", "err", err, "statusCode", status)
	}
	utils.RespondError(w, err)
}
