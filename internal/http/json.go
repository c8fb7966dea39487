package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/uni-magazine/portal/internal/adapters/portalapi"
	apperrors "github.com/uni-magazine/portal/internal/errors"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w) // client disconnects cannot be recovered here
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteAppError maps err onto the application taxonomy and writes it as JSON.
func WriteAppError(w http.ResponseWriter, err error) {
	appErr := portalapi.AsAppError(apperrors.MapContextError(err))
	WriteError(w, ErrorParams{
		Code:    apperrors.HTTPStatus(appErr.Code),
		ErrCode: string(appErr.Code),
		Err:     appErr,
	})
}
