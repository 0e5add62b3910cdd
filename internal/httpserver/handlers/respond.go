package handlers

import (
	"encoding/json"
	"net/http"

	"clientportal/internal/forms"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	respondStatus(w, http.StatusOK, v)
}

func respondStatus(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func respondInvalid(w http.ResponseWriter, errs forms.FieldErrors) {
	respondStatus(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// decode fills dst from the request body. dst usually arrives pre-filled
// with form defaults, which fields absent from the body keep.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
