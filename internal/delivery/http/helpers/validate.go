package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// maxBodyBytes caps request bodies; every DTO in this API is small.
const maxBodyBytes = 1 << 20

// Validator is implemented by request DTOs. Validate returns one message per
// problem; empty means the DTO is acceptable.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the JSON body into dest, rejecting unknown fields,
// then runs dest's Validate when it has one. Any failure is written as a 400
// envelope and false is returned; the caller returns immediately on false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if v, ok := dest.(Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(errs, "; "))
			return false
		}
	}
	return true
}
