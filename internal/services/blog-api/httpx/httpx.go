// Package httpx holds the JSON response helpers shared by the blog-api
// HTTP handlers.
package httpx

import (
	"encoding/json"
	"net/http"
)

type detailBody struct {
	Detail string `json:"detail"`
}

type messageBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error payload in the {"detail": ...} shape.
func Error(w http.ResponseWriter, code int, detail string) {
	JSON(w, code, detailBody{Detail: detail})
}

// Message writes a success notice in the {"message": ...} shape.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, messageBody{Message: msg})
}

// Decode strictly decodes the request body into v.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
