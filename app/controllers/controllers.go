// Package controllers binds HTTP requests to the services: decode the
// payload, call the service, map the outcome to a status code. No
// business rules live here.
package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate checks request DTO tags (required fields on login/checkout).
var validate = validator.New()

const maxBodyBytes = 1 << 20 // 1 MB; every payload here is small

// decode reads r's JSON body into dest with a size cap.
func decode(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dest)
}
