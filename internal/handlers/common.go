// Package handlers implements the /api/v1 route handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/dmelnyk-dev/salonbook/internal/httpx"
)

// moneyRe accepts the fixed-point format the NUMERIC(10,2) currency columns
// store. Anything else would be rejected by the database with an opaque cast
// error, so the handlers check it up front.
var moneyRe = regexp.MustCompile(`^[0-9]{1,8}(\.[0-9]{1,2})?$`)

func validMoney(s string) bool {
	return moneyRe.MatchString(s)
}

// decodeJSON parses the request body into dst, rejecting unknown fields so
// typos in payloads fail loudly instead of silently no-oping.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// pathID parses the {id} path segment. A non-numeric id is a client error,
// not a missing resource.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		httpx.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

// pageParams reads the skip/limit query parameters. Absent values fall back
// to 0/100; malformed values are a 400.
func pageParams(w http.ResponseWriter, r *http.Request) (skip, limit int, ok bool) {
	q := r.URL.Query()
	skip, ok = intParam(w, q.Get("skip"), 0, "skip")
	if !ok {
		return 0, 0, false
	}
	limit, ok = intParam(w, q.Get("limit"), 100, "limit")
	if !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

type deleteResponse struct {
	Message string `json:"message"`
}

func intParam(w http.ResponseWriter, raw string, def int, name string) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		httpx.BadRequest(w, "invalid "+name)
		return 0, false
	}
	return n, true
}
