package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// callerID reads the authenticated user id placed in the request context by
// the JWT middleware. Zero means unauthenticated.
func callerID(r *http.Request) int {
	id, _ := r.Context().Value("user_id").(int)
	return id
}

func intParam(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}

func floatParam(r *http.Request, name string) float64 {
	v, _ := strconv.ParseFloat(r.URL.Query().Get(name), 64)
	return v
}

func boolParam(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}

// csvParam splits a comma-separated query value, dropping empty entries.
func csvParam(r *http.Request, name string) []string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func csvIntParam(r *http.Request, name string) []int {
	var out []int
	for _, part := range csvParam(r, name) {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}
