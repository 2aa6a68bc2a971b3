package http

import "strings"

// PathID extracts the trailing identifier from a path like
// "/v1/users/getUser/{id}". It rejects empty ids and any extra path
// segments after the prefix.
func PathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
