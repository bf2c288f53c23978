package main

import "strings"

// mattnDSN rewrites modernc-style pragma parameters, _pragma=name(value), into
// the _name=value form understood by github.com/mattn/go-sqlite3. Other
// parameters pass through unchanged.
func mattnDSN(dsn string) string {
	path, query, ok := strings.Cut(dsn, "?")
	if !ok {
		return dsn
	}

	params := strings.Split(query, "&")
	for i, param := range params {
		pragma, found := strings.CutPrefix(param, "_pragma=")
		if !found {
			continue
		}
		name, value, found := strings.Cut(pragma, "(")
		if !found || !strings.HasSuffix(value, ")") {
			continue
		}
		params[i] = "_" + name + "=" + strings.TrimSuffix(value, ")")
	}
	return path + "?" + strings.Join(params, "&")
}
