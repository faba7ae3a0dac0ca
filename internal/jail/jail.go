// Package jail implements the server's path translation rules: a
// non-admin user's requests are confined to their own home directory,
// while an admin's requests see the raw volume namespace.
package jail

import (
	"errors"
	"path"
	"strings"
)

// ErrTraversal is returned when a path attempts to escape its jail via "..".
var ErrTraversal = errors.New("jail: path traversal rejected")

const homeRoot = "/home"

// Translate maps a client-supplied path to its real location within
// the volume's directory tree, given the requesting user's username
// and whether they hold the admin role.
//
// Rules, applied in order:
//  1. Admins see the volume's raw namespace unchanged.
//  2. Reject any path containing the substring ".." outright.
//  3. A non-admin's path is always relative to /home/<username>,
//     regardless of whether it is written as absolute or relative.
//  4. "/" or "" for a non-admin resolves to their own home directory.
//  5. The result is always cleaned to a canonical slash-separated form.
func Translate(username string, isAdmin bool, reqPath string) (string, error) {
	if isAdmin {
		return clean(reqPath), nil
	}
	if containsTraversal(reqPath) {
		return "", ErrTraversal
	}
	home := homeRoot + "/" + username
	trimmed := strings.TrimPrefix(reqPath, "/")
	if trimmed == "" || trimmed == "." {
		return clean(home), nil
	}
	return clean(home + "/" + trimmed), nil
}

func containsTraversal(p string) bool {
	return strings.Contains(p, "..")
}

func clean(p string) string {
	if p == "" {
		p = "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
