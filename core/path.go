package core

import "strings"

// ParentOf computes the parent of a remote path by string manipulation
// alone; it never consults the remote filesystem, so treat the result as a
// navigation aid rather than an authoritative answer. The second return is
// false when the path has no parent ("" or "/").
func ParentOf(path string) (string, bool) {
	if path == "" || path == "/" {
		return "", false
	}
	path = strings.TrimSuffix(path, "/")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 {
		return "/", true
	}
	return path[:idx], true
}
