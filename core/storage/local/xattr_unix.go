//go:build linux || darwin

package local

import "golang.org/x/sys/unix"

const contentTypeAttr = "user.mime_type"

func writeContentType(path, contentType string) error {
	return unix.Setxattr(path, contentTypeAttr, []byte(contentType), 0)
}

func readContentType(path string) string {
	buf := make([]byte, 256)
	n, err := unix.Getxattr(path, contentTypeAttr, buf)
	if err != nil || n <= 0 {
		return ""
	}
	return string(buf[:n])
}
