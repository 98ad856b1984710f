//go:build !linux && !darwin

package local

import "errors"

var errNoXattr = errors.New("local: extended attributes not supported")

func writeContentType(string, string) error {
	return errNoXattr
}

func readContentType(string) string {
	return ""
}
