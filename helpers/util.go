package helpers

import (
	"errors"
	"strings"
)

// GetSplitPart splits target around separate and returns the piece at
// index. The router leans on this to carve the host out of a resolved
// URL without a full parse.
func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}
