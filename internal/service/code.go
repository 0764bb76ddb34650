package service

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

const (
	minCodeLength = 4
	maxCodeLength = 6

	temporaryPasswordLength = 12
	// 0/O, 1/l/I 처럼 헷갈리는 문자는 뺐다.
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"
)

// generateCode - 앞자리 0을 포함한 length 자리 숫자 문자열
func generateCode(length int) (string, error) {
	if length < minCodeLength || length > maxCodeLength {
		return "", fmt.Errorf("%w: code length %d", ErrMisconfigured, length)
	}
	limit := big.NewInt(1)
	for i := 0; i < length; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}

// codesEqual - 양쪽 모두 공백 제거 후 숫자로만 이뤄져 있어야 하고, 문자열로 정확히 같아야 한다.
// "012345"와 "12345"는 다른 코드다.
func codesEqual(stored, submitted string) bool {
	stored = strings.TrimSpace(stored)
	submitted = strings.TrimSpace(submitted)
	if !isDigits(stored) || !isDigits(submitted) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func randomPassword(length int) (string, error) {
	size := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
