package pkg

import (
	cryptoRand "crypto/rand"
	"encoding/hex"
)

// RandHex 重置密码链接用的随机码
func RandHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := cryptoRand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
