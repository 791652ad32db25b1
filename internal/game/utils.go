package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// CodeChecker reports whether a table code is already taken
type CodeChecker interface {
	Exists(code string) bool
}

// GenerateTableCode creates a random table code
func GenerateTableCode() string {
	code := make([]byte, TableCodeLength)
	for i := range TableCodeLength {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(TableCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = TableCodeChars[rand.Intn(len(TableCodeChars))]
			continue
		}
		code[i] = TableCodeChars[n.Int64()]
	}
	return string(code)
}

// GetUniqueTableCode generates a code not yet known to c
func GetUniqueTableCode(c CodeChecker) string {
	for {
		code := GenerateTableCode()
		if !c.Exists(code) {
			return code
		}
	}
}

// TablePath returns the URL path of a table page, or of one of its subresources
func TablePath(code string, sub ...string) string {
	path := "/table/" + code
	for _, s := range sub {
		path += "/" + s
	}
	return path
}
