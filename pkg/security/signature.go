package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Sign computes the gateway MAC over the given fields: the base string is
// "name1=value1,name2=value2,..." strictly in fieldNames order, a missing
// field serializes as an empty value, and the HMAC-SHA256 digest is encoded
// as standard Base64. Both signer and verifier must use the exact same field
// list and order.
func Sign(secret string, fieldNames []string, fields map[string]string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(baseString(fieldNames, fields)))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify recomputes the MAC and compares it against the candidate in
// constant time. A false return is an authoritative reject signal.
func Verify(secret string, fieldNames []string, fields map[string]string, candidate string) bool {
	want := Sign(secret, fieldNames, fields)

	return hmac.Equal([]byte(want), []byte(candidate))
}

func baseString(fieldNames []string, fields map[string]string) string {
	var b strings.Builder

	for i, name := range fieldNames {
		if i > 0 {
			b.WriteByte(',')
		}

		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(fields[name])
	}

	return b.String()
}
