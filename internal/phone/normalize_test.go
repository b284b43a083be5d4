package phone

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRules(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"mobile with trunk zero", "0933123456", "+963933123456"},
		{"mobile without trunk zero", "933123456", "+963933123456"},
		{"landline with trunk zero", "0112345678", "+963112345678"},
		{"already canonical", "+963933123456", "+963933123456"},
		{"bare calling code", "963933123456", "+963933123456"},
		{"spaces and hyphens", " 0933-123 456 ", "+963933123456"},
		{"parentheses", "(011) 234-5678", "+963112345678"},
		{"tabs and newlines", "0933\t123\n456", "+963933123456"},
		{"foreign number untouched", "+1 (202) 555-0123", "+12025550123"},
		{"garbage untouched", "abc", "abc"},
		{"short digits untouched", "12345", "12345"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func randomDigits(r *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + r.Intn(10)))
	}
	return b.String()
}

func TestNormalizeMobileWithTrunkZeroProperty(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		s := "09" + randomDigits(r, 8)
		assert.Equal(t, "+963"+s[1:], Normalize(s), "input %s", s)
	}
}

func TestNormalizeNineDigitMobileProperty(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		s := "9" + randomDigits(r, 8)
		assert.Equal(t, "+963"+s, Normalize(s), "input %s", s)
	}
}

func TestNormalizeIdempotentOnCanonical(t *testing.T) {
	inputs := []string{"0933123456", "933123456", "0112345678", "963944556677", "+963933123456"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %s", in)
	}
}

func TestNewNormalizerCustomPrefix(t *testing.T) {
	n := NewNormalizer("962")
	assert.Equal(t, "+962791234567", n.Normalize("0791234567"))
	assert.Equal(t, "+962791234567", n.Normalize("962791234567"))

	assert.Equal(t, "+963933123456", NewNormalizer("").Normalize("0933123456"))
}
