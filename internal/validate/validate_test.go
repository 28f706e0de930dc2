package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name   string
		build  func(v *Validator)
		fields []string
	}{
		{name: "required ok", build: func(v *Validator) { v.Required("f", "x") }},
		{name: "required blank", build: func(v *Validator) { v.Required("f", "   ") }, fields: []string{"f"}},
		{name: "min len", build: func(v *Validator) { v.MinLen("pw", "abc", 8) }, fields: []string{"pw"}},
		{name: "email ok", build: func(v *Validator) { v.Email("email", "ada@example.com") }},
		{name: "email bad", build: func(v *Validator) { v.Email("email", "ada@") }, fields: []string{"email"}},
		{name: "url ok", build: func(v *Validator) { v.AbsoluteURL("fullUrl", "https://example.com/a?b=c") }},
		{name: "url relative", build: func(v *Validator) { v.AbsoluteURL("fullUrl", "/path") }, fields: []string{"fullUrl"}},
		{name: "url ftp", build: func(v *Validator) { v.AbsoluteURL("fullUrl", "ftp://example.com") }, fields: []string{"fullUrl"}},
		{name: "alias empty allowed", build: func(v *Validator) { v.Alias("shortUrl", "") }},
		{name: "alias ok", build: func(v *Validator) { v.Alias("shortUrl", "my_Alias-1") }},
		{name: "alias slash", build: func(v *Validator) { v.Alias("shortUrl", "a/b") }, fields: []string{"shortUrl"}},
		{name: "equal", build: func(v *Validator) { v.Equal("confirm", "a", "b", "mismatch") }, fields: []string{"confirm"}},
		{
			name:   "collects all",
			build:  func(v *Validator) { v.Required("a", "").Email("b", "nope").MinLen("c", "x", 2) },
			fields: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Validator{}
			tt.build(v)
			err := v.Err()
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}
			var ve *Error
			require.True(t, errors.As(err, &ve))
			got := make([]string, 0, len(ve.Fields))
			for _, f := range ve.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestError_Message(t *testing.T) {
	err := (&Validator{}).Required("email", "").Equal("confirm", "a", "b", "Passwords do not match").Err()
	require.EqualError(t, err, "validation failed: email: This field is required; confirm: Passwords do not match")
}
