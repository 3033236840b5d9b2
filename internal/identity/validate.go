// Package identity validates the nickname/secret form used to create an
// anonymous identity and hashes secrets for local storage.
package identity

import (
	"encoding/json"
	"regexp"
	"sort"
	"unicode/utf8"
)

// Field names a form input that can carry a validation error.
type Field string

const (
	FieldNickName      Field = "nickName"
	FieldSecret        Field = "secret"
	FieldSecretConfirm Field = "secretConfirm"
	FieldStrength      Field = "strength"
)

// Length bounds, counted in characters.
const (
	MinNickNameLength = 5
	MinSecretLength   = 6
	MaxLength         = 100
)

// MinStrength is the lowest accepted strength score (0-4 scale).
const MinStrength = 3

const (
	MsgNickNameFormat  = "Nickname wrong format."
	MsgNickNameShort   = "Nickname too short."
	MsgNickNameLong    = "Nickname too long."
	MsgSecretShort     = "Secret too short."
	MsgSecretLong      = "Secret too long."
	MsgSecretMismatch  = "Secret does not match Secret Confirm."
	MsgSecretNotSecure = "Secret is not secure."
)

// nickNamePattern matches 5 to 100 Unicode word characters or hyphens. Word
// characters are letters, marks, decimal digits, letter numbers, connector
// punctuation (which includes '_') and the ZWNJ/ZWJ joiners.
var nickNamePattern = regexp.MustCompile(`(?i)^[\p{L}\p{Nl}\p{M}\p{Nd}\p{Pc}\x{200C}\x{200D}-]{5,100}$`)

// Errors maps fields to the message describing why they are invalid. A field
// with no entry passes. The zero value has no errors.
type Errors struct {
	m map[Field]string
}

// Get returns the message for f, if any.
func (e Errors) Get(f Field) (string, bool) {
	msg, ok := e.m[f]
	return msg, ok
}

// Has reports whether f is invalid.
func (e Errors) Has(f Field) bool {
	_, ok := e.m[f]
	return ok
}

// Len returns the number of invalid fields.
func (e Errors) Len() int { return len(e.m) }

// Fields returns the invalid fields in name order.
func (e Errors) Fields() []Field {
	fields := make([]Field, 0, len(e.m))
	for f := range e.m {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Map returns a copy of the errors keyed by field name.
func (e Errors) Map() map[string]string {
	out := make(map[string]string, len(e.m))
	for f, msg := range e.m {
		out[string(f)] = msg
	}
	return out
}

// MarshalJSON renders the errors as {"field": "message"}.
func (e Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// Validate checks an identity form. Rules run in a fixed order and a later
// rule overwrites an earlier message for the same field. No secret rule runs
// while the secret is empty.
func Validate(nickName, secret, secretConfirm string, strength int) Errors {
	m := make(map[Field]string)

	if !nickNamePattern.MatchString(nickName) {
		m[FieldNickName] = MsgNickNameFormat
	}
	switch n := utf8.RuneCountInString(nickName); {
	case n < MinNickNameLength:
		m[FieldNickName] = MsgNickNameShort
	case n > MaxLength:
		m[FieldNickName] = MsgNickNameLong
	}

	if secret == "" {
		return Errors{m: m}
	}

	switch n := utf8.RuneCountInString(secret); {
	case n < MinSecretLength:
		m[FieldSecret] = MsgSecretShort
	case n > MaxLength:
		m[FieldSecret] = MsgSecretLong
	}
	if secret != secretConfirm {
		m[FieldSecretConfirm] = MsgSecretMismatch
	}
	if strength < MinStrength {
		m[FieldStrength] = MsgSecretNotSecure
	}
	return Errors{m: m}
}

// CanSubmit reports whether a form that produced errs may be submitted.
func CanSubmit(errs Errors, secret string) bool {
	return errs.Len() == 0 && secret != ""
}
