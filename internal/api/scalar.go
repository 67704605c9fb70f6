package api

import (
	"bytes"
	"encoding/json"
)

// Scalar is a request field kept as raw text so that a value of the wrong
// type reaches validation instead of failing the whole bind. JSON strings are
// unquoted, numbers and booleans keep their literal text and null leaves the
// field unset.
type Scalar struct {
	value string
	set   bool
}

// NewScalar returns a Scalar holding s.
func NewScalar(s string) Scalar {
	return Scalar{value: s, set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = Scalar{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = NewScalar(str)
		return nil
	}
	*s = NewScalar(string(b))
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for form bodies.
func (s *Scalar) UnmarshalParam(param string) error {
	*s = NewScalar(param)
	return nil
}

// String returns the raw text, or "" when the field was not sent.
func (s Scalar) String() string {
	return s.value
}

// NonEmpty returns nil when the field was not sent or is "".
func (s Scalar) NonEmpty() *string {
	if !s.set || s.value == "" {
		return nil
	}
	v := s.value
	return &v
}
