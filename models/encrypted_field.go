package models

import "encoding/json"

// EncryptedField is one protected value at rest. It is either sealed
// (Data/IV/AuthTag hex strings, IsEncrypted true) or plain (Plain holds the
// original value, IsEncrypted false). Pre-existing unencrypted data stays in
// the plain variant and is passed through unchanged.
type EncryptedField struct {
	Data        string `json:"data,omitempty" bson:"data,omitempty"`
	IV          string `json:"iv,omitempty" bson:"iv,omitempty"`
	AuthTag     string `json:"authTag,omitempty" bson:"authTag,omitempty"`
	IsEncrypted bool   `json:"isEncrypted" bson:"isEncrypted"`
	Plain       string `json:"plain,omitempty" bson:"plain,omitempty"`
}

// PlainField wraps an unprotected value.
func PlainField(value string) EncryptedField {
	return EncryptedField{Plain: value}
}

// Sealed reports whether the field carries ciphertext.
func (f EncryptedField) Sealed() bool {
	return f.IsEncrypted
}

// MarshalJSON renders the plain variant as its underlying value so API
// responses carry decrypted content transparently. If Plain itself is JSON
// (opaque metric blobs) it is emitted as-is, otherwise as a string. Sealed
// fields marshal as the full envelope.
func (f EncryptedField) MarshalJSON() ([]byte, error) {
	if !f.IsEncrypted {
		raw := []byte(f.Plain)
		if json.Valid(raw) && f.Plain != "" {
			return raw, nil
		}
		return json.Marshal(f.Plain)
	}
	type envelope EncryptedField
	return json.Marshal(envelope(f))
}

// UnmarshalJSON accepts either a stored envelope or a bare value. Bare values
// (strings, numbers, objects such as metric blobs) land in the plain variant;
// envelopes with isEncrypted set keep their ciphertext tuple intact.
func (f *EncryptedField) UnmarshalJSON(raw []byte) error {
	type envelope EncryptedField
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.IsEncrypted {
		*f = EncryptedField(env)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*f = EncryptedField{Plain: s}
		return nil
	}
	*f = EncryptedField{Plain: string(raw)}
	return nil
}
