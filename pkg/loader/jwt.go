package loader

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/oakwood-commons/jsonedit/pkg/document"
)

// IsJWT reports whether input looks like a JWT: three base64url parts, the
// first two decoding to JSON objects. A "Bearer " prefix is ignored.
func IsJWT(input string) bool {
	parts, ok := jwtParts(input)
	if !ok {
		return false
	}
	for _, part := range parts[:2] {
		if _, err := decodeJWTPart(part); err != nil {
			return false
		}
	}
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// DecodeJWT returns an object with the token's header, payload and raw
// signature. Header and payload members keep their encoded order.
func DecodeJWT(input string) (any, error) {
	parts, ok := jwtParts(input)
	if !ok {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts")
	}
	header, err := decodeJWTPart(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}
	payload, err := decodeJWTPart(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}
	return document.Object{
		{Key: "header", Value: header},
		{Key: "payload", Value: payload},
		{Key: "signature", Value: parts[2]},
	}, nil
}

func jwtParts(input string) ([]string, bool) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "Bearer "))
	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, false
	}
	for _, p := range parts {
		if p == "" {
			return nil, false
		}
	}
	return parts, true
}

func decodeJWTPart(part string) (document.Object, error) {
	raw, err := base64.RawURLEncoding.DecodeString(part)
	if err != nil {
		return nil, err
	}
	v, err := document.Parse(raw)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(document.Object)
	if !ok {
		return nil, fmt.Errorf("not a JSON object")
	}
	return obj, nil
}
