package etag

import (
	"bytes"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"io"
)

func FromData(data []byte) (string, error) {
	h := sha1.New()
	if _, err := io.Copy(h, bytes.NewReader(data)); err != nil {
		return "", err
	}
	csum := h.Sum(nil)
	return base64.StdEncoding.EncodeToString(csum[:]), nil
}

// FromJSON returns the quoted entity tag of v's JSON encoding.
func FromJSON(v any) (string, []byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", nil, err
	}
	tag, err := FromData(data)
	if err != nil {
		return "", nil, err
	}
	return `"` + tag + `"`, data, nil
}
