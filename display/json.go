package display

import (
	"bytes"
	"encoding/json"
	"io"
)

// MarshalJSON renders v indented and without HTML escaping
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteJSON writes v to w followed by a newline
func WriteJSON(w io.Writer, v interface{}) error {
	return encode(w, v)
}

func encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
