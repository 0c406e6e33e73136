package jsonutil

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// WriteJSON encodes data and writes it with the given status. Encoding happens
// before any header is written so a marshal failure can still become a 500.
func WriteJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)

	return err
}

// DecodeStrict decodes a single JSON value from r, rejecting unknown fields
// and trailing data.
func DecodeStrict(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	if dec.More() {
		return fmt.Errorf("decode json: unexpected data after the top-level value")
	}

	return nil
}
