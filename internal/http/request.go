package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/davidbz/orator/internal/domain"
)

const maxBodyBytes = 1 << 20

// Language request bodies. Speech bodies decode straight into the speech briefs.
type textRequest struct {
	Text string `json:"text"`
}

func (r textRequest) Validate() error {
	return domain.RequireText("text", r.Text)
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

func (r translateRequest) Validate() error {
	return domain.RequireText("text", r.Text, "target_lang", r.TargetLang)
}

type languageRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

func (r languageRequest) Validate() error {
	return domain.RequireText("text", r.Text, "lang", r.Lang)
}

type validator interface {
	Validate() error
}

// decode reads a JSON object into dst. Every required field must be present
// and non-null; text fields are then checked on the decoded values, so
// case-folded and duplicate keys resolve exactly as encoding/json does.
func decode(r *http.Request, dst validator, required ...string) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return domain.Validation("failed to read request body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.Validation("request body must be a JSON object")
	}

	// encoding/json matches keys case-insensitively.
	present := make(map[string]bool, len(fields))
	for name, raw := range fields {
		if !bytes.Equal(raw, []byte("null")) {
			present[strings.ToLower(name)] = true
		}
	}
	for _, name := range required {
		if !present[name] {
			return domain.Validation("field %q is required", name)
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.Validation("field %q must be of type %s", typeErr.Field, typeErr.Type)
		}
		return domain.Validation("invalid request body")
	}

	return dst.Validate()
}
