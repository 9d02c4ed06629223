package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/xy-planning-network/relay"
)

const invalidJSONMsg = "Invalid JSON payload received."

// A Schema checks decoded request data, returning a message describing
// what is wrong with it or the empty string when data is acceptable.
type Schema interface {
	Validate(data any) string
}

// The SchemaFunc type is an adapter to allow the use of ordinary functions as a Schema.
type SchemaFunc func(data any) string

// Validate calls fn(data).
func (fn SchemaFunc) Validate(data any) string { return fn(data) }

// A Parser decodes request bodies and checks them before handlers see them.
type Parser struct {
	v *Validator
}

func NewParser() *Parser {
	return &Parser{v: NewValidator()}
}

// ParseBody decodes into a pointer to a struct the JSON data in *http.Request.Body.
// If successful, ParseBody runs validation against the contents,
// returning an *InvalidArgumentError if the data fails validation rules
// set by "validate" struct tags.
//
// ParseBody reads the entire r.Body and can't be read from again.
// Use a [io.TeeReader] if r.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("relay/http/req: %w: ParseBody called with non-pointer: %s", relay.ErrBadAny, err)
	}

	if err != nil {
		return newInvalidArgErr(invalidJSONMsg, err)
	}

	if err := p.v.Struct(structPtr); err != nil {
		var verrs ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		return newInvalidArgErr(verrs.Error(), verrs)
	}

	return nil
}

// ParseBodyWithSchema decodes the JSON data in body and checks it with s,
// returning the decoded data.
//
// A body that is not JSON is handed to s as nil,
// leaving s to decide whether a missing payload is acceptable.
// When s reports a problem, ParseBodyWithSchema returns an *InvalidArgumentError carrying its message.
func (p *Parser) ParseBodyWithSchema(body io.Reader, s Schema) (any, error) {
	if s == nil {
		return nil, fmt.Errorf("relay/http/req: %w: nil Schema", relay.ErrBadAny)
	}

	var data any
	if err := json.NewDecoder(body).Decode(&data); err != nil {
		data = nil
	}

	if msg := s.Validate(data); msg != "" {
		return nil, newInvalidArgErr(msg, nil)
	}

	return data, nil
}
