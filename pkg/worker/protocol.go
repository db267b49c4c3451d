package worker

import (
	"github.com/grovetools/jsonview/errors"
	"github.com/grovetools/jsonview/pkg/format"
	"github.com/grovetools/jsonview/pkg/jsonvalue"
)

// OpType names an operation a worker can perform.
type OpType string

const (
	OpParse     OpType = "parse"
	OpStringify OpType = "stringify"
	OpBeautify  OpType = "beautify"
	OpMinify    OpType = "minify"
)

// Request is a unit of work. Payload depends on Type:
//
//	parse      string: JSON text
//	stringify  any value
//	beautify   {"text": string, "indent": number or "tab"}
//	minify     string: JSON text
type Request struct {
	ID      string          `json:"id"`
	Type    OpType          `json:"type"`
	Payload jsonvalue.Value `json:"payload"`
}

// Response answers the Request with the same ID. Result is set when
// Success is true, Error otherwise.
type Response struct {
	ID      string          `json:"id"`
	Success bool            `json:"success"`
	Result  jsonvalue.Value `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Err returns nil for a successful response, otherwise a coded error
// carrying the response message.
func (r Response) Err() error {
	if r.Success {
		return nil
	}
	code := errors.ErrorCode(r.Code)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.New(code, r.Error)
}

// Handle performs req synchronously. It never panics on bad payloads;
// failures are reported in the Response.
func Handle(req Request) Response {
	result, err := handle(req)
	if err != nil {
		resp := Response{ID: req.ID, Error: err.Error()}
		if coded, ok := err.(*errors.CodedError); ok {
			resp.Error = coded.Message
			resp.Code = string(coded.Code)
		}
		return resp
	}
	return Response{ID: req.ID, Success: true, Result: result}
}

func handle(req Request) (jsonvalue.Value, error) {
	switch req.Type {
	case OpParse:
		text, err := textPayload(req.Payload, true)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return parse(text)

	case OpStringify:
		return jsonvalue.String(jsonvalue.Marshal(req.Payload, "")), nil

	case OpBeautify:
		text, err := textPayload(req.Payload.Get("text"))
		if err != nil {
			return jsonvalue.Value{}, err
		}
		indent, err := indentPayload(req.Payload.Get("indent"))
		if err != nil {
			return jsonvalue.Value{}, err
		}
		v, err := parse(text)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.String(jsonvalue.Marshal(v, indent.Unit())), nil

	case OpMinify:
		text, err := textPayload(req.Payload, true)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		v, err := parse(text)
		if err != nil {
			return jsonvalue.Value{}, err
		}
		return jsonvalue.String(jsonvalue.Marshal(v, "")), nil
	}

	return jsonvalue.Value{}, errors.UnknownOperation(string(req.Type))
}

func parse(text string) (jsonvalue.Value, error) {
	r := format.Validate(text)
	if r.Error != nil {
		return jsonvalue.Value{}, errors.New(errors.ErrCodeInvalidJSON, r.Error.Message).
			WithDetail("line", r.Error.Line).
			WithDetail("column", r.Error.Column)
	}
	return r.Value, nil
}

func textPayload(v jsonvalue.Value, present bool) (string, error) {
	if !present {
		return "", errors.New(errors.ErrCodeInvalidInput, "payload is missing the text field")
	}
	if v.Kind() != jsonvalue.KindString {
		return "", errors.New(errors.ErrCodeInvalidInput, "payload must be a string").
			WithDetail("kind", v.Kind().String())
	}
	return v.Str(), nil
}

// indentPayload mirrors JSON.stringify's space argument: a falsy value means
// two spaces, numbers count spaces and "tab" or "\t" selects tabs.
func indentPayload(v jsonvalue.Value, ok bool) (format.Indent, error) {
	if !ok {
		return format.DefaultIndent, nil
	}
	switch v.Kind() {
	case jsonvalue.KindNull:
		return format.DefaultIndent, nil
	case jsonvalue.KindNumber:
		if v.Float() == 0 {
			return format.DefaultIndent, nil
		}
		return format.Spaces(int(v.Float())), nil
	case jsonvalue.KindString:
		if v.Str() == "" {
			return format.DefaultIndent, nil
		}
		return format.ParseIndent(v.Str())
	}
	return format.Indent{}, errors.New(errors.ErrCodeInvalidInput, "indent must be a number or \"tab\"")
}
