package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// requestEnvelope is the JSON body shape for a GraphQL HTTP request.
type requestEnvelope struct {
	Query     string          `json:"query"`
	Variables json.RawMessage `json:"variables"`
}

// responseEnvelope is the JSON body shape for a GraphQL HTTP response.
type responseEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors ErrorList       `json:"errors"`
}

var jsonNull = []byte("null")

// Encode serializes query and variables into a request body of the form
// {"query": ..., "variables": {...}}. A nil variables value (nil map, nil
// pointer) is sent as an empty object. Encode fails only when variables
// cannot be marshalled or does not marshal to a JSON object.
func Encode(query string, variables any) ([]byte, error) {
	vars, err := json.Marshal(variables)
	if err != nil {
		return nil, fmt.Errorf("marshal variables: %w", err)
	}
	if bytes.Equal(vars, jsonNull) {
		vars = []byte("{}")
	}
	if vars[0] != '{' {
		return nil, fmt.Errorf("variables must encode to a JSON object, got %s", vars)
	}

	body, err := json.Marshal(requestEnvelope{Query: query, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return body, nil
}

// Decode unwraps a response body into D.
//
// A body that is not a valid envelope, or whose data does not fit D, yields
// a KindDecode error, as does an error entry that is null or has no
// message. A non-empty errors array yields a KindProtocol error even when
// data is present; in that case the data is still decoded and returned, and
// the error's Partial flag is set. An envelope with neither
// data nor errors yields a KindDecode "malformed response" error. Whenever
// no data could be decoded the placeholder value of D is returned.
func Decode[D ResponseData[D]](body []byte) (D, error) {
	var zero D
	placeholder := zero.Placeholder()

	var env responseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return placeholder, newError(KindDecode, err, fmt.Sprintf("decode response: %v", err))
	}

	hasData := len(env.Data) > 0 && !bytes.Equal(env.Data, jsonNull)

	if len(env.Errors) > 0 {
		for _, d := range env.Errors {
			if d == nil || d.Message == "" {
				return placeholder, newError(KindDecode, errMalformedEntry, errMalformedEntry.Error())
			}
		}
		perr := &Error{Kind: KindProtocol, Details: env.Errors}
		if hasData {
			var partial D
			if err := json.Unmarshal(env.Data, &partial); err == nil {
				perr.Partial = true
				return partial, perr
			}
		}
		return placeholder, perr
	}

	if !hasData {
		return placeholder, newError(KindDecode, errMalformed, errMalformed.Error())
	}

	var data D
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return placeholder, newError(KindDecode, err, fmt.Sprintf("decode data: %v", err))
	}
	return data, nil
}
