package paymentrails

import (
	"bytes"
	"encoding/json"
)

// Envelope keys shared by every response document.
const (
	envelopeOK   = "ok"
	envelopeMeta = "meta"
)

func parseEnvelope(body []byte) (map[string]json.RawMessage, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, MalformedResponseError("invalid JSON document: %v", err)
	}

	if envelope == nil {
		return nil, MalformedResponseError("response body is not a JSON object")
	}

	return envelope, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeObject extracts envelope[key] into a T without requiring an id.
func DecodeObject[T any](body []byte, key string) (*T, error) {
	envelope, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	raw, ok := envelope[key]
	if !ok || isNull(raw) {
		return nil, MalformedResponseError("response has no %q object", key)
	}

	var value T

	err = json.Unmarshal(raw, &value)
	if err != nil {
		return nil, MalformedResponseError("decoding %q: %v", key, err)
	}

	return &value, nil
}

// DecodeResource extracts envelope[key] into a T. The resource and every nested
// resource must carry an id.
func DecodeResource[T Resource](body []byte, key string) (*T, error) {
	value, err := DecodeObject[T](body, key)
	if err != nil {
		return nil, err
	}

	err = checkIdentity(*value, key)
	if err != nil {
		return nil, err
	}

	return value, nil
}

// DecodeCollection extracts envelope[key] as a list and envelope["meta"] as its pagination.
// A missing meta block yields a single page holding every item.
func DecodeCollection[T Resource](body []byte, key string) (*Collection[T], error) {
	envelope, err := parseEnvelope(body)
	if err != nil {
		return nil, err
	}

	raw, ok := envelope[key]
	if !ok {
		return nil, MalformedResponseError("response has no %q list", key)
	}

	var items []T

	if !isNull(raw) {
		err = json.Unmarshal(raw, &items)
		if err != nil {
			return nil, MalformedResponseError("decoding %q: %v", key, err)
		}
	}

	for i := range items {
		err = checkIdentity(items[i], key)
		if err != nil {
			return nil, err
		}
	}

	var meta *Meta

	if rawMeta, ok := envelope[envelopeMeta]; ok && !isNull(rawMeta) {
		meta = &Meta{}

		err = json.Unmarshal(rawMeta, meta)
		if err != nil {
			return nil, MalformedResponseError("decoding meta: %v", err)
		}
	}

	return NewCollection(items, meta), nil
}

// DecodeOK reads the "ok" flag of an acknowledgement response. An empty body counts as ok.
func DecodeOK(body []byte) (bool, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return true, nil
	}

	envelope, err := parseEnvelope(body)
	if err != nil {
		return false, err
	}

	raw, ok := envelope[envelopeOK]
	if !ok {
		return true, nil
	}

	var acknowledged bool

	err = json.Unmarshal(raw, &acknowledged)
	if err != nil {
		return false, MalformedResponseError("decoding ok flag: %v", err)
	}

	return acknowledged, nil
}

func checkIdentity(resource Resource, key string) error {
	if resource.ResourceID() == "" {
		return MalformedResponseError("%q is missing its id", key)
	}

	nested, ok := resource.(nestedResources)
	if !ok {
		return nil
	}

	for _, child := range nested.NestedResources() {
		err := checkIdentity(child, key)
		if err != nil {
			return err
		}
	}

	return nil
}
