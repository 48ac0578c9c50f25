package event

import "encoding/json"

// DecodePayload returns the payload as T. In-process payloads are already the
// right struct; anything else (a map from a replayed or remote event) goes
// through a JSON round trip.
func DecodePayload[T any](input any) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	err = json.Unmarshal(data, &result)
	return result, err
}
