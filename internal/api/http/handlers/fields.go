package handlers

import (
	"encoding/json"
	"fmt"

	apperrors "github.com/spec-kit/auth-service/pkg/util"
)

// decodeExactFields parses a JSON body that must contain exactly the
// mandatory fields. An unrecognized field and a missing field are distinct
// failures, each named in the error.
func decodeExactFields(body []byte, mandatory []string) (map[string]json.RawMessage, error) {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, apperrors.NewValidationError("Missing JSON in request", nil)
	}

	allowed := make(map[string]struct{}, len(mandatory))
	for _, field := range mandatory {
		allowed[field] = struct{}{}
	}
	for key := range req {
		if _, ok := allowed[key]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s can not be present", key), nil)
		}
	}

	var missing []string
	for _, field := range mandatory {
		if _, ok := req[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("mandatory fields are missing %v", missing),
			map[string]any{"missing": missing},
		)
	}

	return req, nil
}

// stringField extracts a string value from a decoded field map.
func stringField(req map[string]json.RawMessage, key string) (string, error) {
	var val string
	if err := json.Unmarshal(req[key], &val); err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s must be a string", key), nil)
	}
	return val, nil
}

// intField extracts an integer value from a decoded field map.
func intField(req map[string]json.RawMessage, key string) (int64, error) {
	var val int64
	if err := json.Unmarshal(req[key], &val); err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be an integer", key), nil)
	}
	return val, nil
}
