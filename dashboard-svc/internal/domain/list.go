package domain

import "encoding/json"

// StringList is a list-valued field as sent by the server. Anything that is
// not a JSON array of strings decodes to an empty list instead of failing the
// whole payload.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}
