package document

import "encoding/json"

// MarshalJSON encodes the document as its line array.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.lines)
}

// UnmarshalJSON decodes a line array produced by MarshalJSON.
func (d *Document) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	d.lines = lines
	return nil
}
