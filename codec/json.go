package codec

import "encoding/json"

// JSON encodes with encoding/json. Its output can be read by GoJSON and the
// reverse, so snapshots written with either stay readable by both.
type JSON struct{}

func (JSON) Name() string                       { return "json" }
func (JSON) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// MarshalIndent implements Indenter.
func (JSON) MarshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", indent)
}
