package codec

import (
	"fmt"

	json "github.com/goccy/go-json"

	datacls "github.com/reoring/datacls"
	"github.com/reoring/datacls/internal/dupkeys"
)

// JSON returns the JSON codec backed by goccy/go-json.
func JSON() Codec { return jsonCodec{} }

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(r datacls.Record) ([]byte, error) {
	m, err := mapping(r)
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Unmarshal rejects objects that repeat a key, at any depth, before
// decoding.
func (jsonCodec) Unmarshal(t *datacls.Type, data []byte) (*datacls.Instance, error) {
	if err := RejectDuplicateKeys(data); err != nil {
		return nil, err
	}
	var m datacls.OrderedMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return t.NewFromOrdered(m)
}

// maxDuplicateIssues caps the issues reported for one document.
const maxDuplicateIssues = 10

// RejectDuplicateKeys returns Issues with code duplicate_key for every key
// repeated inside one JSON object of data.
func RejectDuplicateKeys(data []byte) error {
	dups, err := dupkeys.Find(data, maxDuplicateIssues)
	if err != nil {
		return err
	}
	var iss datacls.Issues
	for _, d := range dups {
		iss = datacls.AppendIssues(iss, datacls.IssueAt(d.Path, datacls.CodeDuplicateKey, fmt.Sprintf("key %q appears more than once", d.Key)))
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}
