package codec

import (
	"gopkg.in/yaml.v3"

	datacls "github.com/reoring/datacls"
)

// YAML returns the YAML codec backed by gopkg.in/yaml.v3.
func YAML() Codec { return yamlCodec{} }

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(r datacls.Record) ([]byte, error) {
	m, err := mapping(r)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(m)
}

func (yamlCodec) Unmarshal(t *datacls.Type, data []byte) (*datacls.Instance, error) {
	var m datacls.OrderedMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return t.NewFromOrdered(m)
}
