package output

import (
	"github.com/goccy/go-json"

	"github.com/jcroyoaun/compamx/internal/compare"
)

// JSONFormatter renders a comparison as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a comparison
func (jf *JSONFormatter) Format(set *compare.ComparisonSet) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(set, "", "  ")
	} else {
		data, err = json.Marshal(set)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
