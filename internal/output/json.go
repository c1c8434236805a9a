package output

import (
	"encoding/json"
	"io"

	"github.com/buemura/willie/pkg/types"
)

// JSONFormatter renders results as an indented Report document.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, results []types.AnalysisResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(types.NewReport(results))
}
