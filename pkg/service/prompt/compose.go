package prompt

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/civic-lab/sevadesk/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed templates/answer_system.md
var answerTmplRaw string

var answerTmpl = template.Must(template.New("answer_system").Parse(answerTmplRaw))

// answerData holds all data for the answer prompt template
type answerData struct {
	Question string
	Services []*model.ServiceRecord
}

// Compose renders the shortlist and question into the instruction text
// for the completion provider. The output is deterministic for
// identical inputs. An empty shortlist produces the "no matching
// service" variant of the preamble.
func Compose(question string, matches model.MatchResult) (string, error) {
	data := answerData{
		Question: question,
		Services: make([]*model.ServiceRecord, 0, len(matches)),
	}
	for _, match := range matches {
		data.Services = append(data.Services, match.Record)
	}

	var buf bytes.Buffer
	if err := answerTmpl.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute answer prompt template")
	}

	return buf.String(), nil
}
