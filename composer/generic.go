package composer

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/musebox/musesummoner/entity"
	"github.com/musebox/musesummoner/task"
)

// Muses without a bespoke pool degrade to a single generic template
// referencing the task type and a random catchphrase.
var genericBodyTmpl = template.Must(
	template.New("generic_body").
		Funcs(sprig.FuncMap()).
		Parse(`I'm here to help you with {{ .TaskType | replace "_" " " }}.{{ if .Catchphrase }} {{ .Catchphrase }}{{ end }}`),
)

func (c *Composer) genericBody(m *entity.Muse, taskType task.Type) string {
	var catchphrase string
	if len(m.Catchphrases) > 0 {
		catchphrase = c.pick(m.Catchphrases)
	}

	var sb strings.Builder
	if err := genericBodyTmpl.Execute(&sb, map[string]any{
		"TaskType":    string(taskType),
		"Catchphrase": catchphrase,
	}); err != nil {
		c.logger.Warn("failed to render generic body", "muse", m.Name, "err", err)
		return "I'm here to help you with " + taskType.DisplayName() + "."
	}

	return sb.String()
}
