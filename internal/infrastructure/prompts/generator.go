package prompts

import (
	"bytes"
	"regexp"
	"strings"
	"text/template"
)

const taskPromptTemplate = `Task: {{.Task}}

Please analyze this task and provide a detailed step-by-step plan to accomplish it.
Include any relevant web browsing steps, data extraction methods, and potential challenges.
Format the response in a clear, structured way with numbered steps.`

type TaskPromptData struct {
	Task string
}

// GenerateTaskPrompt wraps a raw task description into the prompt sent to
// the provider. The task text itself is inserted unmodified.
func GenerateTaskPrompt(task string) (string, error) {
	tmpl, err := template.New("task").Parse(taskPromptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, TaskPromptData{Task: task}); err != nil {
		return "", err
	}

	return buf.String(), nil
}

var stepLine = regexp.MustCompile(`^\s*(?:\d+[.)]|[-*])\s+(.+)$`)

// ParseSteps extracts the itemized lines (numbered or bulleted) from a
// provider answer. Returns nil when the answer has no list structure.
func ParseSteps(answer string) []string {
	var steps []string
	for _, line := range strings.Split(answer, "\n") {
		if m := stepLine.FindStringSubmatch(line); m != nil {
			steps = append(steps, strings.TrimSpace(m[1]))
		}
	}
	return steps
}
