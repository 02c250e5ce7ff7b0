package platform

import (
	"bytes"
	"log"
	"os/exec"
	"strings"

	"github.com/plandes/rend/internal/config"
	"github.com/plandes/rend/internal/model"
)

const commandDisplayLen = 40

// run executes a command, classifying any failure against the configured
// automation-error table: ignored failures are suppressed, warnings are
// logged, everything else returns an AutomationError.
func run(settings *config.Settings, stdin string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(stderr.String())
		if output == "" {
			output = err.Error()
		}
		display := shorten(strings.Join(append([]string{name}, args...), " "))
		switch settings.ClassifyAutomationOutput(output) {
		case model.SeverityIgnore:
		case model.SeverityWarning:
			log.Printf("rend: %s: %s", display, output)
		default:
			return "", &model.AutomationError{Command: display, Output: output}
		}
	}
	return stdout.String(), nil
}

func shorten(s string) string {
	if len(s) <= commandDisplayLen {
		return s
	}
	return s[:commandDisplayLen-3] + "..."
}
