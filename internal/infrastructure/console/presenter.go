package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"taskrunner/internal/domain/entity"
)

// Presenter renders a provider result to a terminal. When the result
// carries steps they are rendered as numbered panels, otherwise the final
// answer is printed as-is.
type Presenter struct {
	out io.Writer
}

func NewPresenter(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

func (p *Presenter) ShowResult(result *entity.Result) {
	header := color.New(color.FgGreen, color.Bold)
	header.Fprintln(p.out, "\nFINAL ANSWER:")

	if len(result.Steps) == 0 {
		fmt.Fprintln(p.out, result.Final)
		return
	}

	stepTitle := color.New(color.FgBlue, color.Bold)
	for i, step := range result.Steps {
		stepTitle.Fprintf(p.out, "Step %d\n", i+1)
		fmt.Fprintln(p.out, step)
		fmt.Fprintln(p.out)
	}
}

func (p *Presenter) ShowError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(p.out, "\nTask failed: %v\n", err)

	if entity.IsRateLimited(err) {
		fmt.Fprintln(p.out, "The provider is rate limiting requests. Wait a moment and retry.")
	}
}

// Banner prints the startup line with the active provider and model.
func (p *Presenter) Banner(provider, model string) {
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(p.out, "taskrunner: provider=%s model=%s\n", provider, model)
}
