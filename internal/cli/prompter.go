package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/safarshare/safar/internal/common"
	"github.com/safarshare/safar/internal/flow"
	"github.com/safarshare/safar/internal/validate"
	"github.com/safarshare/safar/internal/wizard"
)

// BackCommand typed at any field prompt returns to the previous step.
const BackCommand = "<"

// errBack is returned internally when the user asked to go back.
var errBack = errors.New("back")

// Prompter walks a wizard on a line-based terminal.
type Prompter struct {
	writer      io.Writer
	reader      *NonBlockingReader
	progressBar *progressbar.ProgressBar
}

// NewPrompter creates a prompter. Nil arguments mean stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{reader: NewNonBlockingReader(reader), writer: writer}
}

func (p *Prompter) println(a ...any) {
	if _, err := fmt.Fprintln(p.writer, a...); err != nil {
		slog.Warn("Failed to write to terminal", "error", err)
	}
}

func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input terminated: %w", common.ErrCanceled)
		}
		return "", err
	}
	return line, nil
}

// Ask reads one value. Blank input keeps def.
func (p *Prompter) Ask(ctx context.Context, label, def string) (string, error) {
	prompt := label
	if def != "" {
		prompt += " " + SubtleStyle.Render("["+def+"]")
	}
	line, err := p.readLine(ctx, prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question until it gets an answer.
func (p *Prompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		line, err := p.readLine(ctx, question+" "+SubtleStyle.Render(hint))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.println(FormatError("Please answer y or n."))
	}
}

// Choose lists options and accepts a number or an option value. Blank
// input keeps def, which may be empty.
func (p *Prompter) Choose(ctx context.Context, label string, options []string, def string) (string, error) {
	for i, opt := range options {
		p.println(fmt.Sprintf("  [%d] %s", i+1, opt))
	}
	for {
		line, err := p.Ask(ctx, label, def)
		if err != nil {
			return "", err
		}
		if line == "" || line == BackCommand {
			return line, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
			return options[n-1], nil
		}
		for _, opt := range options {
			if strings.EqualFold(opt, line) {
				return opt, nil
			}
		}
		p.println(FormatError("Invalid choice. Please try again."))
	}
}

// RunFlow fills w step by step. Each field is validated as soon as it is
// entered and re-asked until it passes; a step is left only when it
// validates as a whole. Afterwards the flow's yes/no acknowledgements are
// asked unless already given.
func (p *Prompter) RunFlow(ctx context.Context, def *flow.Definition, w *wizard.Wizard) error {
	steps := w.Steps()
	p.initProgressBar(def.Title, len(steps))
	p.println(FormatTitle(def.Title))

	for {
		if err := ctx.Err(); err != nil {
			return ErrInputCancelled
		}
		step := w.Current()
		p.updateProgress(w.Index() + 1)
		p.println()
		p.println(BoldStyle.Render(fmt.Sprintf("Step %d/%d: %s", w.Index()+1, len(steps), step.Title)))
		if w.Index() > 0 {
			p.println(SubtleStyle.Render(fmt.Sprintf("(type %s to go back)", BackCommand)))
		}

		err := p.fillFields(ctx, def, w, step.Fields)
		if errors.Is(err, errBack) {
			if !w.Back() {
				p.println(FormatWarning("Already at the first step."))
			}
			continue
		}
		if err != nil {
			return err
		}

		last := w.IsFinal()
		if err := w.Next(); err != nil {
			var se *wizard.StepError
			if !errors.As(err, &se) {
				return err
			}
			p.showErrors(se.Result)
			continue
		}
		if last {
			break
		}
	}

	p.finishProgress()
	return p.confirmAcks(ctx, def, w)
}

func (p *Prompter) fillFields(ctx context.Context, def *flow.Definition, w *wizard.Wizard, fields []validate.Field) error {
	for _, f := range fields {
		for {
			value, err := p.askField(ctx, f, w.Get(f.Name))
			if err != nil {
				return err
			}
			if value == BackCommand {
				return errBack
			}
			w.Set(f.Name, value)
			def.ApplyPresets(w)
			fe := w.ValidateField(f.Name)
			if fe == nil {
				break
			}
			p.println(FieldErrorStyle.Render(ErrorIcon + " " + fe.Message))
		}
	}
	return nil
}

func (p *Prompter) askField(ctx context.Context, f validate.Field, current string) (string, error) {
	label := f.Label
	if f.Required {
		label += "*"
	}
	if f.Help != "" {
		label += " " + SubtleStyle.Render("("+f.Help+")")
	}

	switch f.Input {
	case validate.InputBool:
		ok, err := p.Confirm(ctx, label, validate.Values{"v": current}.Bool("v"))
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil
	case validate.InputChoice:
		return p.Choose(ctx, label, f.Options, current)
	default:
		return p.Ask(ctx, label, current)
	}
}

func (p *Prompter) showErrors(r validate.Result) {
	for _, fe := range r.Errors {
		p.println(FormatError(fmt.Sprintf("%s: %s", fe.Field, fe.Message)))
	}
}

func (p *Prompter) confirmAcks(ctx context.Context, def *flow.Definition, w *wizard.Wizard) error {
	for _, ack := range def.Acks {
		if !ack.Confirm || w.Values().Bool(ack.Field) {
			continue
		}
		ok, err := p.Confirm(ctx, ack.Label, false)
		if err != nil {
			return err
		}
		w.Set(ack.Field, strconv.FormatBool(ok))
	}
	return nil
}

func (p *Prompter) initProgressBar(title string, steps int) {
	p.progressBar = progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[green][bold]"+title+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *Prompter) updateProgress(step int) {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Set(step); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
	p.println()
}

func (p *Prompter) finishProgress() {
	if p.progressBar == nil {
		return
	}
	if err := p.progressBar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
	p.println()
}
