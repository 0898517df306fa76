package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/at-ishikawa/wordbook/internal/learning"
	"github.com/at-ishikawa/wordbook/internal/quiz"
)

var errEnd = errors.New("end")

// InteractiveQuizCLI contains shared logic for interactive quiz CLIs
type InteractiveQuizCLI struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	correct      *color.Color
	wrong        *color.Color
	score        quiz.Score
	recorder     AnswerRecorder
}

func NewInteractiveQuizCLI(stdin io.Reader, stdout io.Writer) *InteractiveQuizCLI {
	return &InteractiveQuizCLI{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		correct:      color.New(color.FgGreen),
		wrong:        color.New(color.FgRed),
	}
}

//go:generate mockgen -source=interactive_quiz_cli.go -destination=../mocks/cli/mock_session.go -package=mock_cli Session,AnswerRecorder

type Session interface {
	Session(context context.Context) error
}

// AnswerRecorder stores every answer given in a quiz.
// learning.DBLearningRepository implements it.
type AnswerRecorder interface {
	Record(ctx context.Context, wordID uuid.UUID, quizType string, correct bool) (learning.LearningLog, error)
}

// SetRecorder makes the quiz store each answer with recorder.
func (cli *InteractiveQuizCLI) SetRecorder(recorder AnswerRecorder) {
	cli.recorder = recorder
}

// Run repeats session until it ends, fails, or the process is interrupted.
func (cli *InteractiveQuizCLI) Run(ctx context.Context, session Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := session.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	cli.printScore()
	return nil
}

// Score returns the answers recorded so far.
func (cli *InteractiveQuizCLI) Score() quiz.Score {
	return cli.score
}

// readAnswer returns errEnd when input is exhausted.
func (cli *InteractiveQuizCLI) readAnswer() (string, error) {
	answer, err := cli.stdinReader.ReadString('\n')
	if errors.Is(err, io.EOF) && answer == "" {
		return "", errEnd
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return answer, nil
}

// answer scores and records an answer, then prints format as the verdict.
func (cli *InteractiveQuizCLI) answer(ctx context.Context, wordID uuid.UUID, quizType string, correct bool, format string, args ...any) error {
	cli.score.Record(correct)
	if cli.recorder != nil {
		if _, err := cli.recorder.Record(ctx, wordID, quizType, correct); err != nil {
			return fmt.Errorf("recorder.Record() > %w", err)
		}
	}
	cli.printResult(correct, format, args...)
	return nil
}

func (cli *InteractiveQuizCLI) printResult(correct bool, format string, args ...any) {
	if correct {
		_, _ = fmt.Fprint(cli.stdoutWriter, "✅ ")
		_, _ = cli.correct.Fprintf(cli.stdoutWriter, format+"\n", args...)
		return
	}
	_, _ = fmt.Fprint(cli.stdoutWriter, "❌ ")
	_, _ = cli.wrong.Fprintf(cli.stdoutWriter, format+"\n", args...)
}

func (cli *InteractiveQuizCLI) printScore() {
	if cli.score.Total == 0 {
		return
	}
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Score: %s\n",
		cli.bold.Sprintf("%d/%d", cli.score.Correct, cli.score.Total),
	)
}
