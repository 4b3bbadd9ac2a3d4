package attemptclient

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quizzer_backend/internal/model"
)

// RunInteractive runs the attempt flow as a terminal session. Autosave is
// driven from the command loop and only fires while answering; once the
// attempt is submitted or under review, nothing is pushed.
func RunInteractive(ctx context.Context, runner *Runner, in io.Reader, out io.Writer, autosaveInterval time.Duration) error {
	if autosaveInterval <= 0 {
		autosaveInterval = defaultAutosaveInterval
	}

	if err := runner.Begin(ctx); err != nil {
		return err
	}

	attempt := runner.Attempt()
	fmt.Fprintf(out, "Attempt %d of %d\n", attempt.Number, attempt.Convocatory.Attempts)
	if remaining, timed := runner.Remaining(); timed {
		fmt.Fprintf(out, "Time remaining: %s\n", formatDuration(remaining))
	}
	printHelp(out)
	printPage(out, runner)

	reader := bufio.NewReader(in)
	lastAutosave := time.Now()

	for {
		if finished, err := finalizeIfExpired(ctx, runner, out); err != nil {
			return err
		} else if finished {
			printResults(out, runner)
			return nil
		}

		if runner.State() == StateAttempting && time.Since(lastAutosave) >= autosaveInterval {
			if err := runner.Autosave(ctx); err != nil {
				fmt.Fprintf(out, "autosave failed: %v\n", err)
			}
			lastAutosave = time.Now()
		}

		fmt.Fprint(out, "\n> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		args := strings.Fields(strings.TrimSpace(line))
		if len(args) == 0 {
			continue
		}

		switch strings.ToLower(args[0]) {
		case "help":
			printHelp(out)
		case "page":
			printPage(out, runner)
		case "next":
			if runner.NextPage() {
				printPage(out, runner)
			} else {
				fmt.Fprintln(out, "Already on the last page")
			}
		case "prev":
			if runner.PrevPage() {
				printPage(out, runner)
			} else {
				fmt.Fprintln(out, "Already on the first page")
			}
		case "status":
			printStatus(out, runner)
		case "answer":
			if err := handleAnswer(runner, args[1:]); err != nil {
				fmt.Fprintln(out, err)
			} else {
				printStatus(out, runner)
			}
		case "clear":
			if len(args) != 2 {
				fmt.Fprintln(out, "usage: clear <question-number>")
				continue
			}
			question, err := questionByNumber(runner, args[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := runner.ClearAnswer(question.ID); err != nil {
				fmt.Fprintln(out, err)
			}
		case "review":
			if err := runner.Review(); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printReview(out, runner)
		case "resume":
			if err := runner.Resume(); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printPage(out, runner)
		case "submit":
			if runner.State() == StateReviewing {
				if err := runner.Resume(); err != nil {
					fmt.Fprintln(out, err)
					continue
				}
			}
			if err := runner.Finalize(ctx, model.QuizSubmissionReasonSubmitted); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			printResults(out, runner)
			return nil
		case "exit", "quit":
			// The draft stays on the server; a later session resumes it.
			if runner.State() == StateAttempting {
				if err := runner.Autosave(ctx); err != nil {
					fmt.Fprintf(out, "autosave failed: %v\n", err)
				}
			}
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q, try help\n", args[0])
		}
	}
}

// finalizeIfExpired submits with the TIMEOUT reason once the wall-clock
// deadline has passed.
func finalizeIfExpired(ctx context.Context, runner *Runner, out io.Writer) (bool, error) {
	if runner.State() != StateAttempting && runner.State() != StateReviewing {
		return false, nil
	}
	remaining, timed := runner.Remaining()
	if !timed || remaining > 0 {
		return false, nil
	}

	fmt.Fprintln(out, "\nTime is up, submitting the attempt.")
	if runner.State() == StateReviewing {
		if err := runner.Resume(); err != nil {
			return false, err
		}
	}
	if err := runner.Finalize(ctx, model.QuizSubmissionReasonTimeout); err != nil {
		return false, err
	}
	return true, nil
}

func handleAnswer(runner *Runner, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: answer <question-number> <option-letter>")
	}

	question, err := questionByNumber(runner, args[0])
	if err != nil {
		return err
	}

	letter := strings.ToUpper(strings.TrimSpace(args[1]))
	if len(letter) != 1 || letter[0] < 'A' || int(letter[0]-'A') >= len(question.Options) {
		return fmt.Errorf("option must be a letter A-%c", byte('A'+len(question.Options)-1))
	}

	option := question.Options[letter[0]-'A']
	return runner.SetAnswer(question.ID, option)
}

func questionByNumber(runner *Runner, raw string) (*model.QuizQuestion, error) {
	number, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid question number %q", raw)
	}
	questions := runner.Attempt().Submission.Questions
	if number < 1 || number > len(questions) {
		return nil, fmt.Errorf("question number must be 1-%d", len(questions))
	}
	return &questions[number-1], nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, `
Commands:
  page                         show the current page of questions
  next / prev                  move between pages
  answer <number> <letter>     choose an option
  clear <number>               remove the saved answer
  status                       progress and time remaining
  review                       read-only overview of all answers
  resume                       back to answering
  submit                       finish the attempt
  exit                         leave, keeping the draft on the server`)
}

func printPage(out io.Writer, runner *Runner) {
	questions := runner.Page()
	offset := runner.PageIndex() * runner.pageSize
	fmt.Fprintf(out, "\nPage %d/%d\n", runner.PageIndex()+1, runner.PageCount())
	for i, question := range questions {
		marker := " "
		if runner.Answer(question.ID) != nil {
			marker = "*"
		}
		fmt.Fprintf(out, "\n%s Q%d: %s\n", marker, offset+i+1, question.Prompt)
		if question.Description != nil {
			fmt.Fprintf(out, "   %s\n", *question.Description)
		}
		for j, option := range question.Options {
			fmt.Fprintf(out, "   %c. %s\n", byte('A'+j), optionLabel(option))
		}
	}
}

func printReview(out io.Writer, runner *Runner) {
	questions := runner.Attempt().Submission.Questions
	fmt.Fprintln(out, "\nReview:")
	for i, question := range questions {
		answer := runner.Answer(question.ID)
		label := "(unanswered)"
		if answer != nil {
			label = optionLabel(*answer)
		}
		fmt.Fprintf(out, "Q%d: %s -> %s\n", i+1, question.Prompt, label)
	}
}

func printStatus(out io.Writer, runner *Runner) {
	total := len(runner.Attempt().Submission.Questions)
	fmt.Fprintf(out, "answered %d/%d", runner.AnsweredCount(), total)
	if remaining, timed := runner.Remaining(); timed {
		fmt.Fprintf(out, ", %s left", formatDuration(remaining))
	}
	fmt.Fprintln(out)
}

func printResults(out io.Writer, runner *Runner) {
	submission := runner.Attempt().Submission
	correct := 0
	for _, result := range submission.Results {
		if result.Answer != nil && result.Answer.Equal(result.Question.Answer) {
			correct++
		}
	}
	total := len(submission.Results)
	fmt.Fprintf(out, "\nAttempt submitted (%s).\n", reasonLabel(submission.Reason))
	if total > 0 {
		fmt.Fprintf(out, "Score: %d/%d (%.1f%%)\n", correct, total, float64(correct)/float64(total)*100)
	}
}

func reasonLabel(reason *model.QuizSubmissionReason) string {
	if reason == nil {
		return string(model.QuizSubmissionReasonSubmitted)
	}
	return string(*reason)
}

func optionLabel(option model.QuizQuestionOption) string {
	if option.Type == model.QuizQuestionOptionTypeImage {
		return "[image] " + option.Content
	}
	return option.Content
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
