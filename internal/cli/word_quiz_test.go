package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wordbook/internal/learning"
	mock_cli "github.com/at-ishikawa/wordbook/internal/mocks/cli"
	"github.com/at-ishikawa/wordbook/internal/quiz"
	"github.com/at-ishikawa/wordbook/internal/testutil"
	"github.com/at-ishikawa/wordbook/internal/vocabulary"
)

func init() {
	color.NoColor = true
}

func TestSpellingQuizCLI(t *testing.T) {
	questions := []quiz.SpellingQuestion{
		{Word: testutil.NewWord("run", "to move fast", vocabulary.PartOfSpeechVerb)},
		{Word: testutil.NewWord("apple", "a fruit", vocabulary.PartOfSpeechNoun)},
	}

	tests := []struct {
		name         string
		input        string
		wantScore    quiz.Score
		wantContains []string
	}{
		{
			name:         "all correct",
			input:        "run\nApple\n",
			wantScore:    quiz.Score{Correct: 2, Total: 2},
			wantContains: []string{"to move fast", "a fruit", "It's correct.", "Score: 2/2", "No more words to practice!"},
		},
		{
			name:         "wrong answer shows the word",
			input:        "ran\napple\n",
			wantScore:    quiz.Score{Correct: 1, Total: 2},
			wantContains: []string{`It's wrong. The answer is "Run"`, "Score: 1/2"},
		},
		{
			name:         "input ends early",
			input:        "run",
			wantScore:    quiz.Score{Correct: 1, Total: 1},
			wantContains: []string{"Score: 1/1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			base := NewInteractiveQuizCLI(strings.NewReader(tt.input), &out)
			session := NewSpellingQuizCLI(base, questions)

			require.NoError(t, base.Run(context.Background(), session))
			assert.Equal(t, tt.wantScore, base.Score())
			for _, want := range tt.wantContains {
				assert.Contains(t, out.String(), want)
			}
		})
	}
}

func TestMultipleChoiceQuizCLI(t *testing.T) {
	questions := []quiz.ChoiceQuestion{
		{
			Word:    testutil.NewWord("run", "to move fast", vocabulary.PartOfSpeechVerb),
			Options: []string{"a fruit", "to move fast"},
			Answer:  1,
		},
		{
			Word:    testutil.NewWord("apple", "a fruit", vocabulary.PartOfSpeechNoun),
			Options: []string{"a fruit", "to move fast"},
			Answer:  0,
		},
	}

	var out bytes.Buffer
	// "x" and "9" are rejected and the question is asked again
	base := NewInteractiveQuizCLI(strings.NewReader("x\n9\n2\n2\n"), &out)
	session := NewMultipleChoiceQuizCLI(base, questions)

	require.NoError(t, base.Run(context.Background(), session))
	assert.Equal(t, quiz.Score{Correct: 1, Total: 2}, base.Score())
	assert.Contains(t, out.String(), "What does Run mean?")
	assert.Contains(t, out.String(), "  1) a fruit\n  2) to move fast\n")
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number between 1 and 2"))
	assert.Contains(t, out.String(), `It's wrong. Apple means "a fruit"`)
}

func TestQuizCLI_RecordsAnswers(t *testing.T) {
	run := testutil.NewWord("run", "to move fast", vocabulary.PartOfSpeechVerb)
	apple := testutil.NewWord("apple", "a fruit", vocabulary.PartOfSpeechNoun)

	tests := []struct {
		name    string
		input   string
		session func(base *InteractiveQuizCLI) Session
		setup   func(recorder *mock_cli.MockAnswerRecorder)
		wantErr string
	}{
		{
			name:  "spelling answers",
			input: "run\npear\n",
			session: func(base *InteractiveQuizCLI) Session {
				return NewSpellingQuizCLI(base, []quiz.SpellingQuestion{{Word: run}, {Word: apple}})
			},
			setup: func(recorder *mock_cli.MockAnswerRecorder) {
				gomock.InOrder(
					recorder.EXPECT().Record(gomock.Any(), run.ID, quiz.TypeSpelling, true).Return(learning.LearningLog{ID: 1}, nil),
					recorder.EXPECT().Record(gomock.Any(), apple.ID, quiz.TypeSpelling, false).Return(learning.LearningLog{ID: 2}, nil),
				)
			},
		},
		{
			name:  "rejected choice is not recorded",
			input: "x\n1\n",
			session: func(base *InteractiveQuizCLI) Session {
				return NewMultipleChoiceQuizCLI(base, []quiz.ChoiceQuestion{
					{Word: run, Options: []string{"a fruit", "to move fast"}, Answer: 1},
				})
			},
			setup: func(recorder *mock_cli.MockAnswerRecorder) {
				recorder.EXPECT().Record(gomock.Any(), run.ID, quiz.TypeChoice, false).Return(learning.LearningLog{ID: 1}, nil)
			},
		},
		{
			name:  "recorder error stops the quiz",
			input: "run\napple\n",
			session: func(base *InteractiveQuizCLI) Session {
				return NewSpellingQuizCLI(base, []quiz.SpellingQuestion{{Word: run}, {Word: apple}})
			},
			setup: func(recorder *mock_cli.MockAnswerRecorder) {
				recorder.EXPECT().Record(gomock.Any(), run.ID, quiz.TypeSpelling, true).Return(learning.LearningLog{}, errors.New("database is locked"))
			},
			wantErr: "database is locked",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := mock_cli.NewMockAnswerRecorder(gomock.NewController(t))
			tt.setup(recorder)

			var out bytes.Buffer
			base := NewInteractiveQuizCLI(strings.NewReader(tt.input), &out)
			base.SetRecorder(recorder)

			err := base.Run(context.Background(), tt.session(base))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestInteractiveQuizCLI_Run(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(session *mock_cli.MockSession)
		wantErr bool
	}{
		{
			name: "ends after the session reports the end",
			setup: func(session *mock_cli.MockSession) {
				gomock.InOrder(
					session.EXPECT().Session(gomock.Any()).Return(nil).Times(2),
					session.EXPECT().Session(gomock.Any()).Return(errEnd),
				)
			},
		},
		{
			name: "session error",
			setup: func(session *mock_cli.MockSession) {
				session.EXPECT().Session(gomock.Any()).Return(errors.New("broken"))
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mock_cli.NewMockSession(ctrl)
			tt.setup(session)

			var out bytes.Buffer
			err := NewInteractiveQuizCLI(strings.NewReader(""), &out).Run(context.Background(), session)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
