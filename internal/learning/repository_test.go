package learning

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbook/internal/testutil"
)

var (
	logColumns = []string{"id", "word_id", "quiz_type", "correct", "learned_at"}
	runID      = uuid.MustParse("6f1c3c1e-5b0a-4a55-9c0e-8c5d1b1e2a01")
	appleID    = uuid.MustParse("6f1c3c1e-5b0a-4a55-9c0e-8c5d1b1e2a02")
)

func newMockRepository(t *testing.T) (*DBLearningRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return NewDBLearningRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBLearningRepository_FindAll(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      []LearningLog
		wantErr   bool
	}{
		{
			name: "returns all logs",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(logColumns).
					AddRow(1, runID.String(), "spelling", true, now).
					AddRow(2, appleID.String(), "choice", false, now.Add(time.Minute))
				mock.ExpectQuery("SELECT (.+) FROM learning_logs ORDER BY id").WillReturnRows(rows)
			},
			want: []LearningLog{
				{ID: 1, WordID: runID, QuizType: "spelling", Correct: true, LearnedAt: now},
				{ID: 2, WordID: appleID, QuizType: "choice", Correct: false, LearnedAt: now.Add(time.Minute)},
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM learning_logs ORDER BY id").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindAll(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBLearningRepository_FindByWord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns logs for word",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(logColumns).
					AddRow(1, runID.String(), "spelling", false, now).
					AddRow(3, runID.String(), "spelling", true, now.Add(24*time.Hour))
				mock.ExpectQuery("SELECT (.+) FROM learning_logs WHERE word_id = \\? AND quiz_type = \\? ORDER BY learned_at, id").
					WithArgs(runID.String(), "spelling").
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT (.+) FROM learning_logs WHERE word_id = \\? AND quiz_type = \\?").
					WithArgs(runID.String(), "spelling").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByWord(context.Background(), runID, "spelling")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			for _, log := range got {
				assert.Equal(t, runID, log.WordID)
				assert.Equal(t, "spelling", log.QuizType)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBLearningRepository_FindLatestByWord(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query := "SELECT (.+) FROM learning_logs WHERE word_id = \\? AND quiz_type = \\? ORDER BY learned_at DESC, id DESC LIMIT 1"

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *LearningLog
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs(runID.String(), "choice").
					WillReturnRows(sqlmock.NewRows(logColumns).AddRow(5, runID.String(), "choice", true, now))
			},
			want: &LearningLog{ID: 5, WordID: runID, QuizType: "choice", Correct: true, LearnedAt: now},
		},
		{
			name: "never quizzed",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs(runID.String(), "choice").
					WillReturnRows(sqlmock.NewRows(logColumns))
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).
					WithArgs(runID.String(), "choice").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindLatestByWord(context.Background(), runID, "choice")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBLearningRepository_Create(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "inserts a log",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO learning_logs").
					WithArgs(runID.String(), "spelling", true, now).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO learning_logs").
					WithArgs(runID.String(), "spelling", true, now).
					WillReturnError(fmt.Errorf("table is locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			log := &LearningLog{WordID: runID, QuizType: "spelling", Correct: true, LearnedAt: now}
			err := repo.Create(context.Background(), log)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, log.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBLearningRepository_RecordOnSQLite(t *testing.T) {
	ctx := context.Background()
	repo := NewDBLearningRepository(testutil.OpenTestDB(t))
	clock := testutil.FixedTime
	repo.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	first, err := repo.Record(ctx, runID, "spelling", false)
	require.NoError(t, err)
	second, err := repo.Record(ctx, runID, "spelling", true)
	require.NoError(t, err)
	_, err = repo.Record(ctx, appleID, "choice", true)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	logs, err := repo.FindByWord(ctx, runID, "spelling")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.False(t, logs[0].Correct)
	assert.True(t, logs[1].Correct)
	assert.True(t, logs[1].LearnedAt.Equal(testutil.FixedTime.Add(2*time.Minute)))

	latest, err := repo.FindLatestByWord(ctx, runID, "spelling")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	missing, err := repo.FindLatestByWord(ctx, appleID, "spelling")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
