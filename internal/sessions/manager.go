package sessions

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"intervue/internal/llm"
	"intervue/internal/locks"
	"intervue/internal/metrics"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/scoring"
)

// Manager owns the interview session lifecycle: question sequencing, turn
// recording, completion detection and status transitions. It is the only
// writer of sessions, turns and scores.
type Manager struct {
	db        *gorm.DB
	sessions  *repositories.SessionRepository
	turns     *repositories.TurnRepository
	scores    *repositories.ScoreRepository
	questions *repositories.QuestionRepository
	tests     *repositories.TestRepository
	topics    *repositories.TopicRepository

	evaluator llm.Evaluator
	locks     *locks.SessionLocks
	logger    *zap.Logger

	evalTimeout       time.Duration
	maxAdHocQuestions int
}

type ManagerOptions struct {
	EvalTimeout       time.Duration
	MaxAdHocQuestions int
}

func NewManager(db *gorm.DB, evaluator llm.Evaluator, sessionLocks *locks.SessionLocks, logger *zap.Logger, opts ManagerOptions) *Manager {
	if opts.EvalTimeout <= 0 {
		opts.EvalTimeout = 30 * time.Second
	}
	if opts.MaxAdHocQuestions <= 0 {
		opts.MaxAdHocQuestions = 5
	}
	return &Manager{
		db:                db,
		sessions:          repositories.NewSessionRepository(db),
		turns:             repositories.NewTurnRepository(db),
		scores:            repositories.NewScoreRepository(db),
		questions:         repositories.NewQuestionRepository(db),
		tests:             repositories.NewTestRepository(db),
		topics:            repositories.NewTopicRepository(db),
		evaluator:         evaluator,
		locks:             sessionLocks,
		logger:            logger,
		evalTimeout:       opts.EvalTimeout,
		maxAdHocQuestions: opts.MaxAdHocQuestions,
	}
}

// StartOptions selects the session source: exactly one of TestID or TopicID.
type StartOptions struct {
	TestID  string
	TopicID string
}

// Start creates a new in_progress session with its question-id snapshot and
// returns it together with the first question.
func (m *Manager) Start(ctx context.Context, userID string, opts StartOptions) (*models.StartSessionResponse, error) {
	var policy SelectionPolicy
	session := &models.InterviewSession{
		UserID: userID,
		Status: models.SessionInProgress,
	}

	switch {
	case opts.TestID != "":
		test, err := m.tests.GetByID(ctx, opts.TestID)
		if err != nil {
			return nil, err
		}
		if len(test.QuestionIDs) == 0 {
			return nil, ErrNoQuestionsAvailable
		}
		session.TestID = test.ID
		policy = Fixed{IDs: test.QuestionIDs}
	default:
		topic, err := m.topics.GetByID(ctx, opts.TopicID)
		if err != nil {
			return nil, err
		}
		pool, err := m.questions.GetByTopic(ctx, topic.ID)
		if err != nil {
			return nil, err
		}
		if len(pool) == 0 {
			return nil, ErrNoQuestionsAvailable
		}
		ids := make([]string, len(pool))
		for i, q := range pool {
			ids[i] = q.ID
		}
		session.TopicID = topic.ID
		policy = RandomSubset{Pool: ids, Max: m.maxAdHocQuestions}
	}

	session.QuestionIDs = datatypes.NewJSONSlice(policy.Select())
	if err := m.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	first, err := m.questions.GetByID(ctx, session.QuestionIDs[0])
	if err != nil {
		return nil, err
	}

	m.logger.Info("session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", userID),
		zap.Int("questions", len(session.QuestionIDs)))

	return &models.StartSessionResponse{Session: session, CurrentQuestion: first}, nil
}

// SubmitAnswer records one answer: evaluates it, persists the turn, and
// either advances the session or finalizes it with an aggregate score. Turn
// creation and index advancement (or completion plus score creation) commit
// in a single transaction, so a failure anywhere leaves the session exactly
// where it was.
func (m *Manager) SubmitAnswer(ctx context.Context, user *models.User, sessionID, answer string) (*models.SubmitAnswerResponse, error) {
	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != user.ID {
		return nil, ErrForbidden
	}
	if !session.Active() {
		return nil, ErrSessionNotActive
	}

	release, err := m.locks.Acquire(ctx, sessionID)
	if err != nil {
		if err == locks.ErrAlreadyLocked {
			return nil, ErrSessionBusy
		}
		return nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}
	defer release()

	// Reload under the lock: the pre-lock read may have raced another
	// submission.
	session, err = m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Active() {
		return nil, ErrSessionNotActive
	}

	index := session.CurrentQuestionIndex
	question, err := m.questions.GetByID(ctx, session.QuestionIDs[index])
	if err != nil {
		return nil, err
	}

	evaluation, err := m.evaluate(ctx, user, session, question, answer)
	if err != nil {
		return nil, err
	}

	turn := &models.InterviewTurn{
		SessionID:  session.ID,
		QuestionID: question.ID,
		TurnNumber: index,
		UserAnswer: answer,
		AIResponse: evaluation.InterviewerText,
		Evaluation: datatypes.NewJSONType(evaluation.Evaluation),
	}

	nextIndex := index + 1
	completed := nextIndex == len(session.QuestionIDs)
	var score *models.Score

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		turnRepo := m.turns.WithTx(tx)
		sessionRepo := m.sessions.WithTx(tx)

		if err := turnRepo.Create(ctx, turn); err != nil {
			return fmt.Errorf("failed to persist turn: %w", err)
		}

		if !completed {
			return sessionRepo.AdvanceIndex(ctx, session.ID, index)
		}

		allTurns, err := turnRepo.GetBySession(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("failed to load session turns: %w", err)
		}
		result, err := scoring.Aggregate(allTurns)
		if err != nil {
			return err
		}
		score = &models.Score{
			SessionID:          session.ID,
			UserID:             session.UserID,
			GrammarScore:       result.Grammar,
			TechnicalScore:     result.Technical,
			DepthScore:         result.Depth,
			CommunicationScore: result.Communication,
			TotalScore:         result.TotalScore,
			Grade:              result.Grade,
			DetailedFeedback:   datatypes.NewJSONType(result.DetailedFeedback),
		}
		if err := m.scores.WithTx(tx).Create(ctx, score); err != nil {
			return fmt.Errorf("failed to persist score: %w", err)
		}
		return sessionRepo.Complete(ctx, session.ID, index, time.Now())
	})
	if err != nil {
		if err == repositories.ErrStaleIndex {
			return nil, ErrSessionBusy
		}
		return nil, err
	}

	resp := &models.SubmitAnswerResponse{Turn: turn, Completed: completed, Score: score}
	if completed {
		m.logger.Info("session completed",
			zap.String("session_id", session.ID),
			zap.Int("total_score", score.TotalScore),
			zap.String("grade", score.Grade))
		return resp, nil
	}

	next, err := m.questions.GetByID(ctx, session.QuestionIDs[nextIndex])
	if err != nil {
		// the snapshot can reference a since-deleted question; the turn is
		// already committed, so report the gap instead of failing
		m.logger.Warn("next question missing from snapshot",
			zap.String("session_id", session.ID),
			zap.String("question_id", session.QuestionIDs[nextIndex]))
	} else {
		resp.NextQuestion = next
	}
	return resp, nil
}

// evaluate calls the evaluation client with a bounded timeout and the user's
// score history as context. No state is written before it returns.
func (m *Manager) evaluate(ctx context.Context, user *models.User, session *models.InterviewSession, question *models.Question, answer string) (*llm.EvalResult, error) {
	mode := llm.ModeTest
	if session.TestID != "" {
		if test, err := m.tests.GetByID(ctx, session.TestID); err == nil && test.Type == models.TestTypePractice {
			mode = llm.ModePractice
		}
	}

	past, err := m.scores.GetByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	pastTotals := make([]int, 0, len(past))
	for _, s := range past {
		pastTotals = append(pastTotals, s.TotalScore)
	}

	evalCtx, cancel := context.WithTimeout(ctx, m.evalTimeout)
	defer cancel()

	started := time.Now()
	evaluation, err := m.evaluator.EvaluateAnswer(evalCtx, question.QuestionText, answer, llm.EvalContext{
		Username:        user.Username,
		PastTotalScores: pastTotals,
		Mode:            mode,
	})
	if err != nil {
		metrics.RecordEvaluation(evalOutcome(err))
		m.logger.Error("evaluation failed",
			zap.String("session_id", session.ID),
			zap.Int("turn", session.CurrentQuestionIndex),
			zap.Error(err))
		return nil, err
	}
	metrics.RecordEvaluation("ok")

	m.logger.Info("answer evaluated",
		zap.String("session_id", session.ID),
		zap.Int("turn", session.CurrentQuestionIndex),
		zap.String("provider", m.evaluator.GetProviderName()),
		zap.Duration("took", time.Since(started)))
	return evaluation, nil
}

// Quit transitions an in_progress session to abandoned. No score is computed.
func (m *Manager) Quit(ctx context.Context, userID, sessionID string) (*models.InterviewSession, error) {
	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	if !session.Active() {
		return nil, ErrSessionNotActive
	}
	if err := m.sessions.Abandon(ctx, sessionID); err != nil {
		return nil, err
	}
	session.Status = models.SessionAbandoned
	return session, nil
}

// Get returns a session with its turns and the current question.
func (m *Manager) Get(ctx context.Context, userID, sessionID string) (*models.SessionDetailResponse, error) {
	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}

	turns, err := m.turns.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	detail := &models.SessionDetailResponse{
		InterviewSession: session,
		Turns:            turns,
		TotalQuestions:   len(session.QuestionIDs),
	}
	if session.CurrentQuestionIndex < len(session.QuestionIDs) {
		if q, err := m.questions.GetByID(ctx, session.QuestionIDs[session.CurrentQuestionIndex]); err == nil {
			detail.CurrentQuestion = q
		}
	}
	return detail, nil
}

// Turns returns the session's turns with their question texts.
func (m *Manager) Turns(ctx context.Context, userID, sessionID string) ([]models.TurnWithQuestion, error) {
	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}

	turns, err := m.turns.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]models.TurnWithQuestion, 0, len(turns))
	for _, turn := range turns {
		entry := models.TurnWithQuestion{InterviewTurn: turn}
		if q, err := m.questions.GetByID(ctx, turn.QuestionID); err == nil {
			entry.Question = q
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetScore returns the session's aggregate score.
func (m *Manager) GetScore(ctx context.Context, userID, sessionID string) (*models.Score, error) {
	session, err := m.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrForbidden
	}
	return m.scores.GetBySession(ctx, sessionID)
}

// Recent returns up to five most recent completed sessions with scores.
func (m *Manager) Recent(ctx context.Context, userID string) ([]models.SessionSummary, error) {
	return m.completedSummaries(ctx, userID, 5)
}

// History returns all completed sessions with scores and turn counts.
func (m *Manager) History(ctx context.Context, userID string) ([]models.SessionSummary, error) {
	return m.completedSummaries(ctx, userID, 0)
}

func (m *Manager) completedSummaries(ctx context.Context, userID string, limit int) ([]models.SessionSummary, error) {
	all, err := m.sessions.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := []models.SessionSummary{}
	for i := range all {
		session := all[i]
		if session.Status != models.SessionCompleted {
			continue
		}
		summary := models.SessionSummary{
			InterviewSession: &session,
			TotalQuestions:   len(session.QuestionIDs),
		}
		if session.TestID != "" {
			if test, err := m.tests.GetByID(ctx, session.TestID); err == nil {
				summary.TestName = test.Name
			}
		}
		if score, err := m.scores.GetBySession(ctx, session.ID); err == nil {
			summary.Score = score
		}
		if count, err := m.turns.CountBySession(ctx, session.ID); err == nil {
			summary.QuestionCount = int(count)
		}
		summaries = append(summaries, summary)
		if limit > 0 && len(summaries) == limit {
			break
		}
	}
	return summaries, nil
}

// Stats computes the user dashboard numbers: completed test count, mean
// total score, and the recent-5 vs previous-5 improvement percentage.
func (m *Manager) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	all, err := m.sessions.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	scores, err := m.scores.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.UserStats{}
	for _, s := range all {
		if s.Status == models.SessionCompleted {
			stats.TotalTests++
		}
	}
	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s.TotalScore
		}
		stats.AverageScore = int(math.Round(float64(sum) / float64(len(scores))))
	}

	recent := meanTotal(scores, 0, 5)
	previous := meanTotal(scores, 5, 10)
	if previous > 0 {
		stats.Improvement = int(math.Round((recent - previous) / previous * 100))
	}
	return stats, nil
}

func evalOutcome(err error) string {
	switch {
	case llm.IsParseError(err):
		return "parse_error"
	default:
		return "upstream_error"
	}
}

func meanTotal(scores []models.Score, from, to int) float64 {
	if from >= len(scores) {
		return 0
	}
	if to > len(scores) {
		to = len(scores)
	}
	sum := 0
	for _, s := range scores[from:to] {
		sum += s.TotalScore
	}
	return float64(sum) / float64(to-from)
}
