package service

import (
	"math/rand"
	"sync"
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/repository"
	"quizzer_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizConvocatoryAttempt is the unit every attempt operation returns: the
// derived attempt number, the examinee, the current draft (nil when none)
// and the convocatory with its version and quiz.
type QuizConvocatoryAttempt struct {
	Number      int                    `json:"number"`
	User        *model.User            `json:"user"`
	Submission  *model.QuizSubmission  `json:"submission"`
	Convocatory *model.QuizConvocatory `json:"convocatory"`
}

type QuizQuestionResultData struct {
	Answer   *model.QuizQuestionOption  `json:"answer"`
	Question model.QuizQuestionSnapshot `json:"question" binding:"required"`
}

type AutosaveAttemptRequest struct {
	// Revision must echo the last revision the client observed; a mismatch
	// means another write finished in between and the autosave is stale.
	Revision int                      `json:"revision"`
	Results  []QuizQuestionResultData `json:"results"`
}

type FinalizeAttemptRequest struct {
	Reason  model.QuizSubmissionReason `json:"reason" binding:"required,oneof=SUBMITTED TIMEOUT"`
	Results []QuizQuestionResultData   `json:"results"`
}

// AttemptService drives the DRAFT -> SUBMITTED lifecycle of quiz attempts.
// Every operation re-reads the convocatory, the attempt count and the
// current draft inside one transaction, so concurrent requests for the
// same (user, convocatory) pair serialize on the database rather than on
// application locks.
type AttemptService struct {
	DB *gorm.DB

	mu           sync.RWMutex
	passingScore float64

	now     func() time.Time
	newRand func() *rand.Rand
}

func NewAttemptService(db *gorm.DB, passingScore float64) *AttemptService {
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}
	return &AttemptService{
		DB:           db,
		passingScore: passingScore,
		now:          time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *AttemptService) PassingScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.passingScore
}

// SetPassingScore is called by the config watcher on hot reload.
func (s *AttemptService) SetPassingScore(score float64) {
	if score <= 0 {
		return
	}
	s.mu.Lock()
	s.passingScore = score
	s.mu.Unlock()
}

// attemptContext is the consistent read every operation starts from.
type attemptContext struct {
	convocatory model.QuizConvocatory
	user        model.User
	number      int
	draft       *model.QuizSubmission
}

func (s *AttemptService) loadContext(tx *gorm.DB, convocatoryID, email string) (*attemptContext, error) {
	var convocatory model.QuizConvocatory
	err := tx.
		Preload("Version.Quiz").
		Joins("JOIN quiz_convocatory_users qcu ON qcu.quiz_convocatory_id = quiz_convocatories.id").
		Joins("JOIN users roster ON roster.id = qcu.user_id").
		Where("quiz_convocatories.id = ? AND roster.email = ?", convocatoryID, email).
		First(&convocatory).Error
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := tx.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}

	var count int64
	err = tx.Model(&model.QuizSubmission{}).
		Where("convocatory_id = ? AND user_id = ?", convocatoryID, user.ID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	var draft model.QuizSubmission
	err = tx.
		Preload("Questions").
		Where("convocatory_id = ? AND user_id = ? AND status = ?",
			convocatoryID, user.ID, model.QuizSubmissionStatusDraft).
		First(&draft).Error
	switch {
	case err == nil:
		return &attemptContext{convocatory: convocatory, user: user, number: int(count), draft: &draft}, nil
	case err == gorm.ErrRecordNotFound:
		return &attemptContext{convocatory: convocatory, user: user, number: int(count)}, nil
	default:
		return nil, err
	}
}

func (c *attemptContext) attempt() *QuizConvocatoryAttempt {
	return &QuizConvocatoryAttempt{
		Number:      c.number,
		User:        &c.user,
		Submission:  c.draft,
		Convocatory: &c.convocatory,
	}
}

// Current reads the attempt state without changing it. Always permitted;
// the submission is nil when no draft exists.
func (s *AttemptService) Current(convocatoryID, email string) (*QuizConvocatoryAttempt, error) {
	var attempt *QuizConvocatoryAttempt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		actx, err := s.loadContext(tx, convocatoryID, email)
		if err != nil {
			return err
		}
		attempt = actx.attempt()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// Start opens a new draft: no draft may exist, the convocatory window must
// be open and the attempt count must not be exhausted. The selected
// questions are attached to the draft as a snapshot of the bank.
func (s *AttemptService) Start(convocatoryID, email string) (*QuizConvocatoryAttempt, error) {
	var attempt *QuizConvocatoryAttempt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		actx, err := s.loadContext(tx, convocatoryID, email)
		if err != nil {
			return err
		}

		if actx.draft != nil {
			return util.ErrAttemptAlreadyInProgress
		}
		if !actx.convocatory.OnTime(s.now()) {
			return util.ErrOutOfScheduledDate
		}
		// Tryable while the prior submission count has not passed the
		// limit: count <= attempts, so the last retry at count == attempts
		// is still allowed.
		if actx.number > actx.convocatory.Attempts {
			return util.ErrMaximumAttemptsReached
		}

		var bank []model.QuizQuestion
		if err := tx.Where("version_id = ?", actx.convocatory.VersionID).Find(&bank).Error; err != nil {
			return err
		}

		questions := SelectQuestions(bank, actx.convocatory.Questions, s.newRand())

		submission := model.QuizSubmission{
			Status:        model.QuizSubmissionStatusDraft,
			UserID:        actx.user.ID,
			ConvocatoryID: convocatoryID,
			Questions:     questions,
			StartedAt:     s.now(),
		}
		if err := tx.Create(&submission).Error; err != nil {
			return err
		}

		actx.draft = &submission
		actx.number++
		attempt = actx.attempt()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// Autosave replaces the draft's results wholesale. Status, startedAt and
// endedAt are untouched. Stale revisions are rejected so a slow autosave
// cannot clobber a later write.
func (s *AttemptService) Autosave(convocatoryID, email string, req AutosaveAttemptRequest) (*QuizConvocatoryAttempt, error) {
	var attempt *QuizConvocatoryAttempt
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		actx, err := s.loadContext(tx, convocatoryID, email)
		if err != nil {
			return err
		}

		if actx.draft == nil {
			return util.ErrNoAttemptInProgress
		}
		if req.Revision != actx.draft.Revision {
			return util.ErrStaleAutosave
		}

		// Validated after the draft guard so a missing draft reports 404
		// regardless of the payload.
		results, err := convertResults(req.Results)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"results":  datatypes.JSONSlice[model.QuizQuestionResult](results),
			"revision": actx.draft.Revision + 1,
		}
		if err := tx.Model(actx.draft).Updates(updates).Error; err != nil {
			return err
		}
		actx.draft.Results = datatypes.JSONSlice[model.QuizQuestionResult](results)
		actx.draft.Revision++

		attempt = actx.attempt()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return attempt, nil
}

// Finalize transitions the draft to SUBMITTED exactly once, stamps the
// reason and endedAt, scores the submission and, when passed, upserts the
// (user, convocatory) certificate, all in the same transaction.
func (s *AttemptService) Finalize(convocatoryID, email string, req FinalizeAttemptRequest) (*QuizConvocatoryAttempt, *model.Certificate, error) {
	var (
		attempt     *QuizConvocatoryAttempt
		certificate *model.Certificate
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		actx, err := s.loadContext(tx, convocatoryID, email)
		if err != nil {
			return err
		}

		if actx.draft == nil {
			return util.ErrNoAttemptInProgress
		}

		results, err := convertResults(req.Results)
		if err != nil {
			return err
		}

		now := s.now()
		updates := map[string]interface{}{
			"status":   model.QuizSubmissionStatusSubmitted,
			"reason":   req.Reason,
			"results":  datatypes.JSONSlice[model.QuizQuestionResult](results),
			"revision": actx.draft.Revision + 1,
			"ended_at": now,
		}
		if err := tx.Model(actx.draft).Updates(updates).Error; err != nil {
			return err
		}
		actx.draft.Status = model.QuizSubmissionStatusSubmitted
		actx.draft.Reason = &req.Reason
		actx.draft.Results = datatypes.JSONSlice[model.QuizQuestionResult](results)
		actx.draft.Revision++
		actx.draft.EndedAt = &now

		score := CalcSubmissionScore(results, s.PassingScore())
		if score.Passed {
			cert, err := repository.UpsertCertificateTx(tx, actx.user.ID, convocatoryID)
			if err != nil {
				return err
			}
			certificate = cert
		}

		attempt = actx.attempt()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return attempt, certificate, nil
}

// convertResults validates each result and maps it onto the persisted
// shape. Snapshots must be internally consistent (the expected answer one
// of the options) and the recorded answer, when present, must be one of
// the snapshot's options.
func convertResults(data []QuizQuestionResultData) ([]model.QuizQuestionResult, error) {
	results := make([]model.QuizQuestionResult, 0, len(data))
	for _, d := range data {
		if len(d.Question.Options) == 0 {
			return nil, util.ErrAnswerNotInOptions
		}
		if !model.ContainsOption(d.Question.Options, d.Question.Answer) {
			return nil, util.ErrAnswerNotInOptions
		}
		if d.Answer != nil && !model.ContainsOption(d.Question.Options, *d.Answer) {
			return nil, util.ErrAnswerNotInOptions
		}
		results = append(results, model.QuizQuestionResult{
			Answer:   d.Answer,
			Question: d.Question,
		})
	}
	return results, nil
}
