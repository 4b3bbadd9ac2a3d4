package controller

import (
	"errors"

	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListQuizzes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.GetQuiz(ctx.Param("quiz_id"))
	if err != nil {
		quizError(ctx, err, "Quiz not found")
		return
	}
	util.Success(ctx, quiz)
}

func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.UpdateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(ctx.Param("quiz_id"), req)
	if err != nil {
		quizError(ctx, err, "Quiz not found")
		return
	}
	util.Success(ctx, quiz)
}

func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.DeleteQuiz(ctx.Param("quiz_id"))
	if err != nil {
		quizError(ctx, err, "Quiz not found")
		return
	}
	util.Success(ctx, quiz)
}

// Versions

func (c *QuizController) ListVersions(ctx *gin.Context) {
	versions, err := c.QuizService.ListVersions(ctx.Query("quiz"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, versions)
}

func (c *QuizController) GetVersion(ctx *gin.Context) {
	version, err := c.QuizService.GetVersion(ctx.Param("version_id"))
	if err != nil {
		quizError(ctx, err, "Version not found")
		return
	}
	util.Success(ctx, version)
}

func (c *QuizController) CreateVersion(ctx *gin.Context) {
	var req service.QuizVersionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	version, err := c.QuizService.CreateVersion(ctx.Param("quiz_id"), req)
	if err != nil {
		quizError(ctx, err, "Quiz not found")
		return
	}
	util.Created(ctx, version)
}

func (c *QuizController) UpdateVersion(ctx *gin.Context) {
	var req service.QuizVersionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	version, err := c.QuizService.UpdateVersion(ctx.Param("version_id"), req)
	if err != nil {
		quizError(ctx, err, "Version not found")
		return
	}
	util.Success(ctx, version)
}

func (c *QuizController) DeleteVersion(ctx *gin.Context) {
	version, err := c.QuizService.DeleteVersion(ctx.Param("version_id"))
	if err != nil {
		quizError(ctx, err, "Version not found")
		return
	}
	util.Success(ctx, version)
}

// Questions

func (c *QuizController) ListQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.ListQuestions(ctx.Param("version_id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

func (c *QuizController) GetQuestion(ctx *gin.Context) {
	question, err := c.QuizService.GetQuestion(ctx.Param("question_id"))
	if err != nil {
		quizError(ctx, err, "Question not found")
		return
	}
	util.Success(ctx, question)
}

func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.CreateQuestion(ctx.Param("version_id"), req)
	if err != nil {
		quizError(ctx, err, "Version not found")
		return
	}
	util.Created(ctx, question)
}

func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(ctx.Param("question_id"), req)
	if err != nil {
		quizError(ctx, err, "Question not found")
		return
	}
	util.Success(ctx, question)
}

func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	question, err := c.QuizService.DeleteQuestion(ctx.Param("question_id"))
	if err != nil {
		quizError(ctx, err, "Question not found")
		return
	}
	util.Success(ctx, question)
}

// UpsertQuestions replaces-or-creates the version's question bank in bulk,
// keyed by prompt.
func (c *QuizController) UpsertQuestions(ctx *gin.Context) {
	var reqs []service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&reqs); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuizService.UpsertQuestions(ctx.Param("version_id"), reqs)
	if err != nil {
		quizError(ctx, err, "Version not found")
		return
	}
	util.Success(ctx, questions)
}

func quizError(ctx *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		util.NotFound(ctx, notFoundMsg)
	case errors.Is(err, util.ErrAnswerNotInOptions):
		util.BadRequest(ctx, util.ErrAnswerNotInOptions.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
