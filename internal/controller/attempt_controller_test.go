package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizzer_backend/internal/model"
	"quizzer_backend/internal/service"
	"quizzer_backend/internal/util"
	"quizzer_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testEmail = "jane@example.com"

func setupAttemptRouter(t *testing.T) (*gin.Engine, *gorm.DB, model.QuizConvocatory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	user := model.User{Name: "Jane", Email: testEmail, Status: model.UserStatusEnabled, Role: model.UserRoleUser}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	quiz := model.Quiz{Subject: "Networking"}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	version := model.QuizVersion{Name: "v1", QuizID: quiz.ID}
	if err := db.Create(&version).Error; err != nil {
		t.Fatalf("create version: %v", err)
	}

	for i := 0; i < 5; i++ {
		right := model.QuizQuestionOption{ID: "a", Type: model.QuizQuestionOptionTypeText, Content: "right"}
		wrong := model.QuizQuestionOption{ID: "b", Type: model.QuizQuestionOptionTypeText, Content: "wrong"}
		question := model.QuizQuestion{
			Prompt:    fmt.Sprintf("question %d", i),
			Category:  "general",
			Options:   []model.QuizQuestionOption{right, wrong},
			Answer:    datatypes.NewJSONType(right),
			VersionID: version.ID,
		}
		if err := db.Create(&question).Error; err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	convocatory := model.QuizConvocatory{
		Questions: 5,
		Attempts:  2,
		VersionID: version.ID,
		StartAt:   time.Now().Add(-time.Hour),
		EndAt:     time.Now().Add(time.Hour),
		Users:     []model.User{user},
	}
	if err := db.Create(&convocatory).Error; err != nil {
		t.Fatalf("create convocatory: %v", err)
	}

	attemptController := NewAttemptController(service.NewAttemptService(db, 70))

	router := gin.New()
	group := router.Group("/api/convocatories/:convocatory_id/attempts/current")
	group.GET("", attemptController.Current)
	group.POST("", attemptController.Start)
	group.PUT("", attemptController.Autosave)
	group.DELETE("", attemptController.Finalize)

	return router, db, convocatory
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func attemptPath(convocatoryID, email string) string {
	path := "/api/convocatories/" + convocatoryID + "/attempts/current"
	if email != "" {
		path += "?email=" + email
	}
	return path
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) (json.RawMessage, *string) {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *string         `json:"error"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not the data/error envelope: %v (%s)", err, recorder.Body.String())
	}
	return envelope.Data, envelope.Error
}

func TestAttemptEndpointsRequireEmail(t *testing.T) {
	router, _, convocatory := setupAttemptRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		recorder := doRequest(router, method, attemptPath(convocatory.ID, ""), nil)
		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("%s without email: status %d, want 401", method, recorder.Code)
		}
		data, errMsg := decodeEnvelope(t, recorder)
		if string(data) != "null" {
			t.Errorf("%s without email: data = %s, want null", method, data)
		}
		if errMsg == nil {
			t.Errorf("%s without email: error field missing", method)
		}
	}
}

func TestAttemptCurrentEnvelope(t *testing.T) {
	router, _, convocatory := setupAttemptRouter(t)

	recorder := doRequest(router, http.MethodGet, attemptPath(convocatory.ID, testEmail), nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (%s)", recorder.Code, recorder.Body.String())
	}

	data, errMsg := decodeEnvelope(t, recorder)
	if errMsg != nil {
		t.Fatalf("error = %q, want null", *errMsg)
	}

	var attempt struct {
		Number     int              `json:"number"`
		Submission *json.RawMessage `json:"submission"`
	}
	if err := json.Unmarshal(data, &attempt); err != nil {
		t.Fatalf("decode attempt: %v", err)
	}
	if attempt.Number != 0 {
		t.Errorf("number = %d, want 0", attempt.Number)
	}
}

func TestAttemptStartStatusCodes(t *testing.T) {
	router, _, convocatory := setupAttemptRouter(t)

	recorder := doRequest(router, http.MethodPost, attemptPath(convocatory.ID, testEmail), nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("first start: status %d, want 201 (%s)", recorder.Code, recorder.Body.String())
	}

	recorder = doRequest(router, http.MethodPost, attemptPath(convocatory.ID, testEmail), nil)
	if recorder.Code != http.StatusConflict {
		t.Fatalf("second start: status %d, want 409", recorder.Code)
	}
	_, errMsg := decodeEnvelope(t, recorder)
	if errMsg == nil || *errMsg != util.ErrAttemptAlreadyInProgress.Error() {
		t.Errorf("second start error = %v, want %q", errMsg, util.ErrAttemptAlreadyInProgress.Error())
	}
}

func TestAttemptUnknownConvocatory(t *testing.T) {
	router, _, _ := setupAttemptRouter(t)

	recorder := doRequest(router, http.MethodGet, attemptPath(model.GenerateUUID(), testEmail), nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", recorder.Code)
	}
}

func TestAttemptRosterRejection(t *testing.T) {
	router, _, convocatory := setupAttemptRouter(t)

	recorder := doRequest(router, http.MethodGet, attemptPath(convocatory.ID, "stranger@example.com"), nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404 for non-rostered email", recorder.Code)
	}
}

func TestAttemptAutosaveStatusCodes(t *testing.T) {
	router, _, convocatory := setupAttemptRouter(t)

	// No draft yet.
	recorder := doRequest(router, http.MethodPut, attemptPath(convocatory.ID, testEmail),
		map[string]any{"revision": 0, "results": []any{}})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("autosave without draft: status %d, want 404", recorder.Code)
	}
	_, errMsg := decodeEnvelope(t, recorder)
	if errMsg == nil || *errMsg != util.ErrNoAttemptInProgress.Error() {
		t.Errorf("error = %v, want %q", errMsg, util.ErrNoAttemptInProgress.Error())
	}

	if recorder := doRequest(router, http.MethodPost, attemptPath(convocatory.ID, testEmail), nil); recorder.Code != http.StatusCreated {
		t.Fatalf("start: status %d", recorder.Code)
	}

	// Stale revision.
	recorder = doRequest(router, http.MethodPut, attemptPath(convocatory.ID, testEmail),
		map[string]any{"revision": 99, "results": []any{}})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("stale autosave: status %d, want 409", recorder.Code)
	}

	// Matching revision.
	recorder = doRequest(router, http.MethodPut, attemptPath(convocatory.ID, testEmail),
		map[string]any{"revision": 0, "results": []any{}})
	if recorder.Code != http.StatusOK {
		t.Fatalf("autosave: status %d, want 200 (%s)", recorder.Code, recorder.Body.String())
	}
}

func TestAttemptFinalizeFlow(t *testing.T) {
	router, db, convocatory := setupAttemptRouter(t)

	recorder := doRequest(router, http.MethodPost, attemptPath(convocatory.ID, testEmail), nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("start: status %d", recorder.Code)
	}
	data, _ := decodeEnvelope(t, recorder)

	var attempt service.QuizConvocatoryAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		t.Fatalf("decode attempt: %v", err)
	}

	results := make([]service.QuizQuestionResultData, 0, len(attempt.Submission.Questions))
	for _, question := range attempt.Submission.Questions {
		snapshot := question.Snapshot()
		answer := snapshot.Answer
		results = append(results, service.QuizQuestionResultData{Answer: &answer, Question: snapshot})
	}

	recorder = doRequest(router, http.MethodDelete, attemptPath(convocatory.ID, testEmail),
		service.FinalizeAttemptRequest{Reason: model.QuizSubmissionReasonSubmitted, Results: results})
	if recorder.Code != http.StatusOK {
		t.Fatalf("finalize: status %d (%s)", recorder.Code, recorder.Body.String())
	}

	data, errMsg := decodeEnvelope(t, recorder)
	if errMsg != nil {
		t.Fatalf("finalize error = %q", *errMsg)
	}
	var payload struct {
		Attempt     *service.QuizConvocatoryAttempt `json:"attempt"`
		Certificate *model.Certificate              `json:"certificate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode finalize payload: %v", err)
	}
	if payload.Attempt == nil || payload.Attempt.Submission.Status != model.QuizSubmissionStatusSubmitted {
		t.Errorf("attempt not submitted in response")
	}
	if payload.Certificate == nil {
		t.Errorf("certificate missing for a perfect score")
	}

	var count int64
	db.Model(&model.Certificate{}).Count(&count)
	if count != 1 {
		t.Errorf("found %d certificates, want 1", count)
	}

	// A second finalize finds no draft.
	recorder = doRequest(router, http.MethodDelete, attemptPath(convocatory.ID, testEmail),
		service.FinalizeAttemptRequest{Reason: model.QuizSubmissionReasonSubmitted})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("second finalize: status %d, want 404", recorder.Code)
	}
}
