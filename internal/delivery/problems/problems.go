package problems

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/adapters"
	"github.com/igomimu/online-go-school/internal/bootstrap"
	"github.com/igomimu/online-go-school/internal/httpresponse"
	repo "github.com/igomimu/online-go-school/internal/repository"
	problemsUC "github.com/igomimu/online-go-school/internal/usecase/problems"
	"github.com/igomimu/online-go-school/internal/utils"
)

type ProblemHandler struct {
	log       *zap.SugaredLogger
	problemUC *problemsUC.ProblemUseCase
}

func NewProblemHandler(log *zap.SugaredLogger, cfg bootstrap.Config, mongo *adapters.AdapterMongo) *ProblemHandler {
	return &ProblemHandler{
		log:       log,
		problemUC: problemsUC.NewProblemUseCase(repo.NewProblemStorage(cfg, log, mongo.Database)),
	}
}

// HandleImport кладёт в базу все .sgf задачи из каталога на сервере.
// Служебная ручка для наполнения библиотеки.
func (ph *ProblemHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	dir := r.URL.Query().Get("path")
	if dir == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "path is required"})
		return
	}

	imported, err := ph.problemUC.Import(r.Context(), dir)
	if err != nil {
		ph.log.Error("import problems: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, map[string]int{"imported": imported})
}

// HandleList отдаёт страницу задач уровня с отметками решённости для
// ученика из запроса.
func (ph *ProblemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "account_id is required"})
		return
	}

	level, err := strconv.Atoi(r.URL.Query().Get("level"))
	if err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "level must be a number"})
		return
	}
	pageNum, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || pageNum < 1 {
		pageNum = 1
	}

	page, err := ph.problemUC.PageForAccount(r.Context(), accountID, level, pageNum)
	if err != nil {
		ph.log.Error("list problems: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, page)
}

type solveRequest struct {
	AccountID string `json:"account_id"`
	Number    int    `json:"number"`
}

func (ph *ProblemHandler) HandleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		ph.log.Error("solve: malformed JSON: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	if err := ph.problemUC.MarkSolved(r.Context(), req.AccountID, req.Number); err != nil {
		ph.log.Error("solve: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, nil)
}
