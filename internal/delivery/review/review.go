package review

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/tree"
	"github.com/igomimu/online-go-school/internal/httpresponse"
	reviewuc "github.com/igomimu/online-go-school/internal/usecase/review"
	"github.com/igomimu/online-go-school/internal/utils"
)

type ReviewHandler struct {
	log      *zap.SugaredLogger
	reviewUC *reviewuc.ReviewUseCase
}

func NewReviewHandler(log *zap.SugaredLogger) *ReviewHandler {
	return &ReviewHandler{
		log:      log,
		reviewUC: reviewuc.NewReviewUseCase(log),
	}
}

type startResponse struct {
	ReviewID string `json:"review_id"`
	Board    any    `json:"board"`
}

// HandleStartReview принимает SGF как тело запроса и открывает разбор.
// Битый SGF не ошибка: парсер деградирует до пустого дерева.
func (h *ReviewHandler) HandleStartReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpresponse.WriteResponseWithStatus(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error("failed to read body: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "failed to read request body"})
		return
	}
	defer r.Body.Close()

	rev := h.reviewUC.StartReview(string(body))

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, startResponse{
		ReviewID: rev.ID,
		Board:    reviewuc.BoardPayload(rev.Cursor.Current),
	})
}

type navigateRequest struct {
	ReviewID  string `json:"review_id"`
	Op        string `json:"op"`
	Variation int    `json:"variation"`
}

func (h *ReviewHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	payload, err := h.reviewUC.Navigate(req.ReviewID, req.Op, req.Variation)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, payload)
}

type moveRequest struct {
	ReviewID string `json:"review_id"`
	Color    string `json:"color"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

func (h *ReviewHandler) HandleAddMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	color := engine.Black
	if strings.EqualFold(req.Color, "white") || strings.EqualFold(req.Color, "w") {
		color = engine.White
	}

	payload, err := h.reviewUC.AddMove(req.ReviewID, engine.Move{X: req.X, Y: req.Y, Color: color})
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, payload)
}

type markerRequest struct {
	ReviewID string `json:"review_id"`
	Kind     string `json:"kind"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Text     string `json:"text,omitempty"`
}

func (h *ReviewHandler) HandleAddMarker(w http.ResponseWriter, r *http.Request) {
	var req markerRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		h.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: httpresponse.MALFORMEDJSON_errorDesc})
		return
	}

	kind := tree.MarkerKind(strings.ToUpper(req.Kind))
	if !kind.Valid() {
		h.log.Error("unknown marker kind: ", req.Kind)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "unknown marker kind"})
		return
	}

	marker := tree.Marker{
		X:    req.X,
		Y:    req.Y,
		Kind: kind,
		Text: req.Text,
	}

	payload, err := h.reviewUC.AddMarker(req.ReviewID, marker)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, payload)
}

func (h *ReviewHandler) HandleExportSGF(w http.ResponseWriter, r *http.Request) {
	reviewID := r.URL.Query().Get("review_id")
	if reviewID == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest,
			httpresponse.ErrorResponse{ErrorDescription: "review_id is required"})
		return
	}

	sgfText, err := h.reviewUC.ExportSGF(reviewID)
	if err != nil {
		h.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound,
			httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/x-go-sgf")
	_, _ = w.Write([]byte(sgfText))
}
