package review

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/arbiter"
	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/sgf"
	"github.com/igomimu/online-go-school/internal/domain/tree"
	"github.com/igomimu/online-go-school/internal/errors"
)

// Навигационные операции разбора.
const (
	OpRoot      = "root"
	OpBack      = "back"
	OpForward   = "forward"
	OpVariation = "variation"
	OpEnd       = "end"
)

// Review is one teacher-led walkthrough of a record: the parsed tree
// plus a cursor over it. Вся навигация идёт через курсор, дерево не
// меняется — кроме явных добавлений вариантов преподавателем.
type Review struct {
	ID     string
	Record *sgf.Record
	Cursor *tree.Cursor
}

type ReviewUseCase struct {
	log *zap.SugaredLogger

	mu      sync.RWMutex
	reviews map[string]*Review
}

func NewReviewUseCase(log *zap.SugaredLogger) *ReviewUseCase {
	return &ReviewUseCase{
		log:     log,
		reviews: make(map[string]*Review),
	}
}

// StartReview parses SGF text into a review. The parser never fails —
// broken input degrades to an empty tree on a default board.
func (u *ReviewUseCase) StartReview(sgfText string) *Review {
	rec := sgf.Parse(sgfText)
	rev := &Review{
		ID:     uuid.NewString(),
		Record: rec,
		Cursor: tree.NewCursor(rec.Root),
	}

	u.mu.Lock()
	u.reviews[rev.ID] = rev
	u.mu.Unlock()

	u.log.Infof("review %s started, board %dx%d", rev.ID, rec.Size, rec.Size)
	return rev
}

func (u *ReviewUseCase) Get(reviewID string) (*Review, error) {
	u.mu.RLock()
	rev, ok := u.reviews[reviewID]
	u.mu.RUnlock()
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return rev, nil
}

// Navigate moves the cursor. Unknown operations and invalid variation
// indexes leave the cursor where it was.
func (u *ReviewUseCase) Navigate(reviewID string, op string, variation int) (arbiter.BoardUpdatePayload, error) {
	rev, err := u.Get(reviewID)
	if err != nil {
		return arbiter.BoardUpdatePayload{}, err
	}

	switch op {
	case OpRoot:
		rev.Cursor.ToRoot()
	case OpBack:
		rev.Cursor.StepBack()
	case OpForward:
		rev.Cursor.StepForward()
	case OpVariation:
		rev.Cursor.JumpToVariation(variation)
	case OpEnd:
		rev.Cursor.FastForwardToEnd()
	}

	return BoardPayload(rev.Cursor.Current), nil
}

// AddMove lets the reviewer branch off the current position. The same
// move twice lands on the same child.
func (u *ReviewUseCase) AddMove(reviewID string, m engine.Move) (arbiter.BoardUpdatePayload, error) {
	rev, err := u.Get(reviewID)
	if err != nil {
		return arbiter.BoardUpdatePayload{}, err
	}

	rev.Cursor.Current = rev.Cursor.Current.AddMove(m)
	return BoardPayload(rev.Cursor.Current), nil
}

// AddMarker annotates the current position.
func (u *ReviewUseCase) AddMarker(reviewID string, marker tree.Marker) (arbiter.BoardUpdatePayload, error) {
	rev, err := u.Get(reviewID)
	if err != nil {
		return arbiter.BoardUpdatePayload{}, err
	}

	node := rev.Cursor.Current
	node.Markers = append(node.Markers, marker)
	return BoardPayload(node), nil
}

// ExportSGF serializes the reviewed tree, added variations included.
func (u *ReviewUseCase) ExportSGF(reviewID string) (string, error) {
	rev, err := u.Get(reviewID)
	if err != nil {
		return "", err
	}
	return sgf.Generate(rev.Record), nil
}

// BoardPayload snapshots a tree node into the broadcast payload form.
func BoardPayload(n *tree.Node) arbiter.BoardUpdatePayload {
	next := engine.Black
	if n.Move != nil {
		next = n.Move.Color.Opponent()
	}
	return arbiter.BoardUpdatePayload{
		BoardState: engine.BoardHash(n.Board),
		BoardSize:  n.Size,
		NextColor:  next.String(),
		Markers:    n.Markers,
		MoveNumber: n.NextNumber,
	}
}
