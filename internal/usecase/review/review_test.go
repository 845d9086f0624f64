package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/domain/engine"
	"github.com/igomimu/online-go-school/internal/domain/tree"
	errs "github.com/igomimu/online-go-school/internal/errors"
)

func newTestUseCase() *ReviewUseCase {
	return NewReviewUseCase(zap.NewNop().Sugar())
}

func TestStartAndNavigate(t *testing.T) {
	uc := newTestUseCase()
	rev := uc.StartReview("(;GM[1]SZ[9];B[ee];W[dd])")

	payload, err := uc.Navigate(rev.ID, OpEnd, 0)
	require.NoError(t, err)
	assert.Equal(t, "black", payload.NextColor, "after White's move Black is to play")
	assert.Equal(t, 3, payload.MoveNumber)

	payload, err = uc.Navigate(rev.ID, OpBack, 0)
	require.NoError(t, err)
	assert.Equal(t, "white", payload.NextColor)

	payload, err = uc.Navigate(rev.ID, OpRoot, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, payload.MoveNumber)
}

func TestNavigateUnknownReview(t *testing.T) {
	uc := newTestUseCase()
	_, err := uc.Navigate("missing", OpForward, 0)
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestAddVariationAndExport(t *testing.T) {
	uc := newTestUseCase()
	rev := uc.StartReview("(;GM[1]SZ[9];B[ee];W[dd])")

	// встаём после первого хода и показываем другой ответ белых
	_, err := uc.Navigate(rev.ID, OpForward, 0)
	require.NoError(t, err)
	_, err = uc.AddMove(rev.ID, engine.Move{X: 7, Y: 7, Color: engine.White})
	require.NoError(t, err)

	out, err := uc.ExportSGF(rev.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "(;W[dd])")
	assert.Contains(t, out, "(;W[gg])")
}

func TestAddMarker(t *testing.T) {
	uc := newTestUseCase()
	rev := uc.StartReview("(;GM[1]SZ[9];B[ee])")

	_, err := uc.Navigate(rev.ID, OpForward, 0)
	require.NoError(t, err)
	payload, err := uc.AddMarker(rev.ID, tree.Marker{X: 5, Y: 5, Kind: tree.MarkTriangle})
	require.NoError(t, err)

	require.Len(t, payload.Markers, 1)
	assert.Equal(t, tree.MarkTriangle, payload.Markers[0].Kind)

	out, err := uc.ExportSGF(rev.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "TR[ee]")
}

func TestBrokenSGFDegradesToEmptyReview(t *testing.T) {
	uc := newTestUseCase()
	rev := uc.StartReview("this is not sgf at all")

	assert.Equal(t, 19, rev.Record.Size)
	payload, err := uc.Navigate(rev.ID, OpEnd, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, payload.MoveNumber)
	assert.Equal(t, "black", payload.NextColor)
}
