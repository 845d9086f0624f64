package problems

import (
	"context"

	"github.com/igomimu/online-go-school/internal/domain/problem"
)

type ProblemStore interface {
	ImportFromDir(ctx context.Context, dir string) (int, error)
	GetPageForAccount(ctx context.Context, accountID string, level, pageNum int) (*problem.Page, error)
	MarkSolved(ctx context.Context, accountID string, number int) error
}

type ProblemUseCase struct {
	store ProblemStore
}

func NewProblemUseCase(store ProblemStore) *ProblemUseCase {
	return &ProblemUseCase{store: store}
}

func (p *ProblemUseCase) Import(ctx context.Context, dir string) (int, error) {
	return p.store.ImportFromDir(ctx, dir)
}

func (p *ProblemUseCase) PageForAccount(ctx context.Context, accountID string, level, pageNum int) (*problem.Page, error) {
	return p.store.GetPageForAccount(ctx, accountID, level, pageNum)
}

func (p *ProblemUseCase) MarkSolved(ctx context.Context, accountID string, number int) error {
	return p.store.MarkSolved(ctx, accountID, number)
}
