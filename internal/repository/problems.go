package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/igomimu/online-go-school/internal/bootstrap"
	"github.com/igomimu/online-go-school/internal/domain/problem"
	"github.com/igomimu/online-go-school/internal/domain/sgf"
)

const problemsCollection = "problems"

type ProblemStorage struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	mongo *mongo.Database
}

func NewProblemStorage(cfg bootstrap.Config, log *zap.SugaredLogger, mongo *mongo.Database) *ProblemStorage {
	return &ProblemStorage{cfg: cfg, log: log, mongo: mongo}
}

// ImportFromDir обходит каталог сборника и кладёт все .sgf файлы в
// Mongo. Номер задачи — имя файла, уровень — номер главы из пути.
func (p *ProblemStorage) ImportFromDir(ctx context.Context, dir string) (int, error) {
	imported := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".sgf") {
			return nil
		}

		pr, err := p.problemFromFile(path)
		if err != nil {
			return fmt.Errorf("файл %s: %w", path, err)
		}
		if err := p.Save(ctx, pr); err != nil {
			return fmt.Errorf("сохранение %s: %w", path, err)
		}
		imported++
		return nil
	})
	return imported, err
}

func (p *ProblemStorage) problemFromFile(path string) (*problem.Problem, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	number, err := strconv.Atoi(name)
	if err != nil {
		return nil, fmt.Errorf("имя файла не номер задачи: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Парсер деградирует молча; задача без единого узла бесполезна.
	rec := sgf.Parse(string(data))
	if len(rec.Root.Children) == 0 && rec.Root.Board.StoneCount() == 0 {
		return nil, fmt.Errorf("пустая или нечитаемая задача")
	}

	level, ok := extractChapterIndex(path)
	if !ok {
		level = 0
	}

	return &problem.Problem{
		Number: number,
		Level:  level,
		SGF:    string(data),
	}, nil
}

var chapterPattern = regexp.MustCompile(`(?i)^Chapter (\d+)$`)

func extractChapterIndex(path string) (int, bool) {
	for _, dir := range strings.Split(filepath.ToSlash(path), "/") {
		if match := chapterPattern.FindStringSubmatch(dir); len(match) == 2 {
			index, err := strconv.Atoi(match[1])
			if err != nil {
				return 0, false
			}
			return index, true
		}
	}
	return 0, false
}

func (p *ProblemStorage) Save(ctx context.Context, pr *problem.Problem) error {
	_, err := p.mongo.Collection(problemsCollection).InsertOne(ctx, pr)
	return err
}

// GetPageForAccount отдаёт страницу задач уровня с отметками
// solved/unsolved для конкретного ученика. Нерешённые идут после
// решённых не меняя относительного порядка; отдельно возвращается
// номер первой страницы с нерешённой задачей.
func (p *ProblemStorage) GetPageForAccount(ctx context.Context, accountID string, level, pageNum int) (*problem.Page, error) {
	solved := p.solvedSet(ctx, accountID)

	cursor, err := p.mongo.Collection(problemsCollection).Find(ctx, bson.M{"level": level})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []problem.Problem
	if err := cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	for i := range all {
		if _, ok := solved[all[i].Number]; ok {
			all[i].Status = problem.StatusSolved
		} else {
			all[i].Status = problem.StatusUnsolved
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Status < all[j].Status
	})

	pageLimit := p.cfg.PageLimitProblems
	if pageLimit < 1 {
		pageLimit = 10
	}

	pageWithUnresolved := 1
	for i := range all {
		if all[i].Status == problem.StatusUnsolved {
			pageWithUnresolved = (i / pageLimit) + 1
			break
		}
	}

	totalPages := (len(all) + pageLimit - 1) / pageLimit
	start := (pageNum - 1) * pageLimit
	end := start + pageLimit
	if start > len(all) || start < 0 {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	return &problem.Page{
		PageNum:            pageNum,
		TotalPages:         totalPages,
		PageWithUnresolved: pageWithUnresolved,
		Problems:           all[start:end],
	}, nil
}

func (p *ProblemStorage) solvedSet(ctx context.Context, accountID string) map[int]struct{} {
	solved := make(map[int]struct{})

	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return solved
	}

	var acc struct {
		Statistic struct {
			SolvedProblems []int `bson:"solved_problems"`
		} `bson:"statistic"`
	}
	err = p.mongo.Collection(accountsCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&acc)
	if err != nil {
		return solved
	}
	for _, n := range acc.Statistic.SolvedProblems {
		solved[n] = struct{}{}
	}
	return solved
}

// MarkSolved добавляет задачу в решённые ученика (идемпотентно).
func (p *ProblemStorage) MarkSolved(ctx context.Context, accountID string, number int) error {
	oid, err := primitive.ObjectIDFromHex(accountID)
	if err != nil {
		return fmt.Errorf("invalid account id: %w", err)
	}

	update := bson.M{
		"$addToSet": bson.M{"statistic.solved_problems": number},
	}
	_, err = p.mongo.Collection(accountsCollection).UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("ошибка при отметке задачи: %w", err)
	}
	return nil
}
