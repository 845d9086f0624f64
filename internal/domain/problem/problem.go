package problem

// Problem — одна задача (цумэго) из библиотеки школы. Позиция хранится
// как SGF, уровень соответствует главе сборника.
type Problem struct {
	Number int    `json:"number" bson:"number"`
	Level  int    `json:"level" bson:"level"`
	SGF    string `json:"sgf" bson:"sgf"`
	Status string `json:"status,omitempty" bson:"-"`
}

const (
	StatusSolved   = "solved"
	StatusUnsolved = "unsolved"
)

type Page struct {
	PageNum            int       `json:"page"`
	TotalPages         int       `json:"total_pages"`
	PageWithUnresolved int       `json:"page_with_unresolved"`
	Problems           []Problem `json:"problems"`
}
