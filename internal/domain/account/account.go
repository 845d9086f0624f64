package account

import "time"

// Роли внутри школы: ученики играют и решают задачи, преподаватели
// ведут разборы.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Role         string    `json:"role" bson:"role"`
	Rank         string    `json:"rank,omitempty" bson:"rank,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
	Statistic    Statistic `json:"statistic" bson:"statistic"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	PasswordSalt string    `json:"-" bson:"password_salt"`
}

type Statistic struct {
	Wins           int   `json:"wins" bson:"wins"`
	Losses         int   `json:"losses" bson:"losses"`
	Draws          int   `json:"draws" bson:"draws"`
	SolvedProblems []int `json:"solved_problems,omitempty" bson:"solved_problems,omitempty"`
}
