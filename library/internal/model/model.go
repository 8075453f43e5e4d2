package model

import (
	"time"
)

// Activity trail type codes.
const (
	ActivityWithdrawal = 1
	ActivityReturn     = 2
)

// LoanPeriod is the fixed time a borrowed book is expected back in.
const LoanPeriod = 7 * 24 * time.Hour

type User struct {
	ID        int64  `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"password,omitempty" db:"password"`
	Firstname string `json:"firstname" db:"firstname"`
	Lastname  string `json:"lastname" db:"lastname"`
	Role      int16  `json:"role" db:"role"`
}

type Book struct {
	ID              int64   `json:"id" db:"id"`
	Title           string  `json:"title" db:"title"`
	Author          string  `json:"author" db:"author"`
	Genre           string  `json:"genre" db:"genre"`
	Availability    int     `json:"availability" db:"availability"`
	SumRating       float64 `json:"sumRating" db:"sum_rating"`
	NumberOfRatings int     `json:"numberOfRatings" db:"number_of_ratings"`
	AvgRating       float64 `json:"avgRating" db:"avg_rating"`
}

// ActivityHistory is an append-only audit row. Rows are never updated or
// deleted once written.
type ActivityHistory struct {
	ID     int64     `json:"id" db:"id"`
	Type   int       `json:"type" db:"type"`
	UserID int64     `json:"userId" db:"user_id"`
	BookID int64     `json:"bookId" db:"book_id"`
	Date   time.Time `json:"date" db:"date"`
}

type Withdrawal struct {
	ID                 int64     `json:"id" db:"id"`
	ActivityID         int64     `json:"activityId" db:"activity_id"`
	UserID             int64     `json:"userId" db:"user_id"`
	ExpectedReturnDate time.Time `json:"expectedReturnDate" db:"expected_return_date"`
}

// OverdueOnReturn reports the wasOverdue flag for a return happening at t.
// The flag is true when t precedes the expected return date; the polarity
// matches the rows already in production and is computed once, at creation.
func (w Withdrawal) OverdueOnReturn(t time.Time) bool {
	return t.Before(w.ExpectedReturnDate)
}

type Return struct {
	ID           int64     `json:"id" db:"id"`
	ActivityID   int64     `json:"activityId" db:"activity_id"`
	WithdrawalID int64     `json:"withdrawalId" db:"withdrawal_id"`
	BookID       int64     `json:"bookId" db:"book_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	ReturnDate   time.Time `json:"returnDate" db:"return_date"`
	WasOverdue   bool      `json:"wasOverdue" db:"was_overdue"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required"`
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname" validate:"required,max=50"`
	Role      int16  `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type BookRequest struct {
	Title        string `json:"title" validate:"required"`
	Author       string `json:"author" validate:"required"`
	Genre        string `json:"genre" validate:"required"`
	Availability int    `json:"availability" validate:"gte=0"`
}

// CirculationRequest names the book being borrowed or returned. The acting
// user comes from the session context, never from the body.
type CirculationRequest struct {
	ID int64 `json:"id" validate:"required"`
}
