package entities

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 6

// BirthDateLayout is the accepted fecha_nacimiento format
const BirthDateLayout = "2006-01-02"

// User represents a registered bettor
type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nombre"`
	Surname      null.String     `json:"apellido"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	BirthDate    null.String     `json:"fecha_nacimiento"`
	Balance      decimal.Decimal `json:"monto"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DisplayName joins name and surname the way the login response shows it
func (u *User) DisplayName() string {
	if u.Surname.Valid && strings.TrimSpace(u.Surname.String) != "" {
		return u.Name + " " + u.Surname.String
	}
	return u.Name
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Name      string `json:"nombre"`
	Surname   string `json:"apellido"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	BirthDate string `json:"fecha_nacimiento"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User  *User
	Token string
}

// ChangePasswordInput represents input for changing user password
type ChangePasswordInput struct {
	UserID          int64
	CurrentPassword string
	NewPassword     string
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordMeetsPolicy requires MinPasswordLength characters with at least
// one lowercase letter, one uppercase letter and one digit.
func PasswordMeetsPolicy(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digit = true
		}
	}
	return lower && upper && digit
}
