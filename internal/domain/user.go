package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles recognized by the usuario table.
const (
	RoleStudent = "estudiante"
	RoleTeacher = "docente"
	RoleAdmin   = "administrador"
)

// DefaultStudentPassword is the bcrypt hash stored for accounts created by a
// roster import. Students are expected to change it on first login.
const DefaultStudentPassword = "$2y$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

// User is one row of the usuario table. Surnames are kept split because the
// school reports list students by first surname.
type User struct {
	ID            uuid.UUID `json:"id"`
	Names         string    `json:"nombres"`
	FirstSurname  string    `json:"primer_apellido"`
	SecondSurname string    `json:"segundo_apellido"`
	Email         string    `json:"email"`
	Role          string    `json:"rol"`
	PasswordHash  string    `json:"-"`
	BirthDate     *time.Time `json:"fecha_nacimiento,omitempty"`
	Gender        string    `json:"genero,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SplitSurname divides a raw surname string on the first space. When there is
// no space the second surname is empty.
func SplitSurname(raw string) (first, second string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	parts := strings.SplitN(raw, " ", 2)
	first = parts[0]
	if len(parts) > 1 {
		second = strings.TrimSpace(parts[1])
	}
	return first, second
}

// NewStudentUser builds a user record for a roster row that matched no
// existing account.
func NewStudentUser(names, surname, email string, birthDate *time.Time, gender string) User {
	first, second := SplitSurname(surname)
	return User{
		ID:            uuid.New(),
		Names:         names,
		FirstSurname:  first,
		SecondSurname: second,
		Email:         email,
		Role:          RoleStudent,
		PasswordHash:  DefaultStudentPassword,
		BirthDate:     birthDate,
		Gender:        gender,
	}
}
