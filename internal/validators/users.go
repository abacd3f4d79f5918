package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-ferrari-store/models"
)

// Field names accepted by the user checks.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldAddress  = "address"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes
	MaxPasswordBytes = 72
	MaxNameLength    = 100
	MaxAddressLength = 300
)

func (v *StoreValidator) validateUser(ctx context.Context, user models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := checkPassword(user.Password); err != nil {
				return err
			}
		case FieldName:
			if !isValidName(user.Name) {
				return ErrInvalidName
			}
		case FieldPhone:
			if !isValidPhone(user.Phone) {
				return ErrInvalidPhone
			}
		case FieldAddress:
			if utf8.RuneCountInString(user.Address) > MaxAddressLength {
				return ErrInvalidAddress
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *StoreValidator) validateUserUpdate(ctx context.Context, update models.UserUpdate, fields ...string) error {
	if update.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if update.Name != nil && !isValidName(*update.Name) {
		return ErrInvalidName
	}
	if update.Password != nil {
		if err := checkPassword(*update.Password); err != nil {
			return err
		}
	}
	if update.Phone != nil && !isValidPhone(*update.Phone) {
		return ErrInvalidPhone
	}
	if update.Address != nil && utf8.RuneCountInString(*update.Address) > MaxAddressLength {
		return ErrInvalidAddress
	}
	return nil
}

func (v *StoreValidator) validateRoleUpdate(ctx context.Context, update models.RoleUpdate) error {
	if !update.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

func isValidEmail(email string) bool {
	if email == "" || strings.TrimSpace(email) != email {
		return false
	}
	addr, err := mail.ParseAddress(email)
	// reject "Name <addr>" forms, only bare addresses are logins
	return err == nil && addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@"):], ".")
}

func checkPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && utf8.RuneCountInString(name) <= MaxNameLength
}

// isValidPhone accepts an empty value or digits with the usual separators.
func isValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= 7 && digits <= 15
}
