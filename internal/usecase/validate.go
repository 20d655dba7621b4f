package usecase

import (
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/totegamma/foodgram/internal/domain"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

const fieldRequired = "This field is required."

func tooLong(max int) string {
	return "Ensure this field has no more than " + strconv.Itoa(max) + " characters."
}

func checkRequired(v *domain.ValidationError, field, value string, max int) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, fieldRequired)
		return false
	}
	if max > 0 && utf8.RuneCountInString(value) > max {
		v.Add(field, tooLong(max))
		return false
	}
	return true
}

func checkEmail(v *domain.ValidationError, email string) bool {
	if !checkRequired(v, "email", email, domain.MaxEmailLength) {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		v.Add("email", "Enter a valid email address.")
		return false
	}
	return true
}

func checkUsername(v *domain.ValidationError, username string) bool {
	if !checkRequired(v, "username", username, domain.MaxUserFieldLength) {
		return false
	}
	if !usernamePattern.MatchString(username) {
		v.Add("username", "Enter a valid username. It may contain only letters, numbers, and @/./+/-/_ characters.")
		return false
	}
	if strings.EqualFold(username, domain.ReservedUsername) {
		v.Add("username", `The username "`+domain.ReservedUsername+`" is reserved.`)
		return false
	}
	return true
}

func checkPassword(v *domain.ValidationError, field, password string) bool {
	if !checkRequired(v, field, password, domain.MaxUserFieldLength) {
		return false
	}
	ok := true
	if utf8.RuneCountInString(password) < domain.MinPasswordLength {
		v.Add(field, "This password is too short. It must contain at least "+strconv.Itoa(domain.MinPasswordLength)+" characters.")
		ok = false
	}
	if strings.Trim(password, "0123456789") == "" {
		v.Add(field, "This password is entirely numeric.")
		ok = false
	}
	return ok
}
