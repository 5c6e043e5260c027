package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/inventory-service/internal/apperr"
)

// minFieldLen is the minimum length, in characters, of name and password.
const minFieldLen = 3

// CreateUserInput is the validated register payload.
type CreateUserInput struct {
	Name     string
	Password string
	RoleID   int64
}

// ValidateCreateUserFields checks the register body before the handler
// runs. Fields are checked in order name, password, role_id and the first
// failure is returned as *apperr.InvalidUserFieldError. Missing keys count
// as empty; role_id must be a JSON integer.
func ValidateCreateUserFields() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body, err := io.ReadAll(c.Request().Body)
			if err != nil {
				return err
			}

			raw := map[string]any{}
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			// an undecodable body is treated like an empty object
			if err := dec.Decode(&raw); err != nil || raw == nil {
				raw = map[string]any{}
			}

			in, err := parseCreateUser(raw)
			if err != nil {
				return err
			}
			c.Set(createUserKey, in)
			return next(c)
		}
	}
}

func parseCreateUser(raw map[string]any) (CreateUserInput, error) {
	var in CreateUserInput

	name, _ := raw["name"].(string)
	if utf8.RuneCountInString(name) < minFieldLen {
		return in, &apperr.InvalidUserFieldError{Field: "name"}
	}
	password, _ := raw["password"].(string)
	if utf8.RuneCountInString(password) < minFieldLen {
		return in, &apperr.InvalidUserFieldError{Field: "password"}
	}
	num, ok := raw["role_id"].(json.Number)
	if !ok {
		return in, &apperr.InvalidUserFieldError{Field: "role_id"}
	}
	roleID, err := num.Int64()
	if err != nil {
		return in, &apperr.InvalidUserFieldError{Field: "role_id"}
	}

	in.Name, in.Password, in.RoleID = name, password, roleID
	return in, nil
}
