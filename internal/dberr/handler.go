package dberr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/items-api/internal/database"
	"github.com/deppfellow/items-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CodeInvalidItemID is sent for an id the store cannot parse.
const CodeInvalidItemID = "INVALID_ITEM_ID"

// HandleError converts an error coming out of the store into an
// *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - database.ErrInvalidID: 400 INVALID_ITEM_ID
//   - database.ErrNotFound: 404 with an empty body
//   - unreachable store: 503
//   - constraint violations: 400
//   - anything else: 500
func HandleError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, database.ErrInvalidID):
		code := CodeInvalidItemID
		return errs.NewBadRequestError("Invalid item id", true, &code, nil, nil)
	case errors.Is(err, database.ErrNotFound):
		return errs.NewNotFoundError("Item not found", false, nil).WithEmptyBody()
	}

	switch ErrCode(err) {
	case Unavailable:
		return errs.NewServiceUnavailableError("Item store is unavailable")
	case UniqueViolation:
		code := "ITEM_ALREADY_EXISTS"
		return errs.NewBadRequestError("An item with this identifier already exists", true, &code, nil, nil)
	case NotNullViolation, CheckViolation:
		column := columnOf(err)
		code := "ITEM_INVALID"
		fieldErrors := []errs.FieldError{{Field: strings.ToLower(column), Error: "is invalid"}}
		return errs.NewBadRequestError(fmt.Sprintf("The %s value is invalid", humanize(column)), true, &code, fieldErrors, nil)
	case InvalidText:
		code := CodeInvalidItemID
		return errs.NewBadRequestError("Invalid item id", true, &code, nil, nil)
	}

	return errs.NewInternalServerError()
}

func columnOf(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return "field"
}

// humanize turns "created_at" into "Created At".
func humanize(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
