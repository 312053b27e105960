package httperr

import (
	"net/http"

	"vehicle-rental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// category order matters: the first matching mark wins.
var categories = []struct {
	mark   error
	status int
	code   string
}{
	{errs.ErrValidation, http.StatusBadRequest, "validation_failed"},
	{errs.ErrUnauthorized, http.StatusForbidden, "forbidden"},
	{errs.ErrNotFound, http.StatusNotFound, "not_found"},
	{errs.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{errs.ErrDuplicateSettlement, http.StatusConflict, "duplicate_settlement"},
	{errs.ErrConflict, http.StatusConflict, "conflict"},
	{errs.ErrTimeout, http.StatusServiceUnavailable, "timeout"},
	{errs.ErrDatabaseOperationFailed, http.StatusInternalServerError, "internal"},
}

// Classify maps a categorized error to its HTTP status and a stable code.
// Uncategorized errors are 500.
func Classify(err error) (int, string) {
	for _, c := range categories {
		if errs.Is(err, c.mark) {
			return c.status, c.code
		}
	}
	return http.StatusInternalServerError, "internal"
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, status, "", err, msg, detail)
}

// AbortWithCategory derives the status from the error's category. Internal
// failures never leak their message.
func AbortWithCategory(c *gin.Context, err error, detail any) {
	status, code := Classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
		detail = nil
	}
	abort(c, status, code, err, msg, detail)
}

func abort(c *gin.Context, status int, code string, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
