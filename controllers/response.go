package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/Kariqs/littlelemon-api/apperr"
	"github.com/Kariqs/littlelemon-api/logger"
	"github.com/Kariqs/littlelemon-api/middlewares"
	"github.com/Kariqs/littlelemon-api/repository"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidInput        = "invalid input"
	msgInternalServerError = "Internal server error"
)

func sendJSONResponse(ctx *gin.Context, status int, data any) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

// responder is embedded by every controller to turn service errors into
// responses.
type responder struct {
	log *logger.Logger
}

// fail writes the response for err. Server-side failures are logged with
// the request id and answered with a generic message.
func (r responder) fail(ctx *gin.Context, action string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		if r.log != nil {
			r.log.Error(action, middlewares.RequestID(ctx), "request failed", err)
		}
		if status == http.StatusServiceUnavailable {
			sendErrorResponse(ctx, status, err.Error())
			return
		}
		sendErrorResponse(ctx, status, msgInternalServerError)
		return
	}
	sendErrorResponse(ctx, status, err.Error())
}

// badRequest answers a failed bind with a message naming the offending
// fields.
func badRequest(ctx *gin.Context, err error) {
	var (
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describeFieldError(fe))
		}
		sendErrorResponse(ctx, http.StatusBadRequest, strings.Join(msgs, "; "))
	case errors.As(err, &typeErr):
		sendErrorResponse(ctx, http.StatusBadRequest, fmt.Sprintf("%s: expected %s", typeErr.Field, typeErr.Type))
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		sendErrorResponse(ctx, http.StatusBadRequest, "malformed JSON body")
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput+": "+err.Error())
	}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + ": this field is required"
	case "min":
		return fmt.Sprintf("%s: must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: must be at most %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + ": enter a valid email address"
	default:
		return fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag())
	}
}

var registerTagNames sync.Once

// UseJSONFieldNames makes binding errors report json names instead of Go
// struct field names.
func UseJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "Not found.")
		return 0, false
	}
	return uint(id), true
}

// pageFromQuery reads the optional page and limit parameters. Without a
// limit the listing is not paginated.
func pageFromQuery(ctx *gin.Context) (repository.Page, error) {
	rawLimit := ctx.Query("limit")
	if rawLimit == "" {
		return repository.Page{}, nil
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		return repository.Page{}, apperr.Invalid("limit", "must be a positive integer")
	}
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return repository.Page{}, apperr.Invalid("page", "must be a positive integer")
	}
	return repository.NewPage(page, limit), nil
}

// sendList writes a bare array, or the results with a metadata block when
// the listing was paginated.
func sendList(ctx *gin.Context, results any, total int64, page repository.Page) {
	if page.Limit == 0 {
		sendJSONResponse(ctx, http.StatusOK, results)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"results": results,
		"metadata": gin.H{
			"total": total,
			"page":  page.Number,
			"limit": page.Limit,
		},
	})
}
