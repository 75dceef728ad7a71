package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polyclinic/clinic-api/pkg/apperror"
)

const problemTypeBase = "https://api.polyclinic.example/problems/"

// Problem is an RFC 7807 Problem Details body. All error responses use
// this shape.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

// RespondWithError renders err as a Problem Details body. The status
// code and title come from the error kind in one central place.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperror.From(err)

	c.Header("Content-Type", "application/problem+json")
	c.JSON(appErr.HTTPStatus(), Problem{
		Type:     problemTypeBase + appErr.Slug(),
		Title:    appErr.Title(),
		Status:   appErr.HTTPStatus(),
		Detail:   appErr.Message,
		Instance: c.Request.URL.Path,
	})
}

// RespondWithValidationError renders a binding/shape failure as a 400
// problem before any entity is constructed.
func RespondWithValidationError(c *gin.Context, err error) {
	c.Header("Content-Type", "application/problem+json")
	c.JSON(http.StatusBadRequest, Problem{
		Type:     problemTypeBase + "validation",
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   err.Error(),
		Instance: c.Request.URL.Path,
	})
}
