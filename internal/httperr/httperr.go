package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func ServiceUnavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// Messages maps business codes to the text shown to the user.
var Messages = map[string]string{
	"missing_staff_id":        "Please choose a staff member.",
	"invalid_staff_id":        "The selected staff member is invalid.",
	"missing_date":            "Please choose a date.",
	"invalid_date":            "The date must be formatted as YYYY-MM-DD.",
	"missing_time":            "Please choose a time.",
	"invalid_time":            "The time must be formatted as HH:MM.",
	"missing_service_id":      "Please choose a service.",
	"missing_customer_id":     "Please choose a customer.",
	"invalid_status":          "The appointment status is not allowed.",
	"invalid_state":           "The appointment cannot change to that status.",
	"salon_not_found":         "Salon not found.",
	"staff_not_found":         "Staff member not found.",
	"service_not_found":       "Service not found.",
	"customer_not_found":      "Customer not found.",
	"appointment_not_found":   "Appointment not found.",
	"slot_unavailable":        "This slot is no longer available.",
	"invalid_salon_hours":     "Opening time must be before closing time.",
	"invalid_icon":            "Unknown service icon.",
	"missing_customer_fields": "Name and phone are required.",
	"slug_already_exists":     "This salon address is already taken.",
	"email_already_exists":    "An account with this email already exists.",
	"phone_already_exists":    "A customer with this phone number already exists.",
	"user_not_found":          "User not found.",
	"service_in_use":          "The service has appointments; deactivate it instead.",
	"staff_in_use":            "The staff member has appointments; deactivate them instead.",
	"customer_in_use":         "The customer has appointments.",
}

// Respond writes err using its business kind. Store failures answer 503 so
// clients can retry instead of reading an empty result.
func Respond(c *gin.Context, err error) {
	if IsUnavailable(err) {
		ServiceUnavailable(c, "store_unavailable", "The service is temporarily unavailable, please try again.")
		return
	}

	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	msg, found := Messages[be.Code]
	if !found {
		msg = be.Code
	}

	code := be.Code
	switch be.Kind {
	case KindNotFound:
		NotFound(c, code, msg)
	case KindConflict:
		Conflict(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
}
