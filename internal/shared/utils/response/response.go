package response

import "github.com/gin-gonic/gin"

// Envelope is the JSON body every endpoint returns. Data carries the payload
// on success; Errors carries validation or failure detail.
type Envelope struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     interface{} `json:"errors,omitempty"`
}

// RespondJSON writes the standard envelope. status is "success" or "error"
// and mirrors whether code is 2xx.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
