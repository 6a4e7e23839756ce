package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siswadata/rapor-backend/internal/model"
	"github.com/siswadata/rapor-backend/internal/response"
	"github.com/siswadata/rapor-backend/internal/service"
)

// failFromError maps engine errors onto the response error taxonomy.
// Validation failures become 400s; a store value that no longer parses as
// JSON is reported as corruption, everything else as internal.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrSessionKeyEmpty),
		errors.Is(err, model.ErrSessionKeyAmbiguous),
		errors.Is(err, model.ErrOccurrenceRequired),
		errors.Is(err, model.ErrInvalidDate):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSessionKey)
	case errors.Is(err, service.ErrTopicRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrTopicRequired)
	case errors.Is(err, service.ErrScoreOutOfRange):
		response.Fail(c, http.StatusBadRequest, response.ErrScoreOutOfRange)
	case errors.Is(err, service.ErrInvalidStatus):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidStatus)
	case errors.Is(err, service.ErrInvalidMonth):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidMonth)
	case errors.Is(err, service.ErrInvalidRecapMode):
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRecapMode)
	case errors.Is(err, service.ErrInvalidKind),
		errors.Is(err, service.ErrStudentRequired),
		errors.Is(err, service.ErrDateRequired):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, service.ErrBackupQueueUnavailable):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrBackupUnavailable)
	case isCorruption(err):
		response.Fail(c, http.StatusInternalServerError, response.ErrStoreCorrupted)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func isCorruption(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// SessionKeyPayload is the wire form of a session key. Exactly one of the
// date or topic schemes must be filled; the services validate that.
type SessionKeyPayload struct {
	Date       string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Topic      string `json:"topic" binding:"omitempty,min=1,max=100"`
	Occurrence int    `json:"occurrence" binding:"omitempty,min=1"`
}

// ToModel converts the payload into a model.SessionKey.
func (p SessionKeyPayload) ToModel() model.SessionKey {
	if p.Topic != "" {
		return model.TopicKey(p.Topic, p.Occurrence)
	}
	return model.DateKey(p.Date)
}

// sessionKeyFromQuery builds a session key from query parameters
// (?date=... or ?topic=...&occurrence=...).
func sessionKeyFromQuery(c *gin.Context) model.SessionKey {
	if topic := c.Query("topic"); topic != "" {
		occurrence, _ := atoiQuery(c, "occurrence")
		return model.TopicKey(topic, occurrence)
	}
	return model.DateKey(c.Query("date"))
}

func atoiQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	n := 0
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
