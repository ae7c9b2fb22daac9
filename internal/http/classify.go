package http

import (
	"errors"
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/smsflt/sms-filter/internal/service/classify"
)

type classifyReq struct {
	Message    *string `json:"message"`
	Sender     string  `json:"sender"`
	Timestamp  string  `json:"timestamp"`
	IsVerified bool    `json:"is_verified"`
}

func classifyHandler(svc *classify.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req classifyReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No message provided"})
		}

		res, err := svc.Classify(c.Request().Context(), classify.Request{
			Message:    req.Message,
			Sender:     req.Sender,
			Timestamp:  req.Timestamp,
			IsVerified: req.IsVerified,
		})
		if err != nil {
			if errors.Is(err, classify.ErrNoMessage) || errors.Is(err, classify.ErrInvalidMessage) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}

			log.Errorf("classify failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Classification error: " + err.Error()})
		}

		return c.JSON(http.StatusOK, res)
	}
}
