package http

import (
	"net/http"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/smsflt/sms-filter/internal/metrics"
	"github.com/smsflt/sms-filter/internal/model"
	"github.com/smsflt/sms-filter/internal/repository"
)

func listMessagesHandler(repo repository.MessagesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		msgs, err := repo.List(c.Request().Context())
		if err != nil {
			log.Errorf("list messages failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		metrics.StoreOpsTotal.WithLabelValues("list").Inc()

		// An empty store reports not-found rather than an empty list. Odd
		// as API design goes, but it is the published contract.
		if len(msgs) == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"message": "No messages found"})
		}

		return c.JSON(http.StatusOK, msgs)
	}
}

type updateReq struct {
	Status     *string `json:"status"`
	IsVerified *bool   `json:"is_verified"`
}

// updateMessageHandler applies a partial update: only fields present in the
// payload are touched. Field presence, not value, decides what changes.
func updateMessageHandler(repo repository.MessagesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		var req updateReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		if req.Status == nil && req.IsVerified == nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No fields to update"})
		}

		var st *model.Status
		if req.Status != nil {
			tmp := model.Status(*req.Status)
			if !tmp.Valid() {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status value"})
			}
			st = &tmp
		}

		updated, err := repo.Update(c.Request().Context(), id, st, req.IsVerified)
		if err != nil {
			log.Errorf("update message %s failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if !updated {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
		}

		metrics.StoreOpsTotal.WithLabelValues("update").Inc()

		return c.JSON(http.StatusOK, map[string]string{"message": "Message updated successfully"})
	}
}

func deleteMessageHandler(repo repository.MessagesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")

		deleted, err := repo.Delete(c.Request().Context(), id)
		if err != nil {
			log.Errorf("delete message %s failed: %v", id, err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}
		if !deleted {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
		}

		metrics.StoreOpsTotal.WithLabelValues("delete").Inc()

		return c.JSON(http.StatusOK, map[string]string{"message": "Message deleted successfully"})
	}
}
