package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/yarotech/pos-api/internal/application/service"
	"github.com/yarotech/pos-api/internal/presentation/http/dto/response"
)

// StatsHandler handles sales statistics HTTP requests
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetSalesStats returns dashboard statistics. Admins and moderators see
// figures across all users; everyone else sees their own.
func (h *StatsHandler) GetSalesStats(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	scope := userID
	if IsAuditor(c) {
		scope = nil
	}

	stats, err := h.statsService.GetSalesStats(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistics retrieved", stats)
}
