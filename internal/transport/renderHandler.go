package transport

import (
	"errors"
	"net/http"

	"github.com/ds124wfegd/WB_L3/promo/internal/entity"
	"github.com/gin-gonic/gin"
)

func (h *RenderHandler) SubmitRender(c *gin.Context) {
	name := c.Param("name")

	job, err := h.service.SubmitRender(c.Request.Context(), name)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, entity.RenderResponse{
		ID:     job.ID,
		Status: job.Status,
	})
}

func (h *RenderHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.service.GetJob(id)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *RenderHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.service.ListCampaigns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if campaigns == nil {
		campaigns = []string{}
	}

	c.JSON(http.StatusOK, entity.CampaignListResponse{Campaigns: campaigns})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrJobNotFound), errors.Is(err, entity.ErrCampaignNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
