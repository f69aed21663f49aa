package transport

import (
	"github.com/ds124wfegd/WB_L3/promo/internal/service"
)

type RenderHandler struct {
	service service.RenderService
}

func NewRenderHandler(service service.RenderService) *RenderHandler {
	return &RenderHandler{service: service}
}
