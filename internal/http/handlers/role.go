package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/http/response"
	"github.com/yungbote/personnel-backend/internal/services"
)

type RoleHandler struct {
	roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name        string  `json:"name" binding:"required,max=20"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

type updateRoleRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=20"`
	Description *string `json:"description" binding:"omitempty,max=200"`
}

// POST /api/roles
func (rh *RoleHandler) Create(c *gin.Context) {
	var req createRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, err)
		return
	}
	role, err := rh.roleService.Create(c.Request.Context(), services.CreateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, "Role Created Successfully", role)
}

// GET /api/roles
func (rh *RoleHandler) List(c *gin.Context) {
	var req pagination.Request
	if err := bindQuery(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	page, err := rh.roleService.List(c.Request.Context(), req, pagination.RequestURL(c.Request))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Roles Found Successfully", page)
}

// GET /api/roles/:id
func (rh *RoleHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	role, err := rh.roleService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Role Found Successfully", role)
}

// PATCH /api/roles/:id
func (rh *RoleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, err)
		return
	}
	role, err := rh.roleService.Update(c.Request.Context(), id, services.UpdateRoleInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Role Updated Successfully", role)
}

// DELETE /api/roles/:id
func (rh *RoleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if err := rh.roleService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Role Deleted Successfully", nil)
}
