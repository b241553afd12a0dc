package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personnel-backend/internal/data/pagination"
	"github.com/yungbote/personnel-backend/internal/http/response"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/apierr"
	"github.com/yungbote/personnel-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type personalInfoRequest struct {
	FirstName   string                `json:"firstName" binding:"required"`
	LastName    string                `json:"lastName" binding:"required"`
	Mobile      string                `json:"mobile" binding:"required,len=10"`
	DateOfBirth *Date                 `json:"dateOfBirth"`
	Email       *string               `json:"email" binding:"omitempty,email"`
	BloodGroup  *personnel.BloodGroup `json:"bloodGroup"`
	Address     *string               `json:"address"`
}

type employmentInfoRequest struct {
	DesignationID string  `json:"designationId" binding:"required,uuid"`
	EmpID         int     `json:"empId" binding:"required,gt=0"`
	NoticePeriod  *int    `json:"noticePeriod" binding:"required,min=0"`
	Email         *string `json:"email" binding:"omitempty,email"`
	JoiningDate   *Date   `json:"joiningDate"`
	ExpYears      *int    `json:"expYears" binding:"omitempty,min=0"`
	ExpMonths     *int    `json:"expMonths" binding:"omitempty,min=0"`
	ExpDays       *int    `json:"expDays" binding:"omitempty,min=0"`
}

type createUserRequest struct {
	Password       string                `json:"password" binding:"required"`
	PersonalInfo   personalInfoRequest   `json:"personalInfo"`
	EmploymentInfo employmentInfoRequest `json:"employmentInfo"`
}

type personalInfoPatchRequest struct {
	FirstName   *string               `json:"firstName" binding:"omitempty,min=1"`
	LastName    *string               `json:"lastName" binding:"omitempty,min=1"`
	Mobile      *string               `json:"mobile" binding:"omitempty,len=10"`
	DateOfBirth *Date                 `json:"dateOfBirth"`
	Email       *string               `json:"email" binding:"omitempty,email"`
	BloodGroup  *personnel.BloodGroup `json:"bloodGroup"`
	Address     *string               `json:"address"`
}

type employmentInfoPatchRequest struct {
	DesignationID *string `json:"designationId" binding:"omitempty,uuid"`
	EmpID         *int    `json:"empId" binding:"omitempty,gt=0"`
	NoticePeriod  *int    `json:"noticePeriod" binding:"omitempty,min=0"`
	Email         *string `json:"email" binding:"omitempty,email"`
	JoiningDate   *Date   `json:"joiningDate"`
	ExpYears      *int    `json:"expYears" binding:"omitempty,min=0"`
	ExpMonths     *int    `json:"expMonths" binding:"omitempty,min=0"`
	ExpDays       *int    `json:"expDays" binding:"omitempty,min=0"`
}

type updateUserRequest struct {
	Password       *string                     `json:"password" binding:"omitempty,min=1"`
	PersonalInfo   *personalInfoPatchRequest   `json:"personalInfo"`
	EmploymentInfo *employmentInfoPatchRequest `json:"employmentInfo"`
}

type listUsersQuery struct {
	pagination.Request
	RoleID string `form:"roleId" binding:"omitempty,uuid"`
}

// POST /api/user
func (uh *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		response.RespondError(c, err)
		return
	}
	user, err := uh.userService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, "User Created Successfully", user)
}

// GET /api/user
func (uh *UserHandler) List(c *gin.Context) {
	var q listUsersQuery
	if err := bindQuery(c, &q); err != nil {
		response.RespondError(c, err)
		return
	}
	var roleID *uuid.UUID
	if raw := strings.TrimSpace(q.RoleID); raw != "" {
		id, err := parseUUID("roleId", raw)
		if err != nil {
			response.RespondError(c, err)
			return
		}
		roleID = &id
	}
	page, err := uh.userService.List(c.Request.Context(), q.Request, roleID, pagination.RequestURL(c.Request))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Users Found Successfully", page)
}

// GET /api/user/:id
func (uh *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	user, err := uh.userService.FindByID(c.Request.Context(), id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "User Found Successfully", user)
}

// PATCH /api/user/:id
func (uh *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, err)
		return
	}
	in, err := req.toInput(id)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	user, err := uh.userService.Update(c.Request.Context(), in)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "User Updated Successfully", user)
}

// DELETE /api/user/:id
func (uh *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	if _, err := uh.userService.Delete(c.Request.Context(), id); err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "User Deleted Successfully", nil)
}

func (r createUserRequest) toInput() (domainagg.CreateUserInput, error) {
	designationID, err := parseUUID("designationId", r.EmploymentInfo.DesignationID)
	if err != nil {
		return domainagg.CreateUserInput{}, err
	}
	p, e := r.PersonalInfo, r.EmploymentInfo
	return domainagg.CreateUserInput{
		Password: r.Password,
		PersonalInfo: domainagg.PersonalInfoInput{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Mobile:      p.Mobile,
			DateOfBirth: p.DateOfBirth.ptr(),
			Email:       p.Email,
			BloodGroup:  p.BloodGroup,
			Address:     p.Address,
		},
		EmploymentInfo: domainagg.EmploymentInfoInput{
			DesignationID: designationID,
			EmpID:         e.EmpID,
			NoticePeriod:  *e.NoticePeriod,
			Email:         e.Email,
			JoiningDate:   e.JoiningDate.ptr(),
			ExpYears:      e.ExpYears,
			ExpMonths:     e.ExpMonths,
			ExpDays:       e.ExpDays,
		},
	}, nil
}

func (r updateUserRequest) toInput(id uuid.UUID) (domainagg.UpdateUserInput, error) {
	in := domainagg.UpdateUserInput{ID: id, Password: r.Password}
	if p := r.PersonalInfo; p != nil {
		in.PersonalInfo = &domainagg.PersonalInfoPatch{
			FirstName:   p.FirstName,
			LastName:    p.LastName,
			Mobile:      p.Mobile,
			DateOfBirth: p.DateOfBirth.ptr(),
			Email:       p.Email,
			BloodGroup:  p.BloodGroup,
			Address:     p.Address,
		}
	}
	if e := r.EmploymentInfo; e != nil {
		patch := &domainagg.EmploymentInfoPatch{
			EmpID:        e.EmpID,
			NoticePeriod: e.NoticePeriod,
			Email:        e.Email,
			JoiningDate:  e.JoiningDate.ptr(),
			ExpYears:     e.ExpYears,
			ExpMonths:    e.ExpMonths,
			ExpDays:      e.ExpDays,
		}
		if e.DesignationID != nil {
			designationID, err := parseUUID("designationId", *e.DesignationID)
			if err != nil {
				return domainagg.UpdateUserInput{}, err
			}
			patch.DesignationID = &designationID
		}
		in.EmploymentInfo = patch
	}
	return in, nil
}

func parseUUID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_"+field, fmt.Errorf("%s must be a valid id", field))
	}
	return id, nil
}
