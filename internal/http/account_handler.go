package http

import (
	"net/http"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
	"github.com/tuanvumaihuynh/inventory-service/internal/service"
)

type accountHandler struct {
	svc      *Service
	adminSvc service.AdminService
	staffSvc service.StaffService
	userSvc  service.UserService
	authSvc  service.AuthService
}

func newAccountHandler(
	svc *Service,
	adminSvc service.AdminService,
	staffSvc service.StaffService,
	userSvc service.UserService,
	authSvc service.AuthService,
) *accountHandler {
	return &accountHandler{
		svc:      svc,
		adminSvc: adminSvc,
		staffSvc: staffSvc,
		userSvc:  userSvc,
		authSvc:  authSvc,
	}
}

type createAdminRequest struct {
	Name     string              `json:"name" validate:"required,min=1,max=255"`
	Email    string              `json:"email" validate:"required,email"`
	Password string              `json:"password" validate:"required,min=8,max=72"`
	Rights   string              `json:"rights" validate:"omitempty,oneof=BASIC FULL"`
	Status   model.AccountStatus `json:"status" validate:"omitempty,enum"`
}

type updateAdminRequest struct {
	Name     *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Email    *string              `json:"email" validate:"omitempty,email"`
	Password *string              `json:"password" validate:"omitempty,min=8,max=72"`
	Rights   *string              `json:"rights" validate:"omitempty,oneof=BASIC FULL"`
	Status   *model.AccountStatus `json:"status" validate:"omitempty,enum"`
}

type createStaffRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=255"`
	Email       string              `json:"email" validate:"required,email"`
	Password    string              `json:"password" validate:"required,min=8,max=72"`
	Designation string              `json:"designation" validate:"omitempty,alphanumspace,max=255"`
	Department  string              `json:"department" validate:"omitempty,alphanumspace,max=255"`
	PhoneNumber string              `json:"phone_number" validate:"max=32"`
	Rights      string              `json:"rights" validate:"omitempty,oneof=BASIC FULL"`
	Status      model.AccountStatus `json:"status" validate:"omitempty,enum"`
}

type updateStaffRequest struct {
	Name        *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Email       *string              `json:"email" validate:"omitempty,email"`
	Password    *string              `json:"password" validate:"omitempty,min=8,max=72"`
	Designation *string              `json:"designation" validate:"omitempty,alphanumspace,max=255"`
	Department  *string              `json:"department" validate:"omitempty,alphanumspace,max=255"`
	PhoneNumber *string              `json:"phone_number" validate:"omitempty,max=32"`
	Rights      *string              `json:"rights" validate:"omitempty,oneof=BASIC FULL"`
	Status      *model.AccountStatus `json:"status" validate:"omitempty,enum"`
}

type createUserRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Address     string `json:"address" validate:"max=512"`
	PhoneNumber string `json:"phone_number" validate:"max=32"`
}

type updateUserRequest struct {
	Name        *string              `json:"name" validate:"omitempty,min=1,max=255"`
	Email       *string              `json:"email" validate:"omitempty,email"`
	Password    *string              `json:"password" validate:"omitempty,min=8,max=72"`
	Address     *string              `json:"address" validate:"omitempty,max=512"`
	PhoneNumber *string              `json:"phone_number" validate:"omitempty,max=32"`
	Status      *model.AccountStatus `json:"status" validate:"omitempty,enum"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *accountHandler) listAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminSvc.ListAllAdmins(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, admins)
}

func (h *accountHandler) getAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "adminId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	admin, err := h.adminSvc.GetAdmin(r.Context(), id)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, admin)
}

func (h *accountHandler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	admin, err := h.adminSvc.CreateAdmin(r.Context(), service.CreateAdminParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Rights:   req.Rights,
		Status:   req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusCreated, admin)
}

func (h *accountHandler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "adminId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	var req updateAdminRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	admin, err := h.adminSvc.UpdateAdmin(r.Context(), id, service.UpdateAdminParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Rights:   req.Rights,
		Status:   req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, admin)
}

func (h *accountHandler) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "adminId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	if err := h.adminSvc.DeleteAdmin(r.Context(), id); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusNoContent, nil)
}

// registerSuperAdmin bootstraps the first admin on a fresh system.
// Once any admin exists the endpoint is closed.
func (h *accountHandler) registerSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	admin, err := h.adminSvc.RegisterSuperAdmin(r.Context(), service.CreateAdminParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Rights:   req.Rights,
		Status:   req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusCreated, admin)
}

func (h *accountHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffSvc.ListAllStaff(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, staff)
}

func (h *accountHandler) getStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "staffId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	staff, err := h.staffSvc.GetStaff(r.Context(), id)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, staff)
}

func (h *accountHandler) createStaff(w http.ResponseWriter, r *http.Request) {
	var req createStaffRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	staff, err := h.staffSvc.CreateStaff(r.Context(), service.CreateStaffParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Designation: req.Designation,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		Rights:      req.Rights,
		Status:      req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusCreated, staff)
}

func (h *accountHandler) updateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "staffId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	var req updateStaffRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	staff, err := h.staffSvc.UpdateStaff(r.Context(), id, service.UpdateStaffParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Designation: req.Designation,
		Department:  req.Department,
		PhoneNumber: req.PhoneNumber,
		Rights:      req.Rights,
		Status:      req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, staff)
}

func (h *accountHandler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "staffId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	if err := h.staffSvc.DeleteStaff(r.Context(), id); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusNoContent, nil)
}

func (h *accountHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.ListAllUsers(r.Context())
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, users)
}

func (h *accountHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "userId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	user, err := h.userSvc.GetUser(r.Context(), id)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, user)
}

func (h *accountHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	user, err := h.userSvc.CreateUser(r.Context(), service.CreateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusCreated, user)
}

func (h *accountHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "userId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	user, err := h.userSvc.UpdateUser(r.Context(), id, service.UpdateUserParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
	})
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, user)
}

func (h *accountHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "userId")
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	if err := h.userSvc.DeleteUser(r.Context(), id); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusNoContent, nil)
}

func (h *accountHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := h.svc.decodeAndValidate(r, &req); err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	identity, err := h.authSvc.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		h.svc.writeError(w, r, err)
		return
	}

	h.svc.writeJSON(w, r, http.StatusOK, identity)
}
