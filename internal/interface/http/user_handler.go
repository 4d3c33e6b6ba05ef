package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-order-service/internal/application"
	"github.com/oksasatya/go-user-order-service/internal/domain/entity"
	"github.com/oksasatya/go-user-order-service/internal/domain/repository"
	"github.com/oksasatya/go-user-order-service/pkg/response"
	"github.com/oksasatya/go-user-order-service/pkg/validation"
)

// ErrInvalidUserID is returned for a :userId path segment that is not an integer.
var ErrInvalidUserID = errors.New("userId must be an integer")

type UserHandler struct {
	Svc       *userapp.Service
	Validator *validation.Validator
	Logger    *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, v *validation.Validator, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Validator: v, Logger: logger}
}

type ordersResponse struct {
	Orders []entity.Order `json:"orders"`
}

type totalPriceResponse struct {
	TotalPrice float64 `json:"totalPrice"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if !h.decode(c, &req) {
		return
	}
	p, err := h.Svc.CreateUser(c.Request.Context(), req.toEntity())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "User created Successfully")
}

func (h *UserHandler) List(c *gin.Context) {
	fields := entity.DefaultListFields
	if raw, ok := c.GetQuery("fields"); ok {
		parsed, err := entity.ParseUserFields(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid fields", err.Error(), nil)
			return
		}
		fields = parsed
	}
	users, err := h.Svc.ListUsers(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "Users fetched successfully!")
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	p, err := h.Svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p, "User fetched successfully!")
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !h.decode(c, &req) {
		return
	}
	d, err := h.Svc.UpdateUser(c.Request.Context(), id, req.toPatch())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, d, "User updated successfully!")
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully!")
}

func (h *UserHandler) AddOrder(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	var req orderRequest
	if !h.decode(c, &req) {
		return
	}
	if _, err := h.Svc.AppendOrder(c.Request.Context(), id, req.toEntity()); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success[any](c, http.StatusCreated, nil, "Order created successfully!")
}

func (h *UserHandler) ListOrders(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	orders, err := h.Svc.ListOrders(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, ordersResponse{Orders: orders}, "Order fetched successfully!")
}

func (h *UserHandler) TotalPrice(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}
	total, err := h.Svc.TotalPrice(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, totalPriceResponse{TotalPrice: total}, "Total price calculated successfully!")
}

// Search queries the user search index: GET /api/search/users?q=&size=
func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "Invalid query", "q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	users, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "Users fetched successfully!")
}

func (h *UserHandler) decode(c *gin.Context, dst any) bool {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid payload", "could not read request body", nil)
		return false
	}
	if err := h.Validator.Decode(body, dst); err != nil {
		h.respondError(c, err)
		return false
	}
	return true
}

func (h *UserHandler) userID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		h.respondError(c, ErrInvalidUserID)
		return 0, false
	}
	return id, true
}

// respondError is the only place errors become status codes.
func (h *UserHandler) respondError(c *gin.Context, err error) {
	var verr *validation.ValidationError
	switch {
	case errors.As(err, &verr):
		response.Error(c, http.StatusBadRequest, "Validation failed", verr.Error(), verr.Fields)
	case errors.Is(err, ErrInvalidUserID):
		response.Error(c, http.StatusBadRequest, "Invalid userId", err.Error(), nil)
	case errors.Is(err, repository.ErrDuplicateKey):
		response.Error(c, http.StatusConflict, "User already exists", err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "User not found", "User not found!", nil)
	case errors.Is(err, userapp.ErrSearchDisabled):
		response.Error(c, http.StatusServiceUnavailable, "Search unavailable", err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).Error("request failed")
		}
		response.Error(c, http.StatusInternalServerError, "Something went wrong", "internal server error", nil)
	}
}
