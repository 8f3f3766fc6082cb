package admin

import (
	"conference/config"
	"conference/infras/jwt"
	"conference/infras/otel"
	adminDto "conference/internal/domains/admin/model/dto"
	adminService "conference/internal/domains/admin/service"
	"conference/internal/domains/booking/model"
	"conference/internal/domains/booking/model/dto"
	bookingService "conference/internal/domains/booking/service"
	"conference/shared"
	"conference/shared/constant"
	gDto "conference/shared/dto"
	"conference/shared/failure"
	"conference/shared/validator"
	"conference/transport/http/response"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	pathAdmin    = "/admin"
	pathBookings = pathAdmin + "/booking/"
)

type Handler struct {
	admin    adminService.Admin
	bookings bookingService.Booking
	cfg      *config.Config
	otel     otel.Otel
}

func New(admin adminService.Admin, bookings bookingService.Booking, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		admin:    admin,
		bookings: bookings,
		cfg:      cfg,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/admin/login", handler.Session)
	router.Post("/admin/login", handler.Login)
	router.Get("/admin/logout", handler.Logout)
	router.Get("/admin", handler.GetBookings)
	router.Get("/admin/booking/{id}", handler.GetBooking)
	router.Get("/admin/booking/{id}/edit", handler.EditForm)
	router.Post("/admin/booking/{id}/edit", handler.UpdateBooking)
	router.Post("/admin/booking/{id}/delete", handler.DeleteBooking)
	router.Get("/admin/receipt/*", handler.Receipt)
}

type sessionResponse struct {
	LoggedIn bool              `json:"logged_in"`
	Session  *adminDto.Session `json:"session,omitempty"`
}

// Session tells the login page whether the caller already holds a valid session.
// @Summary Admin session
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[sessionResponse]
// @Router /admin/login [get]
func (handler *Handler) Session(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Session")
	defer scope.End()

	res := sessionResponse{}

	if token := jwt.ExtractTokenFromRequest(request, constant.CookieAdminSession); token != constant.Empty {
		if session, err := handler.admin.Authenticate(ctx, token); err == nil {
			res.LoggedIn = true
			res.Session = &session
		}
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Login checks the admin credentials and opens a session.
// @Summary Admin login
// @Description Accepts JSON or form fields. Sets the session cookie and returns the bearer token.
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body adminDto.LoginRequest true "Credentials"
// @Success 200 {object} response.Data[adminDto.LoginResponse]
// @Failure 401 {object} response.Error
// @Router /admin/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := adminDto.LoginRequest{}

	if err := decodeLogin(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.admin.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("username", req.Username).Msg("admin login rejected")

		response.WithError(writer, err)

		return
	}

	http.SetCookie(writer, handler.sessionCookie(res.AccessToken, res.ExpiresAt))

	scope.AddEvent("Admin logged in " + req.Username)

	response.WithLocation(writer, http.StatusOK, pathAdmin, res)
}

func decodeLogin(request *http.Request, req *adminDto.LoginRequest) error {
	if !shared.IsFormRequest(request) {
		return validator.Validate(request.Body, req)
	}

	if err := request.ParseForm(); err != nil {
		return failure.BadRequest(err)
	}

	req.Username = request.PostForm.Get("username")
	req.Password = request.PostForm.Get("password")

	return validator.ValidateStruct(req)
}

func (handler *Handler) sessionCookie(value string, expiresAt time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     constant.CookieAdminSession,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   handler.cfg.Server.Env == constant.ServerEnvProduction,
		SameSite: http.SameSiteLaxMode,
	}

	if value == constant.Empty {
		cookie.MaxAge = -1
	} else {
		cookie.Expires = expiresAt
	}

	return cookie
}

// Logout revokes the session and clears the cookie.
// @Summary Admin logout
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Message
// @Router /admin/logout [get]
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	token := jwt.ExtractTokenFromRequest(request, constant.CookieAdminSession)

	if err := handler.admin.Logout(ctx, token); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to revoke admin session")

		response.WithError(writer, err)

		return
	}

	http.SetCookie(writer, handler.sessionCookie(constant.Empty, time.Time{}))

	writer.Header().Set(constant.RequestHeaderLocation, pathAdmin+"/login")
	response.WithMessage(writer, http.StatusOK, adminDto.MessageLoggedOut)
}

// GetBookings lists bookings with the dashboard statistics.
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters, all bookings when limit is omitted"
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param ticket_type query string false "Filter by ticket type (Single, Double, Triple)"
// @Success 200 {object} response.Data[dto.AdminBookingsResponse]
// @Failure 401 {object} response.Error
// @Router /admin [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	// Without a limit the dashboard lists every booking.
	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := request.URL.Query().Get(model.FieldStatus); status != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if tier := request.URL.Query().Get(model.FieldTicketType); tier != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTicketType,
			Operator: gDto.FilterOperatorEq,
			Value:    tier,
			Table:    model.TableName,
		})
	}

	res, err := handler.bookings.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBooking returns one booking with its additional persons.
// @Summary Admin booking detail
// @Tags Admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /admin/booking/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.bookings.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// EditForm returns a booking with the choices the edit form offers.
// @Summary Admin edit form
// @Tags Admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.EditFormResponse]
// @Failure 404 {object} response.Error
// @Router /admin/booking/{id}/edit [get]
// @Security BearerAuth
func (handler *Handler) EditForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.bookings.EditForm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get edit form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBooking edits status, ticket type and additional persons.
// @Summary Admin edit booking
// @Tags Admin
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingRequest true "Changes"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /admin/booking/{id}/edit [post]
// @Security BearerAuth
func (handler *Handler) UpdateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	req := dto.UpdateBookingRequest{}

	if err := decodeUpdate(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.bookings.Update(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to update booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + id + " updated by " + user)

	writer.Header().Set(constant.RequestHeaderLocation, pathBookings+id)
	response.WithMessage(writer, http.StatusOK, dto.MessageBookingUpdated)
}

func decodeUpdate(request *http.Request, req *dto.UpdateBookingRequest) error {
	if !shared.IsFormRequest(request) {
		return validator.Validate(request.Body, req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return failure.BadRequest(err)
	}

	req.FromForm(request.PostForm)

	return validator.ValidateStruct(req)
}

// DeleteBooking removes a booking with its guests and receipt.
// @Summary Admin delete booking
// @Tags Admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /admin/booking/{id}/delete [post]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.bookings.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + id + " deleted by " + user)

	writer.Header().Set(constant.RequestHeaderLocation, pathAdmin)
	response.WithMessage(writer, http.StatusOK, dto.MessageBookingDeleted)
}

// Receipt streams a stored receipt.
// @Summary Admin receipt download
// @Tags Admin
// @Produce octet-stream
// @Param path path string true "Stored receipt path"
// @Success 200 {file} file
// @Failure 404 {object} response.Error
// @Router /admin/receipt/{path} [get]
// @Security BearerAuth
func (handler *Handler) Receipt(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Receipt")
	defer scope.End()

	objectPath := chi.URLParam(request, constant.Asterix)

	file, err := handler.bookings.Receipt(ctx, objectPath)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("path", objectPath).Msg("failed to open receipt")

		response.WithError(writer, err)

		return
	}
	defer file.Body.Close()

	response.WithFile(writer, file.Body, file.ContentType, file.Size)
}
