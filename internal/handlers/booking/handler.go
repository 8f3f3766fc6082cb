package booking

import (
	"conference/config"
	"conference/infras/otel"
	"conference/internal/domains/booking/model/dto"
	"conference/internal/domains/booking/service"
	"conference/shared"
	"conference/shared/constant"
	"conference/shared/failure"
	"conference/shared/validator"
	"conference/transport/http/response"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// multipartOverhead leaves room for boundaries and the other form fields around the receipt.
const multipartOverhead = 1 << 20

type Handler struct {
	service service.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Booking, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Index)
	router.Get("/register", handler.RegisterForm)
	router.Post("/register", handler.Register)
	router.Get("/upload_receipt/{id}", handler.UploadForm)
	router.Post("/upload_receipt/{id}", handler.UploadReceipt)
	router.Get("/booking_confirmed/{id}", handler.Confirmation)
	router.Get("/check_status/{id}", handler.CheckStatus)
}

// Index returns the remaining capacity and the tiers on offer.
// @Summary Landing page
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.RegisterFormResponse]
// @Router / [get]
func (handler *Handler) Index(writer http.ResponseWriter, request *http.Request) {
	handler.availability(writer, request, constant.OtelHandlerScopeName+".Index")
}

// RegisterForm returns what the registration form needs to render.
// @Summary Registration form
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.RegisterFormResponse]
// @Router /register [get]
func (handler *Handler) RegisterForm(writer http.ResponseWriter, request *http.Request) {
	handler.availability(writer, request, constant.OtelHandlerScopeName+".RegisterForm")
}

func (handler *Handler) availability(writer http.ResponseWriter, request *http.Request, spanName string) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, spanName)
	defer scope.End()

	res, err := handler.service.RegisterForm(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Register places a pending booking on hold.
// @Summary Register a booking
// @Description Accepts JSON or the registration form fields. Answers with the upload page in Location.
// @Tags Booking
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.RegisterRequest true "Registration"
// @Success 201 {object} response.Data[dto.ReservationResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /register [post]
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := decodeRegistration(request, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reserve(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reserve booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking reserved " + res.ID)

	response.WithLocation(writer, http.StatusCreated, res.UploadURL, res)
}

func decodeRegistration(request *http.Request, req *dto.RegisterRequest) error {
	if !shared.IsFormRequest(request) {
		return validator.Validate(request.Body, req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return failure.BadRequest(err)
	}

	req.FromForm(request.PostForm)

	return validator.ValidateStruct(req)
}

// UploadForm returns the pending booking with its countdown.
// @Summary Receipt upload page
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.UploadFormResponse]
// @Failure 404 {object} response.Error
// @Router /upload_receipt/{id} [get]
func (handler *Handler) UploadForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.UploadForm(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get upload form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UploadReceipt stores the payment receipt and confirms the booking.
// @Summary Upload a receipt
// @Tags Booking
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param receipt formData file true "Receipt (png, jpg, jpeg, pdf)"
// @Success 200 {object} response.Data[dto.ConfirmResponse]
// @Failure 400 {object} response.Error
// @Failure 410 {object} response.Error
// @Failure 413 {object} response.Error
// @Router /upload_receipt/{id} [post]
func (handler *Handler) UploadReceipt(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadReceipt")
	defer scope.End()

	req, err := handler.readReceipt(writer, request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read receipt")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.ConfirmWithReceipt(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", req.BookingID).Msg("failed to confirm booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking confirmed " + req.BookingID)

	response.WithLocation(writer, http.StatusOK, res.RedirectURL, res)
}

func (handler *Handler) readReceipt(writer http.ResponseWriter, request *http.Request) (dto.UploadReceiptRequest, error) {
	req := dto.UploadReceiptRequest{BookingID: chi.URLParam(request, constant.RequestParamID)}
	limit := handler.cfg.App.Upload.MaxBytes

	request.Body = http.MaxBytesReader(writer, request.Body, limit+multipartOverhead)

	// A missing file is left for the service to report once the booking has been resolved.
	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, service.ErrFileTooLarge
		}

		return req, nil
	}

	file, header, err := request.FormFile(constant.FormFileReceipt)
	if err != nil {
		return req, nil
	}
	defer file.Close()

	// One byte past the limit is enough for the service to reject the upload.
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return req, fmt.Errorf("failed to read receipt: %w", err)
	}

	req.Filename = header.Filename
	req.Data = data

	return req, nil
}

// Confirmation returns a confirmed booking.
// @Summary Confirmation page
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Router /booking_confirmed/{id} [get]
func (handler *Handler) Confirmation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirmation")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Confirmation(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", id).Msg("failed to get confirmation")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CheckStatus is polled by the upload page countdown.
// @Summary Booking status
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.StatusResponse
// @Failure 404 {object} response.Error
// @Router /check_status/{id} [get]
func (handler *Handler) CheckStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Status(ctx, id)
	if err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithPayload(writer, http.StatusOK, res)
}
