package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/usecase"
	"melanoma-screening-api/pkg/response"
	"melanoma-screening-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ImageHandler struct {
	imageUsecase usecase.ImageUsecase
	validator    *validator.CustomValidator
}

func NewImageHandler(imageUsecase usecase.ImageUsecase, validator *validator.CustomValidator) *ImageHandler {
	return &ImageHandler{
		imageUsecase: imageUsecase,
		validator:    validator,
	}
}

func parseImageID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	return id, err == nil
}

// CreateImage accepts a multipart form with the file under "file" plus
// "patient_cedula" and an optional "name".
func (h *ImageHandler) CreateImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	cedula, err := strconv.ParseInt(r.FormValue("patient_cedula"), 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient_cedula", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Image file is required", nil)
		return
	}
	defer file.Close()

	req := dto.CreateImageRequest{
		Name:          r.FormValue("name"),
		PatientCedula: cedula,
		Filename:      fileHeader.Filename,
		File:          file,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	image, err := h.imageUsecase.CreateImage(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Referenced patient not found")
		default:
			response.InternalServerError(w, "Failed to create image")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Image created successfully", image)
}

func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseImageID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	image, err := h.imageUsecase.GetImage(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to get image")
		}
		return
	}

	response.Success(w, http.StatusOK, "", image)
}

// GetImageFile streams the stored image bytes.
func (h *ImageHandler) GetImageFile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseImageID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	file, image, err := h.imageUsecase.GetImageFile(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to read image file")
		}
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(image.FilePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, file)
}

func (h *ImageHandler) GetAllImages(w http.ResponseWriter, r *http.Request) {
	offset, limit := parseOffsetLimit(r)

	images, total, err := h.imageUsecase.GetImages(r.Context(), offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list images")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", images, &response.Meta{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	})
}

func (h *ImageHandler) GetImagesByPatient(w http.ResponseWriter, r *http.Request) {
	cedula, ok := parseCedula(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid cedula", nil)
		return
	}

	images, err := h.imageUsecase.GetImagesByPatient(r.Context(), cedula)
	if err != nil {
		response.InternalServerError(w, "Failed to list images")
		return
	}

	response.Success(w, http.StatusOK, "", images)
}

func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseImageID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	var req dto.UpdateImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	image, err := h.imageUsecase.UpdateImage(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Image not found")
		default:
			response.InternalServerError(w, "Failed to update image")
		}
		return
	}

	response.Success(w, http.StatusOK, "Image updated successfully", image)
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseImageID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	if err := h.imageUsecase.DeleteImage(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete image")
		return
	}

	response.NoContent(w)
}

func (h *ImageHandler) DeleteImagesByPatient(w http.ResponseWriter, r *http.Request) {
	cedula, ok := parseCedula(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid cedula", nil)
		return
	}

	if err := h.imageUsecase.DeleteImagesByPatient(r.Context(), cedula); err != nil {
		response.InternalServerError(w, "Failed to delete images")
		return
	}

	response.NoContent(w)
}
