package handler

import (
	"net/http"

	"melanoma-screening-api/internal/delivery/dto"
	"melanoma-screening-api/internal/usecase"
	"melanoma-screening-api/pkg/response"
	"melanoma-screening-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PredictionHandler struct {
	predictionUsecase usecase.PredictionUsecase
	validator         *validator.CustomValidator
}

func NewPredictionHandler(predictionUsecase usecase.PredictionUsecase, validator *validator.CustomValidator) *PredictionHandler {
	return &PredictionHandler{
		predictionUsecase: predictionUsecase,
		validator:         validator,
	}
}

// CreatePrediction accepts a multipart form with the mask file under
// "file" and the owning image under "image_id".
func (h *PredictionHandler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	imageID, err := uuid.Parse(r.FormValue("image_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image_id", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Prediction file is required", nil)
		return
	}
	defer file.Close()

	req := dto.CreatePredictionRequest{
		ImageID:  imageID,
		Filename: fileHeader.Filename,
		File:     file,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prediction, err := h.predictionUsecase.CreatePrediction(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrImageNotFound:
			response.NotFound(w, "Referenced image not found")
		case usecase.ErrPatientDirMissing:
			response.Conflict(w, "Patient directory missing in storage")
		default:
			response.InternalServerError(w, "Failed to create prediction")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prediction created successfully", prediction)
}

func (h *PredictionHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prediction id", nil)
		return
	}

	prediction, err := h.predictionUsecase.GetPrediction(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrPredictionNotFound:
			response.NotFound(w, "Prediction not found")
		default:
			response.InternalServerError(w, "Failed to get prediction")
		}
		return
	}

	response.Success(w, http.StatusOK, "", prediction)
}

func (h *PredictionHandler) GetAllPredictions(w http.ResponseWriter, r *http.Request) {
	offset, limit := parseOffsetLimit(r)

	predictions, total, err := h.predictionUsecase.GetPredictions(r.Context(), offset, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to list predictions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "", predictions, &response.Meta{
		Offset: offset,
		Limit:  limit,
		Total:  total,
	})
}

func (h *PredictionHandler) GetPredictionsByImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	predictions, err := h.predictionUsecase.GetPredictionsByImage(r.Context(), imageID)
	if err != nil {
		response.InternalServerError(w, "Failed to list predictions")
		return
	}

	response.Success(w, http.StatusOK, "", predictions)
}

func (h *PredictionHandler) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prediction id", nil)
		return
	}

	if err := h.predictionUsecase.DeletePrediction(r.Context(), id); err != nil {
		response.InternalServerError(w, "Failed to delete prediction")
		return
	}

	response.NoContent(w)
}

func (h *PredictionHandler) DeletePredictionsByImage(w http.ResponseWriter, r *http.Request) {
	imageID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id", nil)
		return
	}

	if err := h.predictionUsecase.DeletePredictionsByImage(r.Context(), imageID); err != nil {
		response.InternalServerError(w, "Failed to delete predictions")
		return
	}

	response.NoContent(w)
}
