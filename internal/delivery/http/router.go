package http

import (
	"net/http"

	"melanoma-screening-api/internal/delivery/http/handler"
	"melanoma-screening-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	doctorHandler     *handler.DoctorHandler
	patientHandler    *handler.PatientHandler
	imageHandler      *handler.ImageHandler
	predictionHandler *handler.PredictionHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	imageHandler *handler.ImageHandler,
	predictionHandler *handler.PredictionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		doctorHandler:     doctorHandler,
		patientHandler:    patientHandler,
		imageHandler:      imageHandler,
		predictionHandler: predictionHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Doctor registration is the only unauthenticated write
	api.HandleFunc("/doctors", r.doctorHandler.Register).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentDoctor).Methods(http.MethodGet)
	authProtected.HandleFunc("/check", r.authHandler.Check).Methods(http.MethodGet)

	// Record routes (protected)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Doctors
	protected.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{email}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{email}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	protected.HandleFunc("/doctors/{email}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	protected.HandleFunc("/doctors/{email}/patients", r.patientHandler.GetPatientsByDoctor).Methods(http.MethodGet)

	// Patients
	protected.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{cedula}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{cedula}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patients/{cedula}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Images
	protected.HandleFunc("/images", r.imageHandler.CreateImage).Methods(http.MethodPost)
	protected.HandleFunc("/images", r.imageHandler.GetAllImages).Methods(http.MethodGet)
	protected.HandleFunc("/images/{id}", r.imageHandler.GetImage).Methods(http.MethodGet)
	protected.HandleFunc("/images/{id}/file", r.imageHandler.GetImageFile).Methods(http.MethodGet)
	protected.HandleFunc("/images/{id}", r.imageHandler.UpdateImage).Methods(http.MethodPut)
	protected.HandleFunc("/images/{id}", r.imageHandler.DeleteImage).Methods(http.MethodDelete)
	protected.HandleFunc("/patients/{cedula}/images", r.imageHandler.GetImagesByPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{cedula}/images", r.imageHandler.DeleteImagesByPatient).Methods(http.MethodDelete)

	// Predictions
	protected.HandleFunc("/predictions", r.predictionHandler.CreatePrediction).Methods(http.MethodPost)
	protected.HandleFunc("/predictions", r.predictionHandler.GetAllPredictions).Methods(http.MethodGet)
	protected.HandleFunc("/predictions/{id}", r.predictionHandler.GetPrediction).Methods(http.MethodGet)
	protected.HandleFunc("/predictions/{id}", r.predictionHandler.DeletePrediction).Methods(http.MethodDelete)
	protected.HandleFunc("/images/{id}/predictions", r.predictionHandler.GetPredictionsByImage).Methods(http.MethodGet)
	protected.HandleFunc("/images/{id}/predictions", r.predictionHandler.DeletePredictionsByImage).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
