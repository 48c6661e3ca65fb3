// Package api - herb provenance REST API
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/alwitt/herbtrace/models"
	"github.com/alwitt/herbtrace/qr"
	"github.com/alwitt/herbtrace/store"
	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// maxRequestBodyBytes bound on an accepted request body
const maxRequestBodyBytes = 1 << 20

// Response messages
const (
	msgHello            = "Hello from Backend!"
	msgHealthy          = "OK"
	msgResetOK          = "Database reset successfully"
	msgResetFailed      = "Failed to reset database"
	msgInvalidBody      = "Invalid request body"
	msgAddFailed        = "Failed to add herb"
	msgHerbNotFound     = "Herb not found"
	msgHerbFetchFailed  = "Failed to fetch herb"
	msgProductNotFound  = "Product not found"
	msgProductFailed    = "Failed to fetch product"
	msgQRFailed         = "Failed to generate QR code"
	msgListFailed       = "Failed to fetch herbs"
	msgUpdateFailed     = "Failed to update herb"
	msgDeleteFailed     = "Herb not found or deletion failed"
	msgPageRenderFailed = "Failed to render page"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeText   = "text/plain; charset=utf-8"
	contentTypeHTML   = "text/html; charset=utf-8"
	contentTypePNG    = "image/png"
)

// herbIDPathParam route variable holding the herb ID
const herbIDPathParam = "id"

// headerRequestID request ID header, echoed on the response
const headerRequestID = "X-Request-ID"

var (
	herbLookupFailures    = failureMessages{absent: msgHerbNotFound, failed: msgHerbFetchFailed}
	productLookupFailures = failureMessages{absent: msgProductNotFound, failed: msgProductFailed}
)

// HerbHandler serves the herb REST API
type HerbHandler struct {
	goutils.RestAPIHandler
	herbs store.HerbStore
	codec qr.Codec
}

/*
NewHerbHandler define a new herb REST API handler

	@param herbs store.HerbStore - herb record controller
	@param codec qr.Codec - QR code renderer
	@param requestLogLevel goutils.HTTPRequestLogLevel - level of the per request access log
	@param metrics goutils.MetricsCollector - optional metrics collector recording the requests
	@return new handler
*/
func NewHerbHandler(
	herbs store.HerbStore,
	codec qr.Codec,
	requestLogLevel goutils.HTTPRequestLogLevel,
	metrics goutils.MetricsCollector,
) HerbHandler {
	requestIDField := headerRequestID
	var metricsHelper goutils.HTTPRequestMetricHelper
	if metrics != nil {
		metricsHelper = metrics.InstallHTTPMetrics()
	}
	return HerbHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "herb-handler"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &requestIDField,
			DoNotLogHeaders:          map[string]bool{"Authorization": true, "Cookie": true},
			LogLevel:                 requestLogLevel,
			MetricsHelper:            metricsHelper,
		},
		herbs: herbs,
		codec: codec,
	}
}

// Root greeting
func (h HerbHandler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeText(w, r, http.StatusOK, msgHello)
}

// Health liveness check
func (h HerbHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeText(w, r, http.StatusOK, msgHealthy)
}

// ResetDatabase drop and re-create the herb database
func (h HerbHandler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.herbs.ResetStorage(r.Context()); err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, failureMessages{failed: msgResetFailed})
		return
	}
	h.writeText(w, r, http.StatusOK, msgResetOK)
}

// AddHerb define a new herb record, or return the existing one
func (h HerbHandler) AddHerb(w http.ResponseWriter, r *http.Request) {
	var params models.NewHerbRequest
	if err := h.readJSON(w, r, &params); err != nil {
		h.writeError(w, r, err, http.StatusBadRequest, failureMessages{failed: msgInvalidBody})
		return
	}

	herb, created, err := h.herbs.AddHerb(r.Context(), params)
	if err != nil {
		// A record missing after a failed write is a server failure
		h.writeError(
			w, r, err, http.StatusInternalServerError,
			failureMessages{absent: msgAddFailed, failed: msgAddFailed},
		)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	h.writeJSON(w, r, status, herb)
}

// GetHerb fetch a herb record along with its QR code
func (h HerbHandler) GetHerb(w http.ResponseWriter, r *http.Request) {
	herb, err := h.herbs.GetHerb(r.Context(), mux.Vars(r)[herbIDPathParam])
	if err != nil {
		h.writeError(w, r, err, http.StatusNotFound, herbLookupFailures)
		return
	}

	qrCode, err := h.codec.DataURI(herb)
	if err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, failureMessages{failed: msgQRFailed})
		return
	}
	h.writeJSON(w, r, http.StatusOK, models.HerbWithQR{Herb: herb, QRCode: qrCode})
}

// GetPublicProduct fetch a herb record for the public product page
func (h HerbHandler) GetPublicProduct(w http.ResponseWriter, r *http.Request) {
	herb, err := h.herbs.GetHerb(r.Context(), mux.Vars(r)[herbIDPathParam])
	if err != nil {
		h.writeError(w, r, err, http.StatusNotFound, productLookupFailures)
		return
	}
	h.writeJSON(w, r, http.StatusOK, herb)
}

// GetPublicProductPage render the public product landing page
func (h HerbHandler) GetPublicProductPage(w http.ResponseWriter, r *http.Request) {
	herb, err := h.herbs.GetHerb(r.Context(), mux.Vars(r)[herbIDPathParam])
	if err != nil {
		h.writeError(w, r, err, http.StatusNotFound, productLookupFailures)
		return
	}

	page := &bytes.Buffer{}
	if err := productPageTemplate.Execute(page, herb); err != nil {
		h.writeError(
			w, r, fmt.Errorf("product page render failed [%w]", err),
			http.StatusInternalServerError,
			failureMessages{failed: msgPageRenderFailed},
		)
		return
	}
	h.write(w, r, http.StatusOK, contentTypeHTML, page.Bytes())
}

// GetQRImage render a herb's QR code as a PNG image
func (h HerbHandler) GetQRImage(w http.ResponseWriter, r *http.Request) {
	herb, err := h.herbs.GetHerb(r.Context(), mux.Vars(r)[herbIDPathParam])
	if err != nil {
		h.writeError(w, r, err, http.StatusNotFound, herbLookupFailures)
		return
	}

	image, err := h.codec.PNG(herb)
	if err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, failureMessages{failed: msgQRFailed})
		return
	}
	h.write(w, r, http.StatusOK, contentTypePNG, image)
}

// ListHerbs fetch every herb record
func (h HerbHandler) ListHerbs(w http.ResponseWriter, r *http.Request) {
	herbs, err := h.herbs.ListHerbs(r.Context())
	if err != nil {
		h.writeError(w, r, err, http.StatusInternalServerError, failureMessages{failed: msgListFailed})
		return
	}
	if herbs == nil {
		herbs = []models.Herb{}
	}
	h.writeJSON(w, r, http.StatusOK, herbs)
}

// UpdateHerb apply a partial update to a herb record
func (h HerbHandler) UpdateHerb(w http.ResponseWriter, r *http.Request) {
	var params models.HerbUpdateRequest
	if err := h.readJSON(w, r, &params); err != nil {
		h.writeError(w, r, err, http.StatusBadRequest, failureMessages{failed: msgInvalidBody})
		return
	}

	herb, err := h.herbs.UpdateHerb(r.Context(), mux.Vars(r)[herbIDPathParam], params)
	if err != nil {
		h.writeError(
			w, r, err, http.StatusNotFound,
			failureMessages{absent: msgHerbNotFound, failed: msgUpdateFailed},
		)
		return
	}
	h.writeJSON(w, r, http.StatusOK, herb)
}

// DeleteHerb delete a herb record
func (h HerbHandler) DeleteHerb(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)[herbIDPathParam]
	if err := h.herbs.DeleteHerb(r.Context(), id); err != nil {
		// Every delete failure is reported as a missing record
		h.writeErrorWithStatus(w, r, err, http.StatusNotFound, msgDeleteFailed)
		return
	}
	h.writeText(w, r, http.StatusOK, fmt.Sprintf("Herb %s deleted successfully", id))
}

// ScanProduct resolve scanned QR text into a herb record
func (h HerbHandler) ScanProduct(w http.ResponseWriter, r *http.Request) {
	var params models.ScanRequest
	if err := h.readJSON(w, r, &params); err != nil {
		h.writeError(w, r, err, http.StatusBadRequest, failureMessages{failed: msgInvalidBody})
		return
	}

	herb, err := h.herbs.ScanHerb(r.Context(), params.Data)
	if err != nil {
		h.writeError(w, r, err, http.StatusNotFound, productLookupFailures)
		return
	}
	h.writeJSON(w, r, http.StatusOK, herb)
}

// ScanPage serve the scan utility page
func (h HerbHandler) ScanPage(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, http.StatusOK, contentTypeHTML, []byte(scanPage))
}

// ----------------------------------------------------------------------------------------
// Helpers

/*
readJSON decode a JSON request body

	@param w http.ResponseWriter - response writer
	@param r *http.Request - request
	@param target interface{} - decode target
*/
func (h HerbHandler) readJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(target); err != nil {
		return &models.ValidationError{Field: "body", Message: msgInvalidBody}
	}
	return nil
}

/*
writeError log a failed operation and report it to the client

	@param w http.ResponseWriter - response writer
	@param r *http.Request - request
	@param err error - the failure
	@param absentStatus int - status reported when the record does not exist
	@param messages failureMessages - messages reported for non-validation failures
*/
func (h HerbHandler) writeError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	absentStatus int,
	messages failureMessages,
) {
	status := statusForError(err, absentStatus)
	h.writeErrorWithStatus(w, r, err, status, clientMessage(err, status, messages))
}

func (h HerbHandler) writeErrorWithStatus(
	w http.ResponseWriter, r *http.Request, err error, status int, message string,
) {
	logEntry := log.WithError(err).
		WithFields(h.GetLogTagsForContext(r.Context())).
		WithField("status", status)
	if status >= http.StatusInternalServerError {
		logEntry.Error("Request failed")
	} else {
		logEntry.Info("Request rejected")
	}
	h.writeText(w, r, status, message)
}

func (h HerbHandler) writeText(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.write(w, r, status, contentTypeText, []byte(message))
}

func (h HerbHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	body := &bytes.Buffer{}
	enc := json.NewEncoder(body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		h.writeErrorWithStatus(
			w, r,
			fmt.Errorf("response encode failed [%w]", err),
			http.StatusInternalServerError,
			http.StatusText(http.StatusInternalServerError),
		)
		return
	}
	h.write(w, r, status, contentTypeJSON, body.Bytes())
}

func (h HerbHandler) write(
	w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte,
) {
	w.Header().Set(headerContentType, contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.WithError(err).
			WithFields(h.GetLogTagsForContext(r.Context())).
			Error("Failed to write response")
	}
}
