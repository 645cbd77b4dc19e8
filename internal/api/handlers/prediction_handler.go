package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/inventopredict/backend-go/internal/domain"
	"github.com/inventopredict/backend-go/internal/service"
)

type PredictionHandler struct {
	service   *service.PredictionService
	uploadDir string
}

func NewPredictionHandler(service *service.PredictionService, uploadDir string) *PredictionHandler {
	return &PredictionHandler{service: service, uploadDir: uploadDir}
}

// Predict accepts a multipart workbook upload, runs the pipeline over it
// and returns the per-product stockout predictions.
func (h *PredictionHandler) Predict(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	// Save the uploaded workbook temporarily; always clean it up.
	tmpName := fmt.Sprintf("predict_%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	tmpPath := filepath.Join(h.uploadDir, tmpName)
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}
	defer os.Remove(tmpPath)

	results, err := h.service.PredictFile(c.Request.Context(), tmpPath)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":    "Stock prediction analysis completed.",
		"total_rows": len(results),
		"fields":     results,
	})
}

// Dashboard returns prediction, status and trend data for one product from
// the most recently ingested dataset.
func (h *PredictionHandler) Dashboard(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	dashboard, err := h.service.Dashboard(c.Request.Context(), productID)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// respondPipelineError maps the pipeline error taxonomy onto HTTP statuses.
func respondPipelineError(c *gin.Context, err error) {
	var (
		dataErr       *domain.DataError
		notFoundErr   *domain.NotFoundError
		predictionErr *domain.PredictionError
	)

	switch {
	case errors.As(err, &dataErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": dataErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.As(err, &predictionErr):
		log.Error().Err(err).Msg("scoring failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": predictionErr.Error()})
	default:
		log.Error().Err(err).Msg("prediction request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
