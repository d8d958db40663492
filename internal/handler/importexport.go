package handler

import (
	"net/http"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/service"
	"github.com/ausare-dev/personal-finance-manager/internal/util"

	"github.com/gin-gonic/gin"
)

type ImportExportHandler struct {
	importExport *service.ImportExportService
}

func NewImportExportHandler(importExport *service.ImportExportService) *ImportExportHandler {
	return &ImportExportHandler{importExport: importExport}
}

type importFunc func(c *gin.Context, userID, defaultWalletID string) (*service.ImportResult, error)

// runImport reads the multipart upload and the optional default
// wallet field. Row failures never fail the request; the caller gets
// the per-row breakdown with a 200.
func (h *ImportExportHandler) runImport(c *gin.Context, do importFunc) {
	defaultWalletID := c.PostForm("wallet_id")

	result, err := do(c, currentUser(c).ID, defaultWalletID)
	if err != nil {
		fail(c, err)
		return
	}
	util.Success(c, result)
}

func (h *ImportExportHandler) ImportCSV(c *gin.Context) {
	h.runImport(c, func(c *gin.Context, userID, defaultWalletID string) (*service.ImportResult, error) {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, service.Invalid("a file upload named \"file\" is required")
		}
		defer file.Close()
		return h.importExport.ImportCSV(c.Request.Context(), userID, file, defaultWalletID)
	})
}

func (h *ImportExportHandler) ImportExcel(c *gin.Context) {
	h.runImport(c, func(c *gin.Context, userID, defaultWalletID string) (*service.ImportResult, error) {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			return nil, service.Invalid("a file upload named \"file\" is required")
		}
		defer file.Close()
		return h.importExport.ImportExcel(c.Request.Context(), userID, file, defaultWalletID)
	})
}

func (h *ImportExportHandler) ExportCSV(c *gin.Context) {
	data, err := h.importExport.ExportCSV(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	name := "transactions-" + time.Now().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ImportExportHandler) ExportExcel(c *gin.Context) {
	data, err := h.importExport.ExportExcel(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	name := "transactions-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
